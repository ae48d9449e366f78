// internal/eval/eval.go
package eval

import (
	"errors"
	"fmt"
	"sort"

	"isolation_go/internal/game"
)

// ScoreFunc rates a position from p's point of view; higher is better for p.
// Evaluators return b.Utility(p) unchanged when the player to move is stuck.
type ScoreFunc func(b *game.Board, p game.Player) float64

var ErrUnknownHeuristic = errors.New("unknown heuristic")

// 名称 → 评估函数
var registry = map[string]ScoreFunc{
	"custom_score":          CustomScore,
	"custom_score_logistic": LogisticScore,
	"custom_score_2":        FreeMoves{Depth: 2, Unroll: 3, Discount: 1}.Score,
	"custom_score_3":        FreeMoves{Depth: 2, Unroll: 3, Discount: 0.8}.Score,
	"custom_score_4":        FreeMoves{Depth: 2, Unroll: 3, Discount: 1.2}.Score,
	"custom_score_5":        FreeMoves{Depth: 2, Unroll: 3, Discount: 1.4}.Score,
	"custom_score_6":        FreeMoves{Depth: 2, Unroll: 10, Discount: 1}.Score,
	"open_move_score":       OpenMoveScore,
	"improved_score":        ImprovedScore,
	"center_score":          CenterScore,
}

// Lookup returns the evaluator registered under name.
func Lookup(name string) (ScoreFunc, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
	return f, nil
}

// Names lists the registered evaluators in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// OpenMoveScore counts p's legal moves.
func OpenMoveScore(b *game.Board, p game.Player) float64 {
	if !b.HasLegalMoves() {
		return b.Utility(p)
	}
	return float64(len(b.LegalMovesFor(p)))
}

// ImprovedScore is p's mobility minus the opponent's.
func ImprovedScore(b *game.Board, p game.Player) float64 {
	if !b.HasLegalMoves() {
		return b.Utility(p)
	}
	own := len(b.LegalMovesFor(p))
	opp := len(b.LegalMovesFor(b.Opponent(p)))
	return float64(own - opp)
}

// CenterScore is the squared distance of p from the board centre.
func CenterScore(b *game.Board, p game.Player) float64 {
	if !b.HasLegalMoves() {
		return b.Utility(p)
	}
	loc := b.PlayerLocation(p)
	if loc == game.NoMove {
		return 0
	}
	w, h := float64(b.Width())/2, float64(b.Height())/2
	dy, dx := h-float64(loc.Row), w-float64(loc.Col)
	return dy*dy + dx*dx
}
