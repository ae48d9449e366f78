package search

import (
	"isolation_go/internal/eval"
	"isolation_go/internal/game"
)

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	Rand game.Rand // nil uses game.GlobalRand
}

func (p RandomPlayer) GetMove(b *game.Board, _ TimeLeft) game.Cell {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove
	}
	r := p.Rand
	if r == nil {
		r = game.GlobalRand
	}
	return moves[r.Intn(len(moves))]
}

// GreedyPlayer looks one ply ahead and plays the first move with the
// highest score.
type GreedyPlayer struct {
	Score eval.ScoreFunc // nil uses eval.ImprovedScore
}

func (p GreedyPlayer) GetMove(b *game.Board, _ TimeLeft) game.Cell {
	score := p.Score
	if score == nil {
		score = eval.ImprovedScore
	}
	me := b.ActivePlayer()
	best, bestVal := game.NoMove, 0.0
	for i, m := range b.LegalMoves() {
		v := score(b.ForecastMove(m), me)
		if i == 0 || v > bestVal {
			best, bestVal = m, v
		}
	}
	return best
}
