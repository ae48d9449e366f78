// internal/search/minimax.go
package search

import (
	"errors"

	"github.com/rs/zerolog/log"

	"isolation_go/internal/game"
)

// MinimaxPlayer searches to a fixed depth without pruning.
type MinimaxPlayer struct {
	Config
	clock
}

func NewMinimaxPlayer(cfg Config) *MinimaxPlayer {
	return &MinimaxPlayer{Config: cfg.withDefaults()}
}

// GetMove runs Minimax at SearchDepth. A timeout yields game.NoMove since
// there is no shallower result to fall back on.
func (p *MinimaxPlayer) GetMove(b *game.Board, timeLeft TimeLeft) game.Cell {
	p.Config = p.Config.withDefaults()
	p.start(timeLeft, p.Timeout)

	m, score, err := p.Minimax(b, p.SearchDepth)
	if errors.Is(err, ErrSearchTimeout) {
		log.Debug().Int("depth", p.SearchDepth).Int("nodes", p.nodes).Msg("minimax timeout")
		return game.NoMove
	}
	log.Debug().
		Int("depth", p.SearchDepth).
		Stringer("move", m).
		Float64("score", score).
		Int("nodes", p.nodes).
		Msg("minimax done")
	return m
}

// Minimax returns the best move for b's active player at the given depth
// and its value from that player's point of view. Among equal values the
// first move in board order wins.
func (p *MinimaxPlayer) Minimax(b *game.Board, depth int) (game.Cell, float64, error) {
	if p.Score == nil {
		p.Config = p.Config.withDefaults()
	}
	return p.minimax(b, depth, true, b.ActivePlayer())
}

func (p *MinimaxPlayer) minimax(b *game.Board, depth int, maximizing bool, root game.Player) (game.Cell, float64, error) {
	if err := p.expand(); err != nil {
		return game.NoMove, 0, err
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, b.Utility(root), nil
	}
	if depth <= 0 {
		return game.NoMove, p.Score(b, root), nil
	}

	best, bestVal := game.NoMove, 0.0
	for i, m := range moves {
		_, v, err := p.minimax(b.ForecastMove(m), depth-1, !maximizing, root)
		if err != nil {
			return game.NoMove, 0, err
		}
		if i == 0 || (maximizing && v > bestVal) || (!maximizing && v < bestVal) {
			best, bestVal = m, v
		}
	}
	return best, bestVal, nil
}
