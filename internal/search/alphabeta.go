// internal/search/alphabeta.go
package search

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"isolation_go/internal/game"
)

// AlphaBetaPlayer runs iterative-deepening alpha-beta until the budget is
// spent and plays the move of the deepest completed iteration.
type AlphaBetaPlayer struct {
	Config
	clock

	hitLimit bool // an evaluated leaf was cut by the depth limit
}

func NewAlphaBetaPlayer(cfg Config) *AlphaBetaPlayer {
	return &AlphaBetaPlayer{Config: cfg.withDefaults()}
}

func (p *AlphaBetaPlayer) GetMove(b *game.Board, timeLeft TimeLeft) game.Cell {
	return p.Search(b, timeLeft).Move
}

// Search deepens one ply at a time. It stops on timeout, at MaxDepth, or
// once an iteration finishes without reaching the depth limit anywhere,
// after which deeper passes cannot change the answer.
func (p *AlphaBetaPlayer) Search(b *game.Board, timeLeft TimeLeft) Result {
	p.Config = p.Config.withDefaults()
	p.start(timeLeft, p.Timeout)
	begin := time.Now()

	res := Result{Move: game.NoMove}
	if !b.HasLegalMoves() {
		return res
	}

	root := b.ActivePlayer()
	for depth := 1; p.MaxDepth == 0 || depth <= p.MaxDepth; depth++ {
		p.hitLimit = false
		m, v, err := p.alphaBeta(b, depth, negInf, posInf, root)
		if err != nil {
			if errors.Is(err, ErrSearchTimeout) {
				log.Debug().Int("depth", depth).Int("nodes", p.nodes).Msg("alphabeta timeout")
			}
			break
		}
		res.Move, res.Score, res.Depth = m, v, depth
		log.Debug().
			Int("depth", depth).
			Stringer("move", m).
			Float64("score", v).
			Int("nodes", p.nodes).
			Msg("alphabeta depth complete")
		if !p.hitLimit {
			break // 整棵树已搜完
		}
	}

	res.Nodes = p.nodes
	res.Elapsed = time.Since(begin)
	return res
}

// AlphaBeta searches b to depth with the window (alpha, beta) and returns
// the best move for b's active player with its value.
func (p *AlphaBetaPlayer) AlphaBeta(b *game.Board, depth int, alpha, beta float64) (game.Cell, float64, error) {
	if p.Score == nil {
		p.Config = p.Config.withDefaults()
	}
	return p.alphaBeta(b, depth, alpha, beta, b.ActivePlayer())
}

func (p *AlphaBetaPlayer) alphaBeta(b *game.Board, depth int, alpha, beta float64, root game.Player) (game.Cell, float64, error) {
	if err := p.expand(); err != nil {
		return game.NoMove, 0, err
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, b.Utility(root), nil
	}
	if depth <= 0 {
		p.hitLimit = true
		return moves[0], p.Score(b, root), nil
	}

	maximizing := b.ActivePlayer() == root
	best, bestVal := game.NoMove, 0.0
	for i, m := range moves {
		_, v, err := p.alphaBeta(b.ForecastMove(m), depth-1, alpha, beta, root)
		if err != nil {
			return game.NoMove, 0, err
		}
		if i == 0 || (maximizing && v > bestVal) || (!maximizing && v < bestVal) {
			best, bestVal = m, v
		}

		if maximizing {
			if bestVal >= beta {
				break
			}
			if bestVal > alpha {
				alpha = bestVal
			}
		} else {
			if bestVal <= alpha {
				break
			}
			if bestVal < beta {
				beta = bestVal
			}
		}
	}
	return best, bestVal, nil
}
