package eval

import "isolation_go/internal/game"

// FreeMoves estimates a position by mobility plus a few sampled
// continuations. It runs its own shallow lookahead and does not take part
// in the searcher's tree.
type FreeMoves struct {
	Depth    int       // plies of lookahead, 1 = mobility only
	Unroll   int       // continuations sampled at the first ply
	Discount float64   // weight of the sampled continuations
	Rand     game.Rand // nil uses game.GlobalRand
}

// NewFreeMoves returns the default configuration: two plies, three samples,
// no discount.
func NewFreeMoves() FreeMoves {
	return FreeMoves{Depth: 2, Unroll: 3, Discount: 1}
}

// Score implements ScoreFunc.
func (f FreeMoves) Score(b *game.Board, p game.Player) float64 {
	r := f.Rand
	if r == nil {
		r = game.GlobalRand
	}
	return freeMoves(b, p, f.Depth, f.Unroll, f.Discount, r)
}

func freeMoves(b *game.Board, p game.Player, depth, unroll int, discount float64, r game.Rand) float64 {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return b.Utility(p)
	}

	mobility := float64(len(moves))
	if b.ActivePlayer() != p {
		mobility = -mobility
	}
	if depth <= 1 || unroll <= 0 {
		return mobility
	}

	follow := game.Sample(r, moves, unroll)
	sum := 0.0
	for _, m := range follow {
		// 后续层只展开一步，且不打折
		sum += freeMoves(b.ForecastMove(m), p, depth-1, 1, 1, r)
	}
	return mobility + discount*sum/float64(len(follow))
}
