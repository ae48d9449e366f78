package eval

import (
	"math"

	"isolation_go/internal/game"
)

// Saturation squashes a distance advantage into a bounded score. It must
// be odd, strictly increasing and zero at zero.
type Saturation func(d float64) float64

// Arctan is bounded by ±π/2.
func Arctan(d float64) float64 { return math.Atan(d) }

// Logistic is a sigmoid rescaled to (-1, 1); it equals tanh(d/2).
func Logistic(d float64) float64 { return math.Tanh(d / 2) }

// Territory builds a distance-comparison heuristic. Every blank cell votes:
// +1 if only p can reach it, -1 if only the opponent can, 0 if neither,
// and f(oppDist - pDist) when both can.
//
// Shared cells are bucketed by distance difference and opposite buckets
// are netted before f is applied, so mirror-image positions sum to exactly
// zero.
func Territory(f Saturation) ScoreFunc {
	return func(b *game.Board, p game.Player) float64 {
		if !b.HasLegalMoves() {
			return b.Utility(p)
		}

		mine := Distances(b, p)
		theirs := Distances(b, b.Opponent(p))

		exclusive := 0
		shared := make(map[int]int) // oppDist-pDist → cell count
		maxDiff := 0
		for _, c := range b.BlankSpaces() {
			pd, pok := mine[c]
			od, ook := theirs[c]
			switch {
			case pok && ook:
				d := od - pd
				shared[d]++
				if d < 0 {
					d = -d
				}
				if d > maxDiff {
					maxDiff = d
				}
			case pok:
				exclusive++
			case ook:
				exclusive--
			}
		}

		score := float64(exclusive)
		for d := 1; d <= maxDiff; d++ {
			if n := shared[d] - shared[-d]; n != 0 {
				score += float64(n) * f(float64(d))
			}
		}
		return score
	}
}

// CustomScore is the default evaluator: territory with an arctangent vote.
var CustomScore = Territory(Arctan)

// LogisticScore is the same heuristic with a logistic vote.
var LogisticScore = Territory(Logistic)
