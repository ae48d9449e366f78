// internal/eval/distance.go
package eval

import "isolation_go/internal/game"

// DistanceMap maps a cell to the number of knight hops needed to reach it.
// Cells missing from the map are unreachable.
type DistanceMap map[game.Cell]int

// Distances runs a breadth-first search from p's cell over the knight-move
// graph of the current board. Nothing is simulated: every hop is checked
// against the occupancy as it is now. An unplaced player yields an empty
// map.
func Distances(b *game.Board, p game.Player) DistanceMap {
	dist := make(DistanceMap)
	start := b.PlayerLocation(p)
	if start == game.NoMove {
		return dist
	}

	frontier := []game.Cell{start}
	dist[start] = 0
	for step := 1; len(frontier) > 0; step++ {
		var next []game.Cell
		for _, c := range frontier {
			for _, n := range b.MovesFrom(c) {
				if _, seen := dist[n]; seen {
					continue
				}
				dist[n] = step
				next = append(next, n)
			}
		}
		frontier = next
	}
	return dist
}
