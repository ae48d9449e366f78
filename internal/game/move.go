package game

import "fmt"

// Cell is a (row, column) coordinate. Moves are the cell a player lands on.
type Cell struct {
	Row, Col int
}

// NoMove is returned when no legal move is available.
var NoMove = Cell{-1, -1}

// knightDirs 八个马步偏移，顺序固定（未洗牌时的走法顺序）
var knightDirs = [8]Cell{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Add returns c shifted by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{c.Row + d.Row, c.Col + d.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// IsKnightHop reports whether to is one knight move away from from.
func IsKnightHop(from, to Cell) bool {
	for _, d := range knightDirs {
		if from.Add(d) == to {
			return true
		}
	}
	return false
}
