// File /ui/render.go
package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"isolation_go/internal/game"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
	headerHeight = 40
	boardMargin  = 20
)

var (
	colBackground = color.RGBA{0x10, 0x10, 0x30, 0xff}
	colBlank      = color.RGBA{0xd8, 0xd0, 0xb8, 0xff}
	colVisited    = color.RGBA{0x40, 0x40, 0x48, 0xff}
	colHint       = color.RGBA{0x40, 0xc0, 0x60, 0xff}
	colLastMove   = color.RGBA{0xff, 0xd0, 0x40, 0xff}
	pieceColors   = map[game.Player]color.RGBA{
		game.Player1: {0xd0, 0x30, 0x30, 0xff},
		game.Player2: {0xf0, 0xf0, 0xf0, 0xff},
	}
)

// boardLayout maps board cells to pixels inside the board area below the
// header.
type boardLayout struct {
	cell             float64
	originX, originY float64
	rows, cols       int
}

func newBoardLayout(b *game.Board) boardLayout {
	areaW := float64(WindowWidth - 2*boardMargin)
	areaH := float64(WindowHeight - headerHeight - 2*boardMargin)
	cell := math.Min(areaW/float64(b.Width()), areaH/float64(b.Height()))
	return boardLayout{
		cell:    cell,
		originX: (float64(WindowWidth) - cell*float64(b.Width())) / 2,
		originY: headerHeight + (float64(WindowHeight-headerHeight)-cell*float64(b.Height()))/2,
		rows:    b.Height(),
		cols:    b.Width(),
	}
}

// cellAt 把屏幕像素坐标反算成格子
func (l boardLayout) cellAt(x, y float64) (game.Cell, bool) {
	col := int(math.Floor((x - l.originX) / l.cell))
	row := int(math.Floor((y - l.originY) / l.cell))
	if row < 0 || col < 0 || row >= l.rows || col >= l.cols {
		return game.NoMove, false
	}
	return game.Cell{Row: row, Col: col}, true
}

// center returns the pixel centre of c.
func (l boardLayout) center(c game.Cell) (float32, float32) {
	x := l.originX + (float64(c.Col)+0.5)*l.cell
	y := l.originY + (float64(c.Row)+0.5)*l.cell
	return float32(x), float32(y)
}

// drawBoard draws the grid, move hints and both players. Pieces that are
// still animating are skipped; the animation draws them.
func drawBoard(dst *ebiten.Image, b *game.Board, l boardLayout, hints []game.Cell, last game.Cell, hidden map[game.Player]bool) {
	gap := float32(math.Max(1, l.cell*0.04))
	size := float32(l.cell) - 2*gap

	// 1) 格子
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			cell := game.Cell{Row: r, Col: c}
			col := colBlank
			if !b.IsBlank(cell) {
				col = colVisited
			}
			x := float32(l.originX+float64(c)*l.cell) + gap
			y := float32(l.originY+float64(r)*l.cell) + gap
			vector.DrawFilledRect(dst, x, y, size, size, col, false)
		}
	}

	// 2) 上一步描边
	if last != game.NoMove {
		x := float32(l.originX+float64(last.Col)*l.cell) + gap
		y := float32(l.originY+float64(last.Row)*l.cell) + gap
		vector.StrokeRect(dst, x, y, size, size, 3, colLastMove, true)
	}

	// 3) 可走提示
	for _, h := range hints {
		cx, cy := l.center(h)
		vector.DrawFilledCircle(dst, cx, cy, float32(l.cell)*0.12, colHint, true)
	}

	// 4) 棋子
	for _, p := range []game.Player{game.Player1, game.Player2} {
		loc := b.PlayerLocation(p)
		if loc == game.NoMove || hidden[p] {
			continue
		}
		cx, cy := l.center(loc)
		drawPiece(dst, cx, cy, float32(l.cell), p)
	}
}

func drawPiece(dst *ebiten.Image, cx, cy, cell float32, p game.Player) {
	vector.DrawFilledCircle(dst, cx, cy, cell*0.36, color.Black, true)
	vector.DrawFilledCircle(dst, cx, cy, cell*0.32, pieceColors[p], true)
}
