// File ui/input.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput 处理鼠标点击：点到合法格就走子
func (gs *GameScreen) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	l := newBoardLayout(gs.state.Board)
	c, ok := l.cellAt(float64(mx), float64(my))
	if !ok {
		return
	}
	if gs.play(c) {
		gs.message = ""
	} else {
		gs.message = "illegal: " + c.String()
	}
}
