package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var colHeader = color.RGBA{0x22, 0x22, 0x44, 0xff}

// drawHeader 在顶部一行绘制状态文字
func drawHeader(screen *ebiten.Image, strs ...string) {
	vector.DrawFilledRect(screen, 0, 0, WindowWidth, headerHeight, colHeader, false)
	x, y := 10, headerHeight/2+5
	for _, s := range strs {
		text.Draw(screen, s, basicfont.Face7x13, x, y, color.White)
		x += len(s)*7 + 30
	}
}
