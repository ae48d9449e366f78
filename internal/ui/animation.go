// internal/ui/animation.go
package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"isolation_go/internal/game"
)

// hopAnim slides a piece along a knight hop. Placements have no source
// cell and just pop in.
type hopAnim struct {
	Player   game.Player
	From, To game.Cell
	Start    time.Time
	Duration time.Duration
	Done     bool
}

func newHopAnim(p game.Player, from, to game.Cell) *hopAnim {
	return &hopAnim{
		Player:   p,
		From:     from,
		To:       to,
		Start:    time.Now(),
		Duration: 250 * time.Millisecond,
	}
}

// progress 返回 [0,1]，结束后标记 Done
func (a *hopAnim) progress() float64 {
	t := float64(time.Since(a.Start)) / float64(a.Duration)
	if t >= 1 {
		a.Done = true
		return 1
	}
	if t < 0 {
		return 0
	}
	return t
}

func (a *hopAnim) draw(dst *ebiten.Image, l boardLayout) {
	t := float32(a.progress())
	tx, ty := l.center(a.To)
	if a.From == game.NoMove {
		drawPiece(dst, tx, ty, float32(l.cell)*t, a.Player)
		return
	}
	fx, fy := l.center(a.From)
	// 先走长边再走短边，像马一样拐个弯
	mx, my := fx, ty
	if abs(a.To.Col-a.From.Col) == 2 {
		mx, my = tx, fy
	}
	var x, y float32
	if t < 0.5 {
		x, y = lerp(fx, mx, t*2), lerp(fy, my, t*2)
	} else {
		x, y = lerp(mx, tx, t*2-1), lerp(my, ty, t*2-1)
	}
	drawPiece(dst, x, y, float32(l.cell), a.Player)
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// animator keeps at most one running animation per player.
type animator struct {
	anims map[game.Player]*hopAnim
}

func (a *animator) start(p game.Player, from, to game.Cell) {
	if a.anims == nil {
		a.anims = make(map[game.Player]*hopAnim)
	}
	a.anims[p] = newHopAnim(p, from, to)
}

// hidden lists players whose piece is drawn by an animation this frame.
func (a *animator) hidden() map[game.Player]bool {
	out := make(map[game.Player]bool, len(a.anims))
	for p, an := range a.anims {
		if an.Done {
			delete(a.anims, p)
			continue
		}
		out[p] = true
	}
	return out
}

func (a *animator) busy() bool {
	for _, an := range a.anims {
		if !an.Done {
			return true
		}
	}
	return false
}

func (a *animator) draw(dst *ebiten.Image, l boardLayout) {
	for _, an := range a.anims {
		an.draw(dst, l)
	}
}
