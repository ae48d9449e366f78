// internal/ui/replay.go
package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"isolation_go/internal/game"
	"isolation_go/internal/match"
)

// ReplayScreen steps through saved games. Space toggles autoplay, the
// arrow keys step, Page Up/Down switch games.
type ReplayScreen struct {
	records []*match.Record
	boards  [][]*game.Board

	mi, si      int // game index, position index
	playing     bool
	delay       time.Duration
	lastAdvance time.Time
	anim        animator
}

func NewReplayScreen(records []*match.Record, delay time.Duration) (*ReplayScreen, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no games to replay")
	}
	rs := &ReplayScreen{records: records, delay: delay, lastAdvance: time.Now()}
	for i, r := range records {
		bs, err := r.Positions()
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		rs.boards = append(rs.boards, bs)
	}
	return rs, nil
}

func (rs *ReplayScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		rs.playing = !rs.playing
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		rs.playing = false
		rs.advance()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		rs.playing = false
		rs.rewind()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) && rs.mi+1 < len(rs.records) {
		rs.mi, rs.si = rs.mi+1, 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) && rs.mi > 0 {
		rs.mi, rs.si = rs.mi-1, 0
	}

	if rs.playing && time.Since(rs.lastAdvance) >= rs.delay {
		rs.advance()
	}
	return nil
}

// advance 前进一步，到局末则切到下一局
func (rs *ReplayScreen) advance() {
	rs.lastAdvance = time.Now()
	bs := rs.boards[rs.mi]
	if rs.si+1 < len(bs) {
		prev := bs[rs.si]
		rs.si++
		p := prev.ActivePlayer()
		rs.anim.start(p, prev.PlayerLocation(p), bs[rs.si].PlayerLocation(p))
		return
	}
	if rs.mi+1 < len(rs.boards) {
		rs.mi, rs.si = rs.mi+1, 0
		return
	}
	rs.playing = false
}

func (rs *ReplayScreen) rewind() {
	if rs.si > 0 {
		rs.si--
		return
	}
	if rs.mi > 0 {
		rs.mi--
		rs.si = len(rs.boards[rs.mi]) - 1
	}
}

func (rs *ReplayScreen) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	rec := rs.records[rs.mi]
	b := rs.boards[rs.mi][rs.si]
	l := newBoardLayout(b)

	last := game.NoMove
	if rs.si > 0 {
		mv := rec.Moves[rs.si-1]
		last = game.Cell{Row: mv[0], Col: mv[1]}
	}
	drawBoard(screen, b, l, nil, last, rs.anim.hidden())
	rs.anim.draw(screen, l)

	state := map[bool]string{true: "playing", false: "paused"}[rs.playing]
	drawHeader(screen,
		fmt.Sprintf("Game %d/%d", rs.mi+1, len(rs.records)),
		fmt.Sprintf("Ply %d/%d", rs.si, len(rec.Moves)),
		fmt.Sprintf("%s vs %s", rec.Player1, rec.Player2),
		fmt.Sprintf("Winner %s (%s)", rec.WinnerName(), rec.Reason),
		state,
	)
}

func (rs *ReplayScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
