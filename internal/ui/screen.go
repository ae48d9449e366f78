// File /ui/screen.go
package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"isolation_go/internal/game"
	"isolation_go/internal/search"
)

type aiResult struct {
	res search.Result
	ply int // position the search was started on
}

// searcher is implemented by players that report search statistics.
type searcher interface {
	Search(b *game.Board, timeLeft search.TimeLeft) search.Result
}

// GameScreen 实现 ebiten.Game 接口：人类（鼠标）对 AI
type GameScreen struct {
	state     *game.GameState
	human     game.Player
	ai        search.Player
	timeLimit time.Duration

	thinking bool
	aiCh     chan aiResult
	lastAI   search.Result
	anim     animator
	message  string
}

func NewGameScreen(width, height int, human game.Player, ai search.Player, timeLimit time.Duration) *GameScreen {
	return &GameScreen{
		state:     game.NewGameState(width, height),
		human:     human,
		ai:        ai,
		timeLimit: timeLimit,
		aiCh:      make(chan aiResult, 1),
	}
}

func (gs *GameScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && !gs.thinking {
		gs.state.Reset()
		gs.lastAI = search.Result{}
		gs.message = ""
		return nil
	}
	if gs.state.GameOver || gs.anim.busy() {
		return nil
	}

	// AI 回合：后台搜索，棋盘给克隆
	if gs.state.Board.ActivePlayer() != gs.human {
		gs.pollAI()
		return nil
	}

	gs.handleInput()
	return nil
}

func (gs *GameScreen) pollAI() {
	if !gs.thinking {
		gs.thinking = true
		b := gs.state.Board.Clone()
		ply := len(gs.state.History)
		go func() {
			tl := search.Budget(gs.timeLimit)
			var res search.Result
			if s, ok := gs.ai.(searcher); ok {
				res = s.Search(b, tl)
			} else {
				res.Move = gs.ai.GetMove(b, tl)
			}
			gs.aiCh <- aiResult{res, ply}
		}()
		return
	}

	select {
	case r := <-gs.aiCh:
		gs.thinking = false
		if r.ply != len(gs.state.History) {
			return // 局面已重置
		}
		gs.lastAI = r.res
		log.Debug().Stringer("move", r.res.Move).Int("depth", r.res.Depth).Int("nodes", r.res.Nodes).Msg("ai move")
		gs.play(r.res.Move)
	default:
	}
}

// play applies m for the active player and starts its animation. An
// illegal move forfeits the game.
func (gs *GameScreen) play(m game.Cell) bool {
	p := gs.state.Board.ActivePlayer()
	from := gs.state.Board.PlayerLocation(p)
	if err := gs.state.MakeMove(m); err != nil {
		if p != gs.human {
			log.Warn().Err(err).Msg("ai forfeits")
			gs.state.Forfeit(p)
		}
		return false
	}
	gs.anim.start(p, from, m)
	return true
}

func (gs *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	b := gs.state.Board
	l := newBoardLayout(b)

	var hints []game.Cell
	if !gs.state.GameOver && b.ActivePlayer() == gs.human && !gs.anim.busy() {
		hints = b.LegalMoves()
	}
	last := game.NoMove
	if n := len(gs.state.History); n > 0 {
		last = gs.state.History[n-1]
	}
	drawBoard(screen, b, l, hints, last, gs.anim.hidden())
	gs.anim.draw(screen, l)

	status := fmt.Sprintf("Turn | %v", b.ActivePlayer())
	switch {
	case gs.state.GameOver && gs.state.Winner == gs.human:
		status = "You win! (R to restart)"
	case gs.state.GameOver:
		status = "AI wins (R to restart)"
	case gs.thinking:
		status = "AI thinking..."
	}
	drawHeader(screen,
		status,
		fmt.Sprintf("Moves | %d", b.MoveCount()),
		fmt.Sprintf("AI depth | %d", gs.lastAI.Depth),
		fmt.Sprintf("Nodes | %d", gs.lastAI.Nodes),
		gs.message,
	)
}

// Layout 定义窗口尺寸
func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
