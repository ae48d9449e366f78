package game

import (
	"errors"
)

// GameState tracks a game in progress: the live board, the moves played and
// the result once the game is over.
type GameState struct {
	Board    *Board // 当前棋盘
	History  []Cell // 已走的每一步
	GameOver bool
	Winner   Player // NoPlayer 直到分出胜负
}

// NewGameState starts a game on an empty width×height board.
func NewGameState(width, height int, opts ...Option) *GameState {
	return FromBoard(NewBoard(width, height, opts...))
}

// FromBoard wraps an existing position.
func FromBoard(b *Board) *GameState {
	gs := &GameState{Board: b}
	gs.checkGameOver()
	return gs
}

// MakeMove plays m for the active player and updates the result.
func (gs *GameState) MakeMove(m Cell) error {
	if gs.GameOver {
		return errors.New("game is over")
	}
	if err := gs.Board.Apply(m); err != nil {
		return err
	}
	gs.History = append(gs.History, m)
	gs.checkGameOver()
	return nil
}

// Forfeit ends the game in favour of p's opponent.
func (gs *GameState) Forfeit(p Player) {
	gs.GameOver = true
	gs.Winner = Opponent(p)
}

// checkGameOver: 轮到的一方无路可走即判负
func (gs *GameState) checkGameOver() {
	if gs.GameOver {
		return
	}
	if !gs.Board.HasLegalMoves() {
		gs.GameOver = true
		gs.Winner = gs.Board.InactivePlayer()
	}
}

// Reset starts over on an empty board of the same size.
func (gs *GameState) Reset() {
	b := NewBoard(gs.Board.width, gs.Board.height)
	b.rng = gs.Board.rng
	*gs = *FromBoard(b)
}
