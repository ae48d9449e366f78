// internal/game/board.go
package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Player identifies one of the two seats. The zero value means "nobody".
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidBoard = errors.New("invalid board")
)

// Board is an Isolation position: a width×height grid, the cells already
// visited by either player and the current location of each player.
//
// A Board is treated as immutable by the searchers: ForecastMove returns a
// new Board. Apply and Block mutate in place and are meant for harnesses
// and test setup. A Board is not safe for concurrent use.
type Board struct {
	width, height int
	visited       []bool    // row-major, true once a player has stood there
	locations     [3]Cell   // indexed by Player; NoMove until placed
	active        Player    // player to move
	moveCount     int       // plies applied so far
	rng           Rand      // optional shuffler for legal-move order
	legal         [3][]Cell // per-player legal moves, computed lazily
	legalDone     [3]bool
}

// Option customises a new Board.
type Option func(*Board)

// WithRand shuffles every legal-move list with r. Boards forecast from this
// one share r.
func WithRand(r Rand) Option {
	return func(b *Board) { b.rng = r }
}

// NewBoard creates an empty board; Player1 moves first.
func NewBoard(width, height int, opts ...Option) *Board {
	b := &Board{
		width:   width,
		height:  height,
		visited: make([]bool, width*height),
		active:  Player1,
	}
	b.locations = [3]Cell{NoMove, NoMove, NoMove}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MoveCount() int { return b.moveCount }

// ActivePlayer returns the player to move.
func (b *Board) ActivePlayer() Player { return b.active }

// InactivePlayer returns the player waiting for its turn.
func (b *Board) InactivePlayer() Player { return Opponent(b.active) }

// Opponent returns the other seat.
func (b *Board) Opponent(p Player) Player { return Opponent(p) }

// Opponent returns the other seat, or NoPlayer for anything but Player1/2.
func Opponent(p Player) Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// InBounds reports whether c lies on the grid.
func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.height && c.Col >= 0 && c.Col < b.width
}

func (b *Board) index(c Cell) int { return c.Row*b.width + c.Col }

// MoveIsLegal reports whether c is on the board and has never been visited.
func (b *Board) MoveIsLegal(c Cell) bool {
	return b.InBounds(c) && !b.visited[b.index(c)]
}

// IsBlank is an alias of MoveIsLegal that reads better outside move checks.
func (b *Board) IsBlank(c Cell) bool { return b.MoveIsLegal(c) }

// PlayerLocation returns where p stands, or NoMove if p has not been placed.
func (b *Board) PlayerLocation(p Player) Cell {
	if p != Player1 && p != Player2 {
		return NoMove
	}
	return b.locations[p]
}

// BlankSpaces lists every unvisited cell in row-major order.
func (b *Board) BlankSpaces() []Cell {
	out := make([]Cell, 0, len(b.visited))
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			if !b.visited[r*b.width+c] {
				out = append(out, Cell{r, c})
			}
		}
	}
	return out
}

// LegalMoves returns the active player's legal moves.
func (b *Board) LegalMoves() []Cell { return b.LegalMovesFor(b.active) }

// LegalMovesFor returns p's legal moves from the current occupancy. An
// unplaced player may move to any blank cell. The slice is cached for the
// lifetime of the board, so the order is stable; callers must not modify it.
func (b *Board) LegalMovesFor(p Player) []Cell {
	if p != Player1 && p != Player2 {
		return nil
	}
	if b.legalDone[p] {
		return b.legal[p]
	}
	var moves []Cell
	loc := b.locations[p]
	if loc == NoMove {
		moves = b.BlankSpaces()
	} else {
		moves = b.MovesFrom(loc)
	}
	if b.rng != nil {
		Shuffle(b.rng, moves)
	}
	b.legal[p] = moves
	b.legalDone[p] = true
	return moves
}

// MovesFrom lists the blank cells one knight hop away from c, in the fixed
// direction order. It ignores whose turn it is.
func (b *Board) MovesFrom(c Cell) []Cell {
	moves := make([]Cell, 0, len(knightDirs))
	for _, d := range knightDirs {
		if to := c.Add(d); b.MoveIsLegal(to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// HasLegalMoves reports whether the active player can move.
func (b *Board) HasLegalMoves() bool { return len(b.LegalMoves()) > 0 }

// IsWinner reports whether p has won: p is waiting and the opponent is stuck.
func (b *Board) IsWinner(p Player) bool {
	return p == b.InactivePlayer() && !b.HasLegalMoves()
}

// IsLoser reports whether p is to move and has nowhere to go.
func (b *Board) IsLoser(p Player) bool {
	return p == b.active && !b.HasLegalMoves()
}

// IsOver reports whether the game has ended.
func (b *Board) IsOver() bool { return !b.HasLegalMoves() }

// Utility is +Inf if p has won, -Inf if p has lost and 0 otherwise.
func (b *Board) Utility(p Player) float64 {
	switch {
	case b.IsWinner(p):
		return math.Inf(1)
	case b.IsLoser(p):
		return math.Inf(-1)
	}
	return 0
}

// Clone returns a deep copy. The random source is shared.
func (b *Board) Clone() *Board {
	nb := &Board{
		width:     b.width,
		height:    b.height,
		visited:   make([]bool, len(b.visited)),
		locations: b.locations,
		active:    b.active,
		moveCount: b.moveCount,
		rng:       b.rng,
	}
	copy(nb.visited, b.visited)
	return nb
}

// ForecastMove returns the position after the active player moves to m.
// The receiver is left untouched and m is not validated.
func (b *Board) ForecastMove(m Cell) *Board {
	nb := b.Clone()
	nb.move(m)
	return nb
}

// Apply moves the active player to m in place, validating it first.
func (b *Board) Apply(m Cell) error {
	if !b.InBounds(m) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, m)
	}
	for _, lm := range b.LegalMoves() {
		if lm == m {
			b.move(m)
			return nil
		}
	}
	return fmt.Errorf("%w: %v for %v", ErrIllegalMove, m, b.active)
}

func (b *Board) move(m Cell) {
	b.visited[b.index(m)] = true
	b.locations[b.active] = m
	b.active = Opponent(b.active)
	b.moveCount++
	b.legal = [3][]Cell{}
	b.legalDone = [3]bool{}
}

// Block marks cells as visited without moving anyone, for setting up
// positions.
func (b *Board) Block(cells ...Cell) error {
	for _, c := range cells {
		if !b.InBounds(c) {
			return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
		}
		b.visited[b.index(c)] = true
	}
	b.legal = [3][]Cell{}
	b.legalDone = [3]bool{}
	return nil
}

// String draws the board: "1"/"2" for the players, "-" for visited cells.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.height; r++ {
		sb.WriteString(" |")
		for c := 0; c < b.width; c++ {
			cell := Cell{r, c}
			switch {
			case cell == b.locations[Player1]:
				sb.WriteString(" 1 |")
			case cell == b.locations[Player2]:
				sb.WriteString(" 2 |")
			case b.visited[b.index(cell)]:
				sb.WriteString(" - |")
			default:
				sb.WriteString("   |")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
