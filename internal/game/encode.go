// internal/game/encode.go
package game

import "fmt"

// State is the wire form of a Board. Cells are [row, col] pairs; a location
// of nil means the player has not been placed yet.
type State struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Visited   [][2]int `json:"visited"`
	Player1   *[2]int  `json:"player1,omitempty"`
	Player2   *[2]int  `json:"player2,omitempty"`
	Active    int      `json:"active"`
	MoveCount int      `json:"move_count"`
}

// State snapshots b.
func (b *Board) State() State {
	s := State{
		Width:     b.width,
		Height:    b.height,
		Visited:   make([][2]int, 0),
		Active:    int(b.active),
		MoveCount: b.moveCount,
	}
	for i, v := range b.visited {
		if v {
			s.Visited = append(s.Visited, [2]int{i / b.width, i % b.width})
		}
	}
	if l := b.locations[Player1]; l != NoMove {
		s.Player1 = &[2]int{l.Row, l.Col}
	}
	if l := b.locations[Player2]; l != NoMove {
		s.Player2 = &[2]int{l.Row, l.Col}
	}
	return s
}

// FromState rebuilds a Board, checking that the state is self-consistent.
func FromState(s State, opts ...Option) (*Board, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidBoard, s.Width, s.Height)
	}
	b := NewBoard(s.Width, s.Height, opts...)
	for _, v := range s.Visited {
		if err := b.Block(Cell{v[0], v[1]}); err != nil {
			return nil, err
		}
	}
	for _, p := range []Player{Player1, Player2} {
		loc := s.Player1
		if p == Player2 {
			loc = s.Player2
		}
		if loc == nil {
			continue
		}
		c := Cell{loc[0], loc[1]}
		if !b.InBounds(c) {
			return nil, fmt.Errorf("%w: %v location %v", ErrOutOfBounds, p, c)
		}
		// 玩家所在格必然已被访问
		b.visited[b.index(c)] = true
		b.locations[p] = c
	}
	if b.locations[Player1] != NoMove && b.locations[Player1] == b.locations[Player2] {
		return nil, fmt.Errorf("%w: players share %v", ErrInvalidBoard, b.locations[Player1])
	}
	switch Player(s.Active) {
	case Player1, Player2:
		b.active = Player(s.Active)
	default:
		return nil, fmt.Errorf("%w: active player %d", ErrInvalidBoard, s.Active)
	}
	b.moveCount = s.MoveCount
	return b, nil
}

// CellPair converts c to the [row, col] wire form.
func CellPair(c Cell) [2]int { return [2]int{c.Row, c.Col} }
