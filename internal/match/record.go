package match

import (
	"encoding/json"
	"fmt"
	"os"

	"isolation_go/internal/game"
)

// Record is a finished game as saved to disk and replayed by the viewer.
type Record struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Player1     string   `json:"player1"`
	Player2     string   `json:"player2"`
	Moves       [][2]int `json:"moves"`
	Winner      int      `json:"winner"`
	Reason      string   `json:"reason"`
	TimeLimitMs int64    `json:"time_limit_ms"`
	DurationMs  int64    `json:"duration_ms"`
}

func (r *Record) name(p game.Player) string {
	switch p {
	case game.Player1:
		return r.Player1
	case game.Player2:
		return r.Player2
	}
	return "none"
}

// WinnerName returns the winning agent's name, or "none".
func (r *Record) WinnerName() string { return r.name(game.Player(r.Winner)) }

// Positions replays the moves and returns the board before the first move
// followed by the board after every move.
func (r *Record) Positions() ([]*game.Board, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", game.ErrInvalidBoard, r.Width, r.Height)
	}
	b := game.NewBoard(r.Width, r.Height)
	out := []*game.Board{b.Clone()}
	for i, mv := range r.Moves {
		if err := b.Apply(game.Cell{Row: mv[0], Col: mv[1]}); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		out = append(out, b.Clone())
	}
	return out, nil
}

// Save writes r as indented JSON.
func (r *Record) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// LoadRecord reads a record written by Save.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	return &r, nil
}
