// internal/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"isolation_go/internal/eval"
	"isolation_go/internal/game"
	"isolation_go/internal/match"
	"isolation_go/internal/search"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	TimeLimitMs int    `json:"time_limit_ms"` // per move
	SearchDepth int    `json:"search_depth"`  // minimax
	MaxDepth    int    `json:"max_depth"`     // alpha-beta cap, 0 = none
	TimeoutMs   int    `json:"timeout_ms"`    // stop searching below this
	Heuristic   string `json:"heuristic"`     // used when an agent names none
	Player1     string `json:"player1"`       // agent spec "kind[:heuristic]" for the AI seat
	Player2     string `json:"player2"`
	LogLevel    string `json:"log_level"`
	LogPretty   bool   `json:"log_pretty"`

	Tournament TournamentConfig `json:"tournament"`
	Server     ServerConfig     `json:"server"`
}

type TournamentConfig struct {
	Agents    []string `json:"agents"`
	Rounds    int      `json:"rounds"`
	Workers   int      `json:"workers"`
	Seed      uint64   `json:"seed"`
	Output    string   `json:"output"`     // CSV path
	RecordDir string   `json:"record_dir"` // empty = don't save games
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

func DefaultConfig() Config {
	return Config{
		Width:       7,
		Height:      7,
		TimeLimitMs: 150,
		SearchDepth: search.DefaultSearchDepth,
		TimeoutMs:   int(search.DefaultTimeout / time.Millisecond),
		Heuristic:   "custom_score",
		Player1:     "alphabeta",
		Player2:     "alphabeta",
		LogLevel:    "info",
		LogPretty:   true,

		Tournament: TournamentConfig{
			Agents: []string{
				"random",
				"minimax:open_move_score",
				"alphabeta:improved_score",
				"alphabeta:custom_score",
				"alphabeta:custom_score_2",
			},
			Rounds:  5,
			Workers: 0,
			Seed:    1,
			Output:  "results.csv",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a JSON file on top of the defaults. Fields missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.TimeLimitMs < 0 || c.TimeoutMs < 0 || c.SearchDepth < 0 || c.MaxDepth < 0 {
		return fmt.Errorf("%w: negative time or depth", ErrInvalidConfig)
	}
	if _, err := eval.Lookup(c.Heuristic); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, p := range []game.Player{game.Player1, game.Player2} {
		if _, err := c.Agent(p); err != nil {
			return fmt.Errorf("%w: %v: %w", ErrInvalidConfig, p, err)
		}
	}
	if c.Tournament.Rounds < 0 || c.Tournament.Workers < 0 {
		return fmt.Errorf("%w: negative rounds or workers", ErrInvalidConfig)
	}
	return nil
}

// TimeLimit is the per-move budget.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// Search builds the searcher settings.
func (c Config) Search() (search.Config, error) {
	score, err := eval.Lookup(c.Heuristic)
	if err != nil {
		return search.Config{}, err
	}
	return search.Config{
		SearchDepth: c.SearchDepth,
		Score:       score,
		Timeout:     time.Duration(c.TimeoutMs) * time.Millisecond,
		MaxDepth:    c.MaxDepth,
	}, nil
}

// Agent builds the player configured for seat p. A spec without a
// heuristic uses Heuristic.
func (c Config) Agent(p game.Player) (match.Agent, error) {
	spec := c.Player1
	if p == game.Player2 {
		spec = c.Player2
	}
	sc, err := c.Search()
	if err != nil {
		return match.Agent{}, err
	}
	return match.ParseAgent(spec, sc)
}
