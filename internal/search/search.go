// internal/search/search.go
package search

import (
	"errors"
	"math"
	"time"

	"isolation_go/internal/eval"
	"isolation_go/internal/game"
)

// ErrSearchTimeout unwinds a search whose time budget fell below the
// configured threshold. It never escapes GetMove.
var ErrSearchTimeout = errors.New("search timeout")

const (
	DefaultSearchDepth = 3
	DefaultTimeout     = 10 * time.Millisecond
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Player picks a move for the active player of b. It returns game.NoMove
// when there is nothing to play or the budget ran out before any result.
type Player interface {
	GetMove(b *game.Board, timeLeft TimeLeft) game.Cell
}

// Config is shared by the tree searchers.
type Config struct {
	SearchDepth int            // minimax depth
	Score       eval.ScoreFunc // leaf evaluator
	Timeout     time.Duration  // stop when less than this is left
	MaxDepth    int            // iterative deepening cap, 0 = none
}

// DefaultConfig returns depth 3, CustomScore and a 10ms threshold.
func DefaultConfig() Config {
	return Config{
		SearchDepth: DefaultSearchDepth,
		Score:       eval.CustomScore,
		Timeout:     DefaultTimeout,
	}
}

// 零值字段补默认值
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SearchDepth <= 0 {
		c.SearchDepth = d.SearchDepth
	}
	if c.Score == nil {
		c.Score = d.Score
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxDepth < 0 {
		c.MaxDepth = 0
	}
	return c
}

// Result describes a finished alpha-beta search.
type Result struct {
	Move    game.Cell
	Score   float64 // value of Move at Depth, may be ±Inf
	Depth   int     // deepest completed iteration, 0 if none
	Nodes   int
	Elapsed time.Duration
}

// clock is embedded by the searchers: it holds the time accessor recorded
// at GetMove and the node counter.
type clock struct {
	timeLeft TimeLeft
	timeout  time.Duration
	nodes    int
}

func (c *clock) start(timeLeft TimeLeft, timeout time.Duration) {
	if timeLeft == nil {
		timeLeft = Unlimited
	}
	c.timeLeft = timeLeft
	c.timeout = timeout
	c.nodes = 0
}

// Nodes is the number of positions visited by the last search.
func (c *clock) Nodes() int { return c.nodes }

// expand is called on entry to every search node.
func (c *clock) expand() error {
	c.nodes++
	if c.timeLeft != nil && c.timeLeft() < c.timeout {
		return ErrSearchTimeout
	}
	return nil
}
