package search

import (
	"errors"
	"fmt"
)

var ErrUnknownAgent = errors.New("unknown agent")

// Agent kinds accepted by NewPlayer.
const (
	KindAlphaBeta = "alphabeta"
	KindMinimax   = "minimax"
	KindGreedy    = "greedy"
	KindRandom    = "random"
)

// Kinds lists the agent kinds in display order.
func Kinds() []string {
	return []string{KindAlphaBeta, KindMinimax, KindGreedy, KindRandom}
}

// NewPlayer builds a fresh player of the given kind. Tree searchers keep
// per-search state, so every game needs its own instance.
func NewPlayer(kind string, cfg Config) (Player, error) {
	switch kind {
	case KindAlphaBeta:
		return NewAlphaBetaPlayer(cfg), nil
	case KindMinimax:
		return NewMinimaxPlayer(cfg), nil
	case KindGreedy:
		return GreedyPlayer{Score: cfg.Score}, nil
	case KindRandom:
		return RandomPlayer{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, kind)
}
