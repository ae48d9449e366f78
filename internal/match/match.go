// internal/match/match.go
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"isolation_go/internal/eval"
	"isolation_go/internal/game"
	"isolation_go/internal/search"
)

// Reasons a game ended.
const (
	ReasonNoMoves     = "no_moves"
	ReasonTimeout     = "timeout"
	ReasonIllegalMove = "illegal_move"
)

// Agent names a player factory. A fresh player is built for every game.
type Agent struct {
	Name string
	New  func() (search.Player, error)
}

// ParseAgent reads "kind[:heuristic]", e.g. "alphabeta:custom_score_2".
// The heuristic defaults to cfg.Score.
func ParseAgent(spec string, cfg search.Config) (Agent, error) {
	kind, scoreName, hasScore := strings.Cut(spec, ":")
	if hasScore {
		f, err := eval.Lookup(scoreName)
		if err != nil {
			return Agent{}, err
		}
		cfg.Score = f
	}
	if _, err := search.NewPlayer(kind, cfg); err != nil {
		return Agent{}, err
	}
	return Agent{
		Name: spec,
		New:  func() (search.Player, error) { return search.NewPlayer(kind, cfg) },
	}, nil
}

// Options control a single game.
type Options struct {
	Width, Height int
	TimeLimit     time.Duration // per move
	Opening       []game.Cell   // played before the agents take over

	// OnMove is called after every ply, opening included.
	OnMove func(ply int, b *game.Board, m game.Cell, elapsed time.Duration)
}

// Play runs one game between p1 and p2. A player that overruns the time
// limit or returns an illegal move forfeits; those are outcomes recorded in
// the Record, not errors. Play only fails when ctx is cancelled or an agent
// cannot be built.
func Play(ctx context.Context, p1, p2 Agent, opts Options) (*Record, error) {
	players := [3]search.Player{}
	for i, a := range []Agent{p1, p2} {
		pl, err := a.New()
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.Name, err)
		}
		players[i+1] = pl
	}

	gs := game.NewGameState(opts.Width, opts.Height)
	rec := &Record{
		Width:       opts.Width,
		Height:      opts.Height,
		Player1:     p1.Name,
		Player2:     p2.Name,
		TimeLimitMs: opts.TimeLimit.Milliseconds(),
	}
	start := time.Now()
	ply := 0

	for _, m := range opts.Opening {
		if err := gs.MakeMove(m); err != nil {
			return nil, fmt.Errorf("opening: %w", err)
		}
		rec.Moves = append(rec.Moves, game.CellPair(m))
		ply++
		if opts.OnMove != nil {
			opts.OnMove(ply, gs.Board, m, 0)
		}
	}

	for !gs.GameOver {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		active := gs.Board.ActivePlayer()

		t0 := time.Now()
		deadline := t0.Add(opts.TimeLimit)
		if opts.TimeLimit <= 0 {
			deadline = t0.Add(time.Duration(1<<62))
		}
		moveCtx, cancel := context.WithDeadline(ctx, deadline)
		m := players[active].GetMove(gs.Board.Clone(), search.FromContext(moveCtx))
		cancel()
		elapsed := time.Since(t0)

		if opts.TimeLimit > 0 && elapsed > opts.TimeLimit {
			gs.Forfeit(active)
			rec.Reason = ReasonTimeout
			log.Warn().Str("player", rec.name(active)).Dur("elapsed", elapsed).Msg("forfeit on time")
			break
		}
		if err := gs.MakeMove(m); err != nil {
			gs.Forfeit(active)
			rec.Reason = ReasonIllegalMove
			log.Warn().Str("player", rec.name(active)).Err(err).Msg("forfeit on illegal move")
			break
		}
		rec.Moves = append(rec.Moves, game.CellPair(m))
		ply++
		if opts.OnMove != nil {
			opts.OnMove(ply, gs.Board, m, elapsed)
		}
	}
	if rec.Reason == "" {
		rec.Reason = ReasonNoMoves
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, ctx.Err()
	}

	rec.Winner = int(gs.Winner)
	rec.DurationMs = time.Since(start).Milliseconds()
	log.Info().
		Str("player1", p1.Name).
		Str("player2", p2.Name).
		Str("winner", rec.name(gs.Winner)).
		Str("reason", rec.Reason).
		Int("plies", len(rec.Moves)).
		Msg("game over")
	return rec, nil
}

// RandomOpening places both players on random blank cells.
func RandomOpening(r game.Rand, width, height int) []game.Cell {
	b := game.NewBoard(width, height)
	var out []game.Cell
	for i := 0; i < 2; i++ {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[r.Intn(len(moves))]
		_ = b.Apply(m)
		out = append(out, m)
	}
	return out
}
