// internal/match/tournament.go
package match

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"isolation_go/internal/game"
)

// TournamentConfig controls a round robin.
type TournamentConfig struct {
	Rounds    int    // games per pairing and seat order
	Workers   int    // concurrent games, 0 = NumCPU
	Seed      uint64 // openings are drawn from game.NewRand(Seed)
	RecordDir string // save every game as JSON when set
	Options   Options
}

// Standing is one agent's aggregated results.
type Standing struct {
	Name     string
	Games    int
	Wins     int
	Losses   int
	Forfeits int // losses on time or by illegal move
}

// WinRate is wins over games, 0 when no game was played.
func (s Standing) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

type pairing struct {
	p1, p2  int
	opening []game.Cell
}

// Tournament plays every pair of agents against each other. Each round
// draws one random opening and plays it twice with the seats swapped.
// Standings come back sorted by win rate, best first.
func Tournament(ctx context.Context, agents []Agent, cfg TournamentConfig) ([]Standing, []*Record, error) {
	if len(agents) < 2 {
		return nil, nil, fmt.Errorf("tournament needs at least 2 agents, got %d", len(agents))
	}
	rounds := cfg.Rounds
	if rounds < 1 {
		rounds = 1
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	agents = uniqueNames(agents)

	// 开局在主协程里生成，保证同一 seed 下可复现
	rng := game.NewRand(cfg.Seed)
	var games []pairing
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			for r := 0; r < rounds; r++ {
				op := RandomOpening(rng, cfg.Options.Width, cfg.Options.Height)
				games = append(games, pairing{i, j, op}, pairing{j, i, op})
			}
		}
	}
	log.Info().Int("agents", len(agents)).Int("games", len(games)).Int("workers", workers).Msg("tournament start")

	records := make([]*Record, len(games))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, pg := range games {
		g.Go(func() error {
			opts := cfg.Options
			opts.Opening = pg.opening
			opts.OnMove = nil
			rec, err := Play(gctx, agents[pg.p1], agents[pg.p2], opts)
			if err != nil {
				return err
			}
			records[idx] = rec
			if cfg.RecordDir != "" {
				path := filepath.Join(cfg.RecordDir, fmt.Sprintf("game_%04d.json", idx))
				if err := rec.Save(path); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return Standings(agents, records), records, nil
}

// uniqueNames suffixes repeated agent names ("greedy", "greedy#2") so that
// records and standings can tell self-play seats apart.
func uniqueNames(agents []Agent) []Agent {
	out := make([]Agent, len(agents))
	taken := make(map[string]bool, len(agents))
	for i, a := range agents {
		name := a.Name
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s#%d", a.Name, n)
		}
		taken[name] = true
		a.Name = name
		out[i] = a
	}
	return out
}

// Standings aggregates finished games per agent. Agent names must be
// unique; Tournament takes care of that.
func Standings(agents []Agent, records []*Record) []Standing {
	byName := make(map[string]*Standing, len(agents))
	out := make([]Standing, len(agents))
	for i, a := range agents {
		out[i].Name = a.Name
		byName[a.Name] = &out[i]
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		winner, loser := rec.Player1, rec.Player2
		if rec.Winner == int(game.Player2) {
			winner, loser = loser, winner
		}
		if s, ok := byName[winner]; ok {
			s.Games++
			s.Wins++
		}
		if s, ok := byName[loser]; ok {
			s.Games++
			s.Losses++
			if rec.Reason == ReasonTimeout || rec.Reason == ReasonIllegalMove {
				s.Forfeits++
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WinRate() > out[j].WinRate() })
	return out
}

// WriteCSV writes one row per agent with a header line.
func WriteCSV(w io.Writer, standings []Standing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"agent", "games", "wins", "losses", "forfeits", "win_rate"}); err != nil {
		return err
	}
	for _, s := range standings {
		row := []string{
			s.Name,
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.Forfeits),
			strconv.FormatFloat(s.WinRate(), 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
