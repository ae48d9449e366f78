package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"

	"isolation_go/internal/config"
	"isolation_go/internal/match"
)

func main() {
	// ───── 参数 ─────
	cfgPath := flag.String("config", "", "JSON 配置文件")
	rounds := flag.Int("n", 5, "每组对手、每个座位的局数")
	workers := flag.Int("workers", 0, "并发对局数 (0 = CPU 数)")
	timeMs := flag.Int("time", 150, "每步时间 (ms)")
	seed := flag.Uint64("seed", 1, "开局随机种子")
	outFile := flag.String("out", "results.csv", "CSV 文件")
	recordDir := flag.String("records", "", "保存每局 JSON 的目录")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Tournament.Rounds = *rounds
		case "workers":
			cfg.Tournament.Workers = *workers
		case "time":
			cfg.TimeLimitMs = *timeMs
		case "seed":
			cfg.Tournament.Seed = *seed
		case "out":
			cfg.Tournament.Output = *outFile
		case "records":
			cfg.Tournament.RecordDir = *recordDir
		}
	})
	// 剩余参数即参赛者，如 alphabeta:custom_score random
	if flag.NArg() > 0 {
		cfg.Tournament.Agents = flag.Args()
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("logging")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	sc, err := cfg.Search()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	var agents []match.Agent
	for _, spec := range cfg.Tournament.Agents {
		a, err := match.ParseAgent(spec, sc)
		if err != nil {
			log.Fatal().Err(err).Str("agent", spec).Msg("bad agent")
		}
		agents = append(agents, a)
	}
	if cfg.Tournament.RecordDir != "" {
		if err := os.MkdirAll(cfg.Tournament.RecordDir, 0755); err != nil {
			log.Fatal().Err(err).Msg("record dir")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	standings, _, err := match.Tournament(ctx, agents, match.TournamentConfig{
		Rounds:    cfg.Tournament.Rounds,
		Workers:   cfg.Tournament.Workers,
		Seed:      cfg.Tournament.Seed,
		RecordDir: cfg.Tournament.RecordDir,
		Options: match.Options{
			Width:     cfg.Width,
			Height:    cfg.Height,
			TimeLimit: cfg.TimeLimit(),
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("tournament")
	}

	for _, s := range standings {
		log.Info().
			Str("agent", s.Name).
			Int("wins", s.Wins).
			Int("games", s.Games).
			Int("forfeits", s.Forfeits).
			Str("win_rate", percent(s.WinRate())).
			Msg("standing")
	}

	f, err := os.Create(cfg.Tournament.Output)
	if err != nil {
		log.Fatal().Err(err).Msg("open csv")
	}
	defer f.Close()
	if err := match.WriteCSV(f, standings); err != nil {
		log.Fatal().Err(err).Msg("write csv")
	}
	log.Info().Str("out", cfg.Tournament.Output).Dur("took", time.Since(start)).Msg("tournament done")
}

func percent(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}
