package main

import (
	"flag"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"isolation_go/internal/config"
	"isolation_go/internal/game"
	"isolation_go/internal/match"
	"isolation_go/internal/ui"
)

func main() {
	// ───── 参数 ─────
	cfgPath := flag.String("config", "", "JSON 配置文件")
	width := flag.Int("w", 7, "棋盘宽")
	height := flag.Int("h", 7, "棋盘高")
	timeMs := flag.Int("time", 1000, "AI 每步思考时间 (ms)")
	heuristic := flag.String("heuristic", "custom_score", "AI 评估函数")
	human := flag.Int("human", 1, "人类执 1 或 2")
	aiSpec := flag.String("ai", "", "AI 玩家 kind[:heuristic]，默认取配置里对应座位")
	replay := flag.String("replay", "", "回放对局 JSON (可用通配符)")
	delay := flag.Duration("delay", 400*time.Millisecond, "回放每步间隔")
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
		case "w":
			cfg.Width = *width
		case "h":
			cfg.Height = *height
		case "time":
			cfg.TimeLimitMs = *timeMs
		case "heuristic":
			cfg.Heuristic = *heuristic
		case "ai":
			cfg.Player1, cfg.Player2 = *aiSpec, *aiSpec
		}
	})
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("logging")
	}

	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)

	if *replay != "" {
		paths, err := filepath.Glob(*replay)
		if err != nil || len(paths) == 0 {
			log.Fatal().Str("pattern", *replay).Msg("no game records found")
		}
		var records []*match.Record
		for _, p := range paths {
			r, err := match.LoadRecord(p)
			if err != nil {
				log.Fatal().Err(err).Msg("load record")
			}
			records = append(records, r)
		}
		screen, err := ui.NewReplayScreen(records, *delay)
		if err != nil {
			log.Fatal().Err(err).Msg("replay")
		}
		ebiten.SetWindowTitle("Isolation 回放")
		if err := ebiten.RunGame(screen); err != nil {
			log.Fatal().Err(err).Msg("run")
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	side, aiSide := game.Player1, game.Player2
	if *human == 2 {
		side, aiSide = game.Player2, game.Player1
	}
	agent, err := cfg.Agent(aiSide)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	ai, err := agent.New()
	if err != nil {
		log.Fatal().Err(err).Msg("ai")
	}
	log.Info().Str("ai", agent.Name).Stringer("seat", aiSide).Msg("starting game")
	screen := ui.NewGameScreen(cfg.Width, cfg.Height, side, ai, cfg.TimeLimit())

	ebiten.SetTPS(30)
	ebiten.SetWindowTitle("Isolation")
	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
