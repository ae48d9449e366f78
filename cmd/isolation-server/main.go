package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"isolation_go/internal/config"
	"isolation_go/internal/server"
)

func main() {
	cfgPath := flag.String("config", "", "JSON config file")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "addr" {
			cfg.Server.Addr = *addr
		}
	})
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("logging")
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
