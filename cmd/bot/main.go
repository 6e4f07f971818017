package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/scrabblebot/bot"
	"github.com/domino14/scrabblebot/config"
	"github.com/domino14/scrabblebot/game"
	"github.com/domino14/scrabblebot/lexicon"
	"github.com/domino14/scrabblebot/store"
)

const (
	GracefulShutdownTimeout = 20 * time.Second
)

func main() {
	// Determine the directory of the executable. Relative data paths are
	// resolved against it.
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.AdjustRelativePaths(exPath)
	zerolog.SetGlobalLevel(cfg.LogLevel())
	log.Info().Interface("config", cfg.SanitizedSettings()).Str("exPath", exPath).Msg("loaded config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dict, err := lexicon.Get(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading dictionary")
	}
	st, err := store.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}

	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL),
		nats.Name("scrabblebot"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}

	out := bot.NewNatsBroadcaster(nc, cfg.GetString(config.ConfigNatsOutboundSubject))
	engine := game.NewEngine(st, dict, out)
	b := bot.NewBot(engine, out)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Serve(gctx, nc, cfg.GetString(config.ConfigNatsSubject), b)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("got quit signal...")
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Err(err).Msg("bot stopped")
	}

	done := make(chan struct{})
	go func() {
		if err := nc.Drain(); err != nil {
			log.Err(err).Msg("draining nats connection")
		}
		if closer, ok := st.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Err(err).Msg("closing store")
			}
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(GracefulShutdownTimeout):
		log.Warn().Msg("timed out shutting down")
	}
	log.Info().Msg("server gracefully shutting down")
}
