package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/scrabblebot/config"
	"github.com/domino14/scrabblebot/lexicon"
	"github.com/domino14/scrabblebot/shell"
	"github.com/domino14/scrabblebot/store"
)

var (
	GitVersion string
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)
	fmt.Println("scrabblebot shell", GitVersion)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}
	level := cfg.LogLevel()
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded config")

	dict, err := lexicon.Get(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading dictionary")
	}
	st, err := store.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Debug().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	sc := shell.NewShellController(st, dict)
	go sc.Loop(sig)

	<-idleConnsClosed
	if closer, ok := st.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Err(err).Msg("closing store")
		}
	}
}
