package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/scrabblebot/bot"
	"github.com/domino14/scrabblebot/config"
	"github.com/domino14/scrabblebot/game"
	"github.com/domino14/scrabblebot/lexicon"
	"github.com/domino14/scrabblebot/store"
)

var cfg *config.Config
var nc *nats.Conn

// LambdaEvent is one chat command. If ReplySubject is set the resulting
// messages are also published there, one per NATS message.
type LambdaEvent struct {
	bot.Command
	ReplySubject string `json:"replySubject,omitempty"`
}

type LambdaResponse struct {
	Messages []bot.Message `json:"messages"`
	Error    string        `json:"error,omitempty"`
}

func HandleRequest(ctx context.Context, evt LambdaEvent) (*LambdaResponse, error) {
	logger := log.With().Str("channel", evt.Channel).Str("user", evt.UserID).Logger()

	dict, err := lexicon.Get(cfg)
	if err != nil {
		return nil, err
	}
	st, err := store.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if closer, ok := st.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	out := &bot.Collector{}
	b := bot.NewBot(game.NewEngine(st, dict, out), out)
	resp := &LambdaResponse{}
	if err := b.Dispatch(ctx, evt.Command); err != nil {
		logger.Info().Err(err).Msg("command-refused")
		resp.Error = err.Error()
		if game.KindOf(err) == game.StoreFailure {
			return nil, err
		}
	}
	resp.Messages = out.Take()

	if evt.ReplySubject != "" && nc != nil {
		for _, m := range resp.Messages {
			data, err := json.Marshal(m)
			if err != nil {
				return nil, err
			}
			err = retry.Do(
				func() error {
					_, err := nc.Request(evt.ReplySubject, data, 3*time.Second)
					return err
				},
				retry.Context(ctx),
				retry.Attempts(3),
				retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
					logger.Err(err).Uint("n", n).Msg("did-not-receive-ack-try-again")
					return retry.BackOffDelay(n, err, config)
				}),
			)
			if err != nil {
				logger.Err(err).Msg("message-send-failed")
			}
		}
	}
	logger.Info().Int("messages", len(resp.Messages)).Msg("exiting-fn")
	return resp, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	cfg.AdjustRelativePaths(exPath)
	zerolog.SetGlobalLevel(cfg.LogLevel())
	log.Info().Interface("config", cfg.SanitizedSettings()).Msg("loaded config")

	if url := cfg.GetString(config.ConfigNatsURL); url != "" {
		nc, err = nats.Connect(url)
		if err != nil {
			log.Warn().AnErr("natsConnectErr", err).Msg("replies will only be returned")
			nc = nil
		}
	}

	lambda.Start(HandleRequest)
}
