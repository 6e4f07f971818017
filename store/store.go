// Package store holds the game.Store backends: JSON files in a directory,
// a sqlite database, and an in-memory map for tests and the shell.
package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/domino14/scrabblebot/config"
	"github.com/domino14/scrabblebot/game"
)

var validChannel = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func checkChannel(channel string) error {
	if !validChannel.MatchString(channel) || channel == "." || channel == ".." {
		return fmt.Errorf("invalid channel name %q", channel)
	}
	return nil
}

// New opens the backend selected by the store setting.
func New(ctx context.Context, cfg *config.Config) (game.Store, error) {
	switch kind := cfg.GetString(config.ConfigStore); kind {
	case config.StoreFile:
		return NewFileStore(cfg.GetString(config.ConfigDataPath))
	case config.StoreSqlite:
		return NewSqliteStore(ctx, cfg.GetString(config.ConfigSqlitePath))
	case config.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
