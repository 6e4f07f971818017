package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/scrabblebot/game"
)

// FileStore keeps each channel's live game in scrabble-<channel>.json under
// a directory. Archiving renames the file with a millisecond timestamp, so
// that finished games are kept but never loaded again.
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (f *FileStore) path(channel string) string {
	return filepath.Join(f.dir, "scrabble-"+channel+".json")
}

func (f *FileStore) archivePath(channel string, at time.Time) string {
	return filepath.Join(f.dir, fmt.Sprintf("scrabble-%s-%d.json", channel, at.UnixMilli()))
}

func (f *FileStore) Load(ctx context.Context, channel string) (*game.State, error) {
	if err := checkChannel(channel); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(channel))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, game.ErrStateNotFound
	} else if err != nil {
		return nil, fmt.Errorf("reading game: %w", err)
	}
	s := &game.State{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decoding %v: %w", f.path(channel), err)
	}
	return s, nil
}

func (f *FileStore) Save(ctx context.Context, s *game.State) error {
	if err := checkChannel(s.Channel); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding game: %w", err)
	}
	return writeFileAtomic(f.path(s.Channel), data, 0o644)
}

func (f *FileStore) Archive(ctx context.Context, channel string) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	to := f.archivePath(channel, f.now())
	err := os.Rename(f.path(channel), to)
	if errors.Is(err, fs.ErrNotExist) {
		return game.ErrStateNotFound
	} else if err != nil {
		return fmt.Errorf("archiving game: %w", err)
	}
	log.Debug().Str("channel", channel).Str("path", to).Msg("archived game file")
	return nil
}
