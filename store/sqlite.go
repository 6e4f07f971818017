package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/domino14/scrabblebot/game"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS games (
		channel TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS archived_games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		channel TEXT NOT NULL,
		state TEXT NOT NULL,
		archived_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_archived_games_channel ON archived_games(channel);`,
}

// SqliteStore keeps live games in the games table and moves finished ones
// to archived_games.
type SqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSqliteStore(ctx context.Context, path string) (*SqliteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		log.Warn().Err(err).Msg("could not enable WAL mode")
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		log.Warn().Err(err).Msg("could not set busy timeout")
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &SqliteStore{db: db, now: time.Now}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// isBusy reports whether sqlite gave up waiting on another writer.
func isBusy(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}

func (s *SqliteStore) withRetry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(isBusy),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("attempt", n).Str("op", op).Msg("database-busy-retrying")
		}),
	)
}

func (s *SqliteStore) Load(ctx context.Context, channel string) (*game.State, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM games WHERE channel = ?`, channel).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrStateNotFound
	} else if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	st := &game.State{}
	if err := json.Unmarshal([]byte(data), st); err != nil {
		return nil, fmt.Errorf("decoding game for %v: %w", channel, err)
	}
	return st, nil
}

func (s *SqliteStore) Save(ctx context.Context, st *game.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding game: %w", err)
	}
	return s.withRetry(ctx, "save", func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO games (channel, state, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(channel) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
			st.Channel, string(data), s.now().UnixMilli())
		return err
	})
}

func (s *SqliteStore) Archive(ctx context.Context, channel string) error {
	return s.withRetry(ctx, "archive", func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		res, err := tx.ExecContext(ctx, `
			INSERT INTO archived_games (channel, state, archived_at)
			SELECT channel, state, ? FROM games WHERE channel = ?`,
			s.now().UnixMilli(), channel)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return game.ErrStateNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE channel = ?`, channel); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// Archived returns a channel's finished games, oldest first.
func (s *SqliteStore) Archived(ctx context.Context, channel string) ([]*game.State, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT state FROM archived_games WHERE channel = ? ORDER BY id`, channel)
	if err != nil {
		return nil, fmt.Errorf("listing archived games: %w", err)
	}
	defer rows.Close()
	var states []*game.State
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		st := &game.State{}
		if err := json.Unmarshal([]byte(data), st); err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, rows.Err()
}
