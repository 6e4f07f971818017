package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/domino14/scrabblebot/game"
)

// MemoryStore keeps games as encoded JSON, so a loaded game never shares
// memory with a saved one.
type MemoryStore struct {
	sync.Mutex
	games    map[string][]byte
	archived map[string][][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:    map[string][]byte{},
		archived: map[string][][]byte{},
	}
}

func (m *MemoryStore) Load(ctx context.Context, channel string) (*game.State, error) {
	m.Lock()
	data, ok := m.games[channel]
	m.Unlock()
	if !ok {
		return nil, game.ErrStateNotFound
	}
	s := &game.State{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *game.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	m.games[s.Channel] = data
	return nil
}

func (m *MemoryStore) Archive(ctx context.Context, channel string) error {
	m.Lock()
	defer m.Unlock()
	data, ok := m.games[channel]
	if !ok {
		return game.ErrStateNotFound
	}
	delete(m.games, channel)
	m.archived[channel] = append(m.archived[channel], data)
	return nil
}

// Archived counts the finished games kept for a channel.
func (m *MemoryStore) Archived(channel string) int {
	m.Lock()
	defer m.Unlock()
	return len(m.archived[channel])
}
