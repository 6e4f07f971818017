package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/lexicon"
	"github.com/domino14/scrabblebot/randutil"
)

// memStore round-trips every game through JSON so that tests exercise the
// persisted form.
type memStore struct {
	games    map[string][]byte
	archived []string
	failSave error
}

func newMemStore() *memStore {
	return &memStore{games: map[string][]byte{}}
}

func (m *memStore) Load(ctx context.Context, channel string) (*State, error) {
	data, ok := m.games[channel]
	if !ok {
		return nil, ErrStateNotFound
	}
	s := &State{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *memStore) Save(ctx context.Context, s *State) error {
	if m.failSave != nil {
		return m.failSave
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.games[s.Channel] = data
	return nil
}

func (m *memStore) Archive(ctx context.Context, channel string) error {
	if _, ok := m.games[channel]; !ok {
		return ErrStateNotFound
	}
	delete(m.games, channel)
	m.archived = append(m.archived, channel)
	return nil
}

type recordingOut struct {
	statuses []string
	replaced []string
	private  map[string][]string
	failPost bool
}

func newRecordingOut() *recordingOut {
	return &recordingOut{private: map[string][]string{}}
}

func (r *recordingOut) PostStatus(ctx context.Context, channel, text, replaces string) (string, error) {
	if r.failPost {
		return "", errors.New("chat is down")
	}
	r.statuses = append(r.statuses, text)
	r.replaced = append(r.replaced, replaces)
	return fmt.Sprintf("status-%d", len(r.statuses)), nil
}

func (r *recordingOut) PostPrivate(ctx context.Context, channel, userID, text string) error {
	r.private[userID] = append(r.private[userID], text)
	return nil
}

func (r *recordingOut) lastPrivate(userID string) string {
	msgs := r.private[userID]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

const testChannel = "C0123"

type fixture struct {
	store  *memStore
	out    *recordingOut
	engine *Engine
}

func newFixture(dict lexicon.Dictionary) *fixture {
	f := &fixture{store: newMemStore(), out: newRecordingOut()}
	f.engine = NewEngine(f.store, dict, f.out,
		WithRand(randutil.New(42)), WithDisplay(PlainDisplay{}))
	return f
}

// start deals a game and returns the user ids in seating order.
func (f *fixture) start(t *testing.T, users ...string) []string {
	t.Helper()
	is := is.New(t)
	_, err := f.engine.NewGame(context.Background(), testChannel, users[0], users)
	is.NoErr(err)
	ids := seatedIDs(f.state(t))
	is.Equal(len(ids), len(users))
	return ids
}

func seatedIDs(s *State) []string {
	ids := make([]string, 0, len(s.Seated()))
	for _, p := range s.Seated() {
		ids = append(ids, p.UserID)
	}
	return ids
}

func (f *fixture) state(t *testing.T) *State {
	t.Helper()
	s, err := f.store.Load(context.Background(), testChannel)
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	return s
}

func (f *fixture) update(t *testing.T, fn func(s *State)) {
	t.Helper()
	s := f.state(t)
	fn(s)
	if err := f.store.Save(context.Background(), s); err != nil {
		t.Fatalf("saving state: %v", err)
	}
}

// rig swaps a player's rack for the given tiles, trading with the pouch so
// that the tile count is unchanged.
func (f *fixture) rig(t *testing.T, slot int, tiles string) {
	t.Helper()
	want, err := alphabet.ToTiles(tiles)
	if err != nil {
		t.Fatal(err)
	}
	f.update(t, func(s *State) {
		p := s.Player(slot)
		s.TilePouch.PutBack(p.Rack)
		if err := s.TilePouch.Remove(want); err != nil {
			t.Fatalf("rigging rack: %v", err)
		}
		p.Rack = alphabet.Rack(want)
	})
}

func sortedTiles(tiles []alphabet.Tile) []alphabet.Tile {
	out := slices.Clone(tiles)
	slices.Sort(out)
	return out
}
