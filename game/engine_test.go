package game

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/lexicon"
)

func TestNewGame(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	users := []string{"U1", "U2", "U3"}
	res, err := f.engine.NewGame(context.Background(), testChannel, "U1", users)
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status, "A new scrabble game has been started!"))

	s := f.state(t)
	is.Equal(s.TileCount(), alphabet.TotalTiles)
	is.Equal(len(s.TilePouch), alphabet.TotalTiles-3*alphabet.RackSize)
	is.Equal(s.CurrentPlayer, 1)
	is.Equal(len(s.Turns), 0)
	is.Equal(s.StatusMessageID, "status-1")

	ids := seatedIDs(s)
	slices.Sort(ids)
	is.Equal(ids, users) // seating is a permutation of the players
	for idx, p := range s.Seated() {
		is.Equal(p.Slot, idx+1)
		is.Equal(len(p.Rack), alphabet.RackSize)
		is.Equal(f.out.lastPrivate(p.UserID), strings.ToUpper(p.Rack.String()))
	}
	is.True(strings.Contains(res.Status, "@"+s.Player(1).UserID+" is up!"))
	is.True(strings.Contains(res.Status, "Remaining Tiles: 79"))
}

func TestNewGameRejections(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()

	_, err := f.engine.NewGame(ctx, testChannel, "U1", []string{"U1"})
	is.Equal(err, ErrPlayerCount)
	_, err = f.engine.NewGame(ctx, testChannel, "U1", []string{"U1", "U2", "U3", "U4", "U5"})
	is.Equal(err, ErrPlayerCount)
	_, err = f.engine.NewGame(ctx, testChannel, "U1", []string{"U1", "U1"})
	is.Equal(KindOf(err), UserInput)
	is.Equal(len(f.store.games), 0) // nothing was saved

	f.start(t, "U1", "U2")
	_, err = f.engine.NewGame(ctx, testChannel, "U3", []string{"U3", "U4"})
	is.Equal(err, ErrGameInProgress)
}

func TestNewGameSeatingIsReproducible(t *testing.T) {
	is := is.New(t)
	a := newFixture(lexicon.AcceptAll{})
	b := newFixture(lexicon.AcceptAll{})
	users := []string{"U1", "U2", "U3", "U4"}
	is.Equal(a.start(t, users...), b.start(t, users...))
	is.Equal(a.state(t).Player(1).Rack, b.state(t).Player(1).Rack)
}

func TestRackRequiresSeat(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()

	_, err := f.engine.Rack(ctx, testChannel, "U1")
	is.Equal(err, ErrNoActiveGame)
	is.Equal(KindOf(err), NotFound)

	ids := f.start(t, "U1", "U2")
	_, err = f.engine.Rack(ctx, testChannel, "U9")
	is.Equal(err, ErrNotInGame)

	res, err := f.engine.Rack(ctx, testChannel, ids[1])
	is.NoErr(err)
	is.Equal(res.Status, "")
	is.Equal(res.Private, strings.ToUpper(f.state(t).Player(2).Rack.String()))
}

func TestReorder(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 2, "catdogs")

	res, err := f.engine.Reorder(ctx, testChannel, ids[1], "d o g")
	is.NoErr(err)
	is.Equal(res.Private, "DOGCATS")
	is.Equal(f.state(t).Player(2).Rack.String(), "dogcats")

	_, err = f.engine.Reorder(ctx, testChannel, ids[1], "zz")
	is.Equal(KindOf(err), RuleViolation)
	_, err = f.engine.Reorder(ctx, testChannel, ids[1], "catdogsc")
	is.Equal(KindOf(err), UserInput)
	_, err = f.engine.Reorder(ctx, testChannel, ids[1], "cc")
	is.Equal(KindOf(err), RuleViolation) // only one c on the rack
	is.Equal(f.state(t).Player(2).Rack.String(), "dogcats")
}

func TestPlayFirstWord(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")

	res, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status, "@"+ids[0]+" played CAT for 10 points"))
	is.True(strings.Contains(res.Status, "@"+ids[1]+" is up!"))

	s := f.state(t)
	p := s.Player(1)
	is.Equal(p.Points, 10)
	is.Equal(len(p.Rack), alphabet.RackSize)
	is.Equal(s.CurrentPlayer, 2)
	is.Equal(s.TileCount(), alphabet.TotalTiles)
	is.Equal(s.Board.At(7, 7).Letter, alphabet.Tile('c'))
	is.Equal(s.Board.At(9, 7).Letter, alphabet.Tile('t'))

	wt, ok := s.Turns.Last().(*WordTurn)
	is.True(ok)
	is.Equal(wt.Words, []string{"cat"})
	is.Equal(wt.Points, 10)
	is.Equal(len(wt.DrawnTiles), 3)
	is.Equal(len(wt.PlayedTiles), 3)

	// the next player is privately shown their rack
	is.Equal(f.out.lastPrivate(ids[1]), strings.ToUpper(s.Player(2).Rack.String()))
	// and the status replaces the previous one
	is.Equal(f.out.replaced[len(f.out.replaced)-1], "status-1")
}

func TestPlayWithBlank(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "c_tdogs")

	res, err := f.engine.PlayWord(context.Background(), testChannel, ids[0], "(7,7) (9,7) c_t a")
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status, "@"+ids[0]+" played C_T (CAT) for 8 points"))

	s := f.state(t)
	sq := s.Board.At(8, 7)
	is.Equal(sq.Letter, alphabet.BlankTile)
	is.Equal(sq.Replacement, alphabet.Tile('a'))
	is.Equal(s.Turns.Last().(*WordTurn).Words, []string{"cat"})
}

func TestPlaySecondaryWords(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)

	f.rig(t, 2, "asnoter")
	res, err := f.engine.PlayWord(ctx, testChannel, ids[1], "(8,8) (9,8) as")
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status, "@"+ids[1]+" played AS for 8 points"))

	s := f.state(t)
	wt := s.Turns.Last().(*WordTurn)
	is.Equal(wt.Words, []string{"as", "aa", "ts"})
	is.Equal(s.Player(2).Points, 8)
	is.Equal(s.CurrentPlayer, 1)
}

func TestPlayThroughExistingTile(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)

	f.rig(t, 2, "rtsnoei")
	// reuses the A at (8,7)
	_, err = f.engine.PlayWord(ctx, testChannel, ids[1], "(8,6) (8,8) rat")
	is.NoErr(err)

	s := f.state(t)
	wt := s.Turns.Last().(*WordTurn)
	is.Equal(len(wt.PlayedTiles), 2)
	is.Equal(wt.Words, []string{"rat"})
	// R on a double letter at (8,6), T on a double letter at (8,8)
	is.Equal(wt.Points, 2+1+2)
}

func TestPlayRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(lexicon.AcceptAll{})
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")
	f.rig(t, 2, "asnoter")

	firstMove := []struct {
		name string
		user string
		text string
		kind ErrorKind
		msg  string
	}{
		{"out of turn", ids[1], "(7,7) (8,7) as", UserInput, "Wait for your turn"},
		{"bad format", ids[0], "cat", UserInput, "Invalid command format"},
		{"bad letters", ids[0], "(7,7) (9,7) c4t", UserInput, "Invalid command format"},
		{"backwards", ids[0], "(9,7) (7,7) cat", UserInput, "left-to-right or top-to-bottom"},
		{"off the board", ids[0], "(15,7) (17,7) cat", UserInput, "startx must be a number between 0 and 14"},
		{"wrong end", ids[0], "(7,7) (10,7) cat", UserInput, "calculated end position does not match expected"},
		{"missing replacement", ids[0], "(7,7) (9,7) c_t", UserInput, "number of replacements"},
		{"not on the rack", ids[0], "(7,7) (9,7) zap", RuleViolation, "you do not have Z in your tile rack for (7,7)"},
		{"not through the center", ids[0], "(0,0) (2,0) cat", RuleViolation, "center of the board"},
	}
	for _, tc := range firstMove {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := f.engine.PlayWord(ctx, testChannel, tc.user, tc.text)
			is.True(err != nil)
			is.Equal(KindOf(err), tc.kind)
			is.True(strings.Contains(err.Error(), tc.msg))
		})
	}
	is := is.New(t)
	s := f.state(t)
	is.True(s.Board.IsEmpty()) // refused plays leave no trace
	is.Equal(len(s.Turns), 0)
	is.Equal(s.CurrentPlayer, 1)

	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)

	laterMove := []struct {
		name string
		text string
		msg  string
	}{
		{"disconnected", "(0,0) (1,0) as", "must intersect with an existing word"},
		{"letter mismatch", "(7,7) (8,7) as", "expected (7,7) to contain A but the board space already has C"},
		{"blank over a tile", "(7,7) (8,7) _s a", "expected (7,7) to contain a blank"},
		{"truncated word", "(10,7) (11,7) as", "the word continues past"},
		{"nothing placed", "(7,7) (8,7) ca", "you must place at least one tile"},
	}
	for _, tc := range laterMove {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := f.engine.PlayWord(ctx, testChannel, ids[1], tc.text)
			is.Equal(KindOf(err), RuleViolation)
			is.True(strings.Contains(err.Error(), tc.msg))
		})
	}
}

func TestPlayAndUndoRestoresState(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")
	before := f.state(t)

	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)
	// either player may undo
	res, err := f.engine.Undo(ctx, testChannel, ids[1])
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status, "The last move was reverted"))

	after := f.state(t)
	is.Equal(after.Board, before.Board)
	is.Equal(sortedTiles(after.TilePouch), sortedTiles(before.TilePouch))
	is.Equal(sortedTiles(after.Player(1).Rack), sortedTiles(before.Player(1).Rack))
	is.Equal(after.Player(2).Rack, before.Player(2).Rack)
	is.Equal(after.Player(1).Points, 0)
	is.Equal(after.CurrentPlayer, 1)
	is.Equal(len(after.Turns), 0)
	is.Equal(after.TileCount(), alphabet.TotalTiles)

	_, err = f.engine.Undo(ctx, testChannel, ids[0])
	is.Equal(err, ErrNothingToUndo)
	_, err = f.engine.Undo(ctx, testChannel, "U9")
	is.Equal(err, ErrNotInGame)
}

func TestUndoRepostsPreviousStatus(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)
	f.rig(t, 2, "asnoter")
	_, err = f.engine.PlayWord(ctx, testChannel, ids[1], "(8,8) (9,8) as")
	is.NoErr(err)

	res, err := f.engine.Undo(ctx, testChannel, ids[0])
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status,
		"The last move was reverted\n\n@"+ids[0]+" played CAT for 10 points"))
	s := f.state(t)
	is.Equal(s.CurrentPlayer, 2)
	is.Equal(s.Player(2).Points, 0)
	is.Equal(s.Board.TileCount(), 3)
	is.Equal(s.TileCount(), alphabet.TotalTiles)
}

func TestExchange(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "aaeeiou")
	pouchSize := len(f.state(t).TilePouch)

	res, err := f.engine.Exchange(ctx, testChannel, ids[0], "a a e")
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status, "@"+ids[0]+" exchanged 3 tiles"))

	s := f.state(t)
	is.Equal(len(s.Player(1).Rack), alphabet.RackSize)
	is.Equal(len(s.TilePouch), pouchSize)
	is.Equal(s.TileCount(), alphabet.TotalTiles)
	is.Equal(s.CurrentPlayer, 2)
	is.Equal(res.Private, strings.ToUpper(s.Player(1).Rack.String()))

	et, ok := s.Turns.Last().(*ExchangeTurn)
	is.True(ok)
	is.Equal(et.ExchangedTiles, []alphabet.Tile{'a', 'a', 'e'})
	is.Equal(len(et.DrawnTiles), 3)
	is.True(!et.Passed)

	// undo gives back exactly the exchanged tiles
	_, err = f.engine.Undo(ctx, testChannel, ids[0])
	is.NoErr(err)
	s = f.state(t)
	is.Equal(sortedTiles(s.Player(1).Rack), sortedTiles([]alphabet.Tile("aaeeiou")))
	is.Equal(s.CurrentPlayer, 1)
	is.Equal(s.TileCount(), alphabet.TotalTiles)
}

func TestExchangeRejections(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "aaeeiou")

	_, err := f.engine.Exchange(ctx, testChannel, ids[1], "a")
	is.Equal(err, ErrNotYourTurn)

	_, err = f.engine.Exchange(ctx, testChannel, ids[0], "aaeeioua")
	is.Equal(KindOf(err), UserInput)
	is.Equal(err.Error(), "Unable to exchange tiles, invalid number of tiles provided")

	_, err = f.engine.Exchange(ctx, testChannel, ids[0], "az")
	is.Equal(KindOf(err), RuleViolation)
	is.Equal(err.Error(), "Unable to exchange tiles, Z is not in your tile rack")

	_, err = f.engine.Exchange(ctx, testChannel, ids[0], "9")
	is.Equal(KindOf(err), UserInput)

	f.update(t, func(s *State) { s.TilePouch = s.TilePouch[:2] })
	_, err = f.engine.Exchange(ctx, testChannel, ids[0], "aae")
	is.Equal(KindOf(err), RuleViolation)
	is.Equal(err.Error(),
		"Unable to exchange tiles, cannot exchange 3 tiles when there are only 2 in the tile pouch")
	is.Equal(f.state(t).Player(1).Rack.String(), "aaeeiou")
}

func TestPassWithTilesLeftDoesNotCount(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")

	res, err := f.engine.Exchange(ctx, testChannel, ids[0], "")
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status, "@"+ids[0]+" passed"))
	_, err = f.engine.Exchange(ctx, testChannel, ids[1], "")
	is.NoErr(err)

	s := f.state(t)
	is.Equal(len(s.Turns), 2)
	is.True(!s.Player(1).PassedLastTurn)
	is.Equal(s.CurrentPlayer, 1)
}

func TestAllPassedEndsGame(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.update(t, func(s *State) { s.TilePouch = nil })

	res, err := f.engine.Exchange(ctx, testChannel, ids[0], "")
	is.NoErr(err)
	is.True(!res.GameOver)
	s := f.state(t)
	is.True(s.Player(1).PassedLastTurn)
	is.True(s.Turns.Last().(*ExchangeTurn).Passed)

	res, err = f.engine.Exchange(ctx, testChannel, ids[1], "")
	is.NoErr(err)
	is.True(res.GameOver)
	is.True(strings.HasPrefix(res.Status,
		"@"+ids[1]+" passed\n\n\nAll players have passed, there are no moves left!\n"))
	is.True(strings.Contains(res.Status, "tie with 0 points!"))
	is.True(!strings.Contains(res.Status, "is up!"))

	is.Equal(f.store.archived, []string{testChannel})
	_, err = f.engine.Rack(ctx, testChannel, ids[0])
	is.Equal(err, ErrNoActiveGame)
	// a new game can start once the old one is archived
	f.start(t, "U1", "U2")
}

func TestGoingOutEndsGame(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.update(t, func(s *State) {
		s.TilePouch = nil
		s.Player(1).Rack = alphabet.Rack("at")
	})

	res, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (8,7) at")
	is.NoErr(err)
	is.True(res.GameOver)
	is.True(strings.Contains(res.Status, "\n\n\nGAME OVER\n@"+ids[0]+" wins with 4 points!"))
	is.Equal(f.store.archived, []string{testChannel})
}

func TestChallengeSuccess(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.NewWordList("test", []string{"cat"}))
	ctx := context.Background()
	ids := f.start(t, "U1", "U2", "U3")
	f.rig(t, 1, "catdogs")
	before := f.state(t)

	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) tac")
	is.NoErr(err)
	res, err := f.engine.Challenge(ctx, testChannel, ids[2])
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status,
		"@"+ids[2]+" successfully challenged @"+ids[0]+"'s move. TAC is not in the scrabble dictionary."))

	s := f.state(t)
	is.True(s.Board.IsEmpty())
	is.Equal(s.Player(1).Points, 0)
	is.Equal(sortedTiles(s.Player(1).Rack), sortedTiles(before.Player(1).Rack))
	is.Equal(s.TileCount(), alphabet.TotalTiles)
	is.Equal(s.CurrentPlayer, 2) // one after the author
	is.Equal(len(s.Turns), 1)
	ct := s.Turns.Last().(*ChallengeTurn)
	is.True(ct.Successful)
	is.Equal(ct.Player, 3)
	is.Equal(ct.ChallengedTurn.Words, []string{"tac"})

	// undoing the challenge puts the play back
	_, err = f.engine.Undo(ctx, testChannel, ids[0])
	is.NoErr(err)
	s = f.state(t)
	is.Equal(len(s.Turns), 1)
	is.Equal(s.Turns.Last().Type(), TurnWord)
	is.Equal(s.Player(1).Points, 10)
	is.Equal(s.Board.TileCount(), 3)
	is.Equal(s.TileCount(), alphabet.TotalTiles)
	is.Equal(s.CurrentPlayer, 3)

	// and the play itself can still be undone
	_, err = f.engine.Undo(ctx, testChannel, ids[0])
	is.NoErr(err)
	s = f.state(t)
	is.True(s.Board.IsEmpty())
	is.Equal(s.CurrentPlayer, 1)
}

func TestChallengeChecksSecondaryWords(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.NewWordList("test", []string{"cat", "as", "aa"}))
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)
	f.rig(t, 2, "asnoter")
	_, err = f.engine.PlayWord(ctx, testChannel, ids[1], "(8,8) (9,8) as")
	is.NoErr(err)

	res, err := f.engine.Challenge(ctx, testChannel, ids[0])
	is.NoErr(err)
	is.True(strings.Contains(res.Status, "TS is not in the scrabble dictionary"))
	is.Equal(f.state(t).CurrentPlayer, 1)
}

func TestFailedChallengeSkipsOnce(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.NewWordList("test", []string{"cat"}))
	ctx := context.Background()
	ids := f.start(t, "U1", "U2", "U3")
	f.rig(t, 1, "catdogs")
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)

	res, err := f.engine.Challenge(ctx, testChannel, ids[2])
	is.NoErr(err)
	is.True(strings.HasPrefix(res.Status,
		"@"+ids[2]+" failed to challenge @"+ids[0]+"'s move. All word(s) are in the scrabble dictionary."))
	s := f.state(t)
	is.True(s.Player(3).LosesNextTurn)
	is.Equal(s.CurrentPlayer, 2)
	is.Equal(s.Player(1).Points, 10)

	_, err = f.engine.Exchange(ctx, testChannel, ids[1], "")
	is.NoErr(err)
	s = f.state(t)
	is.Equal(s.CurrentPlayer, 1) // slot 3 was skipped
	is.True(!s.Player(3).LosesNextTurn)

	_, err = f.engine.Exchange(ctx, testChannel, ids[0], "")
	is.NoErr(err)
	is.Equal(f.state(t).CurrentPlayer, 2)
	_, err = f.engine.Exchange(ctx, testChannel, ids[1], "")
	is.NoErr(err)
	is.Equal(f.state(t).CurrentPlayer, 3) // and only once
}

func TestFailedChallengeByCurrentPlayer(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2", "U3")
	f.rig(t, 1, "catdogs")
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)

	_, err = f.engine.Challenge(ctx, testChannel, ids[1])
	is.NoErr(err)
	s := f.state(t)
	is.Equal(s.CurrentPlayer, 3)
	is.True(!s.Player(2).LosesNextTurn)

	// undoing the failed challenge hands the turn back to the challenger
	_, err = f.engine.Undo(ctx, testChannel, ids[1])
	is.NoErr(err)
	s = f.state(t)
	is.Equal(s.CurrentPlayer, 2)
	is.Equal(s.Turns.Last().Type(), TurnWord)
}

func TestUndoFailedChallengeLiftsPenalty(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2", "U3")
	f.rig(t, 1, "catdogs")
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)
	_, err = f.engine.Challenge(ctx, testChannel, ids[2])
	is.NoErr(err)

	_, err = f.engine.Undo(ctx, testChannel, ids[0])
	is.NoErr(err)
	s := f.state(t)
	is.True(!s.Player(3).LosesNextTurn)
	is.Equal(s.CurrentPlayer, 3)
	is.Equal(len(s.Turns), 1)
}

func TestChallengeRejections(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")

	_, err := f.engine.Challenge(ctx, testChannel, ids[1])
	is.Equal(err, ErrNothingToChallenge)
	_, err = f.engine.Challenge(ctx, testChannel, "U9")
	is.Equal(err, ErrNotInGame)

	_, err = f.engine.Exchange(ctx, testChannel, ids[0], "")
	is.NoErr(err)
	_, err = f.engine.Challenge(ctx, testChannel, ids[1])
	is.Equal(err, ErrNotAWordTurn)

	f.rig(t, 2, "catdogs")
	_, err = f.engine.PlayWord(ctx, testChannel, ids[1], "(7,7) (9,7) cat")
	is.NoErr(err)
	_, err = f.engine.Challenge(ctx, testChannel, ids[1])
	is.Equal(err, ErrOwnMove)

	_, err = f.engine.Challenge(ctx, testChannel, ids[0])
	is.NoErr(err) // fails, everything is a word
	_, err = f.engine.Challenge(ctx, testChannel, ids[1])
	is.Equal(err, ErrAlreadyChallenged)
}

func TestStoreFailure(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")

	diskFull := errors.New("disk full")
	f.store.failSave = diskFull
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.Equal(KindOf(err), StoreFailure)
	is.True(errors.Is(err, diskFull))

	f.store.failSave = nil
	is.True(f.state(t).Board.IsEmpty())
}

func TestBroadcastFailureKeepsTurn(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.AcceptAll{})
	ctx := context.Background()
	ids := f.start(t, "U1", "U2")
	f.rig(t, 1, "catdogs")

	f.out.failPost = true
	_, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat")
	is.NoErr(err)
	s := f.state(t)
	is.Equal(s.Player(1).Points, 10)
	is.Equal(s.StatusMessageID, "status-1")
}

func TestTilesAreConserved(t *testing.T) {
	is := is.New(t)
	f := newFixture(lexicon.NewWordList("test", []string{"cat"}))
	ctx := context.Background()
	ids := f.start(t, "U1", "U2", "U3", "U4")
	f.rig(t, 1, "catdogs")
	f.rig(t, 2, "asnoter")
	f.rig(t, 3, "aaeeiou")

	steps := []func() error{
		func() error { _, err := f.engine.PlayWord(ctx, testChannel, ids[0], "(7,7) (9,7) cat"); return err },
		func() error { _, err := f.engine.PlayWord(ctx, testChannel, ids[1], "(8,8) (9,8) as"); return err },
		func() error { _, err := f.engine.Challenge(ctx, testChannel, ids[3]); return err },
		func() error { _, err := f.engine.Exchange(ctx, testChannel, ids[2], "aei"); return err },
		func() error { _, err := f.engine.Undo(ctx, testChannel, ids[0]); return err },
		func() error { _, err := f.engine.Undo(ctx, testChannel, ids[0]); return err },
		func() error { _, err := f.engine.Undo(ctx, testChannel, ids[0]); return err },
	}
	for _, step := range steps {
		is.NoErr(step())
		is.Equal(f.state(t).TileCount(), alphabet.TotalTiles)
	}
}
