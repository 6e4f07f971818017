package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/scrabblebot/alphabet"
)

func (wt *WordTurn) playedLetters() []alphabet.Tile {
	return lo.Map(wt.PlayedTiles, func(pt PlayedTile, _ int) alphabet.Tile { return pt.Letter })
}

// unplayWord takes a word turn back off the board: the tiles it drew go
// back to the pouch, the tiles it placed go back to the rack, and its
// points are subtracted.
func (s *State) unplayWord(wt *WordTurn) error {
	p := s.Player(wt.Player)
	if p == nil {
		return fmt.Errorf("no player in slot %d", wt.Player)
	}
	if err := p.Rack.Take(wt.DrawnTiles); err != nil {
		return fmt.Errorf("drawn tiles are not on the rack: %w", err)
	}
	s.TilePouch.PutBack(wt.DrawnTiles)
	for _, pt := range wt.PlayedTiles {
		if s.Board.Clear(pt.X, pt.Y) == nil {
			return fmt.Errorf("no tile at (%d,%d)", pt.X, pt.Y)
		}
	}
	p.Rack.Add(wt.playedLetters()...)
	p.Points -= wt.Points
	return nil
}

// replayWord puts a word turn taken off by unplayWord back on the board.
func (s *State) replayWord(wt *WordTurn) error {
	p := s.Player(wt.Player)
	if p == nil {
		return fmt.Errorf("no player in slot %d", wt.Player)
	}
	if err := p.Rack.Take(wt.playedLetters()); err != nil {
		return fmt.Errorf("played tiles are not on the rack: %w", err)
	}
	for _, pt := range wt.PlayedTiles {
		if err := s.Board.Set(pt.X, pt.Y, pt.Square()); err != nil {
			return err
		}
	}
	if err := s.TilePouch.Remove(wt.DrawnTiles); err != nil {
		return err
	}
	p.Rack.Add(wt.DrawnTiles...)
	p.Points += wt.Points
	return nil
}

// unexchange returns drawn tiles to the pouch and exchanged tiles to the
// rack.
func (s *State) unexchange(et *ExchangeTurn) error {
	p := s.Player(et.Player)
	if p == nil {
		return fmt.Errorf("no player in slot %d", et.Player)
	}
	if err := p.Rack.Take(et.DrawnTiles); err != nil {
		return fmt.Errorf("drawn tiles are not on the rack: %w", err)
	}
	s.TilePouch.PutBack(et.DrawnTiles)
	if err := s.TilePouch.Remove(et.ExchangedTiles); err != nil {
		return err
	}
	p.Rack.Add(et.ExchangedTiles...)
	if et.Passed {
		p.PassedLastTurn = false
	}
	return nil
}

// unchallenge reverses a challenge. A successful one is undone by putting
// the challenged play back, history included; a failed one by lifting the
// challenger's penalty.
func (s *State) unchallenge(ct *ChallengeTurn) error {
	if !ct.Successful {
		if p := s.Player(ct.Player); p != nil {
			p.LosesNextTurn = false
		}
		return nil
	}
	wt := ct.ChallengedTurn
	if wt == nil {
		return fmt.Errorf("challenge record has no challenged turn")
	}
	if err := s.replayWord(wt); err != nil {
		return err
	}
	if author := s.Player(wt.Player); author != nil {
		author.LosesNextTurn = false
	}
	s.Turns = slices.Insert(s.Turns, len(s.Turns)-1, Turn(wt))
	return nil
}

// undoLast reverses the most recent turn, drops it from the history, and
// gives the turn back to whoever took it.
func (s *State) undoLast() error {
	last := s.Turns.Last()
	if last == nil {
		return ErrNothingToUndo
	}
	var err error
	switch t := last.(type) {
	case *WordTurn:
		err = s.unplayWord(t)
	case *ExchangeTurn:
		err = s.unexchange(t)
	case *ChallengeTurn:
		err = s.unchallenge(t)
	default:
		err = fmt.Errorf("unhandled turn type %T", last)
	}
	if err != nil {
		return err
	}
	s.Turns = s.Turns[:len(s.Turns)-1]
	s.CurrentPlayer = last.Info().Player
	return nil
}

// Undo reverses the last turn. Any seated player may undo.
func (e *Engine) Undo(ctx context.Context, channel, userID string) (*Result, error) {
	s, _, err := e.seated(ctx, channel, userID)
	if err != nil {
		return nil, err
	}
	last := s.Turns.Last()
	if last == nil {
		return nil, ErrNothingToUndo
	}
	if err := s.undoLast(); err != nil {
		log.Err(err).Str("channel", channel).Msg("undo failed")
		return nil, ruleViolation("Unable to undo the last move: %v", err)
	}
	log.Info().Str("channel", channel).Str("user", userID).
		Str("type", string(last.Type())).Msg("turn-reverted")

	message := "The last move was reverted"
	if t := s.Turns.Last(); t != nil {
		message += "\n\n" + t.Info().StatusMessage
	}
	return e.publish(ctx, s, message, true)
}
