package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// firstInvalid returns the first of the words the dictionary lacks.
func (e *Engine) firstInvalid(words []string) (string, bool) {
	for _, w := range words {
		if !e.dict.Contains(w) {
			return w, true
		}
	}
	return "", false
}

// Challenge disputes the last turn, which must be someone else's word play.
// If any word it formed is missing from the dictionary the play comes off
// and the turn passes to whoever follows its author. Otherwise the
// challenger loses a turn: at once if they are up, or their next one.
func (e *Engine) Challenge(ctx context.Context, channel, userID string) (*Result, error) {
	s, challenger, err := e.seated(ctx, channel, userID)
	if err != nil {
		return nil, err
	}
	last := s.Turns.Last()
	if last == nil {
		return nil, ErrNothingToChallenge
	}
	if last.Info().Player == challenger.Slot {
		return nil, ErrOwnMove
	}
	if _, ok := last.(*ChallengeTurn); ok {
		return nil, ErrAlreadyChallenged
	}
	wt, ok := last.(*WordTurn)
	if !ok {
		return nil, ErrNotAWordTurn
	}
	author := s.Player(wt.Player)
	if author == nil {
		return nil, ruleViolation("Unable to challenge the last move")
	}

	turn := &ChallengeTurn{
		TurnInfo:       TurnInfo{Player: challenger.Slot, UserID: challenger.UserID},
		ChallengedTurn: wt,
	}
	challengerName := e.display.Mention(challenger.UserID)
	authorName := e.display.Mention(author.UserID)

	if bad, found := e.firstInvalid(wt.Words); found {
		if err := s.unplayWord(wt); err != nil {
			log.Err(err).Str("channel", channel).Msg("reverting challenged play")
			return nil, ruleViolation("Unable to challenge the last move: %v", err)
		}
		s.Turns = s.Turns[:len(s.Turns)-1]
		s.advanceFrom(wt.Player)
		turn.Successful = true
		turn.StatusMessage = fmt.Sprintf(
			"%v successfully challenged %v's move. %v is not in the scrabble dictionary. %v has lost their turn.",
			challengerName, authorName, e.display.Banner(bad), authorName)
	} else {
		if challenger.Slot == s.CurrentPlayer {
			s.advance()
		} else {
			challenger.LosesNextTurn = true
		}
		turn.StatusMessage = fmt.Sprintf(
			"%v failed to challenge %v's move. All word(s) are in the scrabble dictionary. %v has lost their next turn.",
			challengerName, authorName, challengerName)
	}
	s.Turns = append(s.Turns, turn)
	log.Info().Str("channel", channel).Str("challenger", userID).
		Bool("successful", turn.Successful).Strs("words", wt.Words).Msg("challenged")

	return e.publish(ctx, s, turn.StatusMessage, challenger.Slot != s.CurrentPlayer)
}
