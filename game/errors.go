package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a command was refused.
type ErrorKind int

const (
	// UserInput covers bad syntax, wrong counts, acting out of turn and
	// malformed placements.
	UserInput ErrorKind = iota + 1
	// RuleViolation covers well-formed moves the rules do not allow.
	RuleViolation
	// NotFound means there is no game, or the user is not seated in it.
	NotFound
	// StoreFailure means the game could not be read or written.
	StoreFailure
)

func (k ErrorKind) String() string {
	switch k {
	case UserInput:
		return "user input"
	case RuleViolation:
		return "rule violation"
	case NotFound:
		return "not found"
	case StoreFailure:
		return "store failure"
	}
	return "unknown"
}

// Error is returned for every refused command. Msg is suitable for showing
// to the user who issued it.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == StoreFailure {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func userInput(format string, args ...any) error {
	return newError(UserInput, format, args...)
}

func ruleViolation(format string, args ...any) error {
	return newError(RuleViolation, format, args...)
}

func storeFailure(op string, err error) error {
	return &Error{Kind: StoreFailure, Msg: op, Err: err}
}

// KindOf returns the kind of a refusal, or 0 if err is not a *Error.
func KindOf(err error) ErrorKind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return 0
}

var (
	ErrNoActiveGame       = &Error{Kind: NotFound, Msg: "There is no active game in this channel"}
	ErrGameInProgress     = &Error{Kind: UserInput, Msg: "There is already an active game in this channel"}
	ErrNotInGame          = &Error{Kind: NotFound, Msg: "You are not part of this game"}
	ErrNotYourTurn        = &Error{Kind: UserInput, Msg: "Wait for your turn"}
	ErrNothingToUndo      = &Error{Kind: NotFound, Msg: "There are no moves to undo"}
	ErrNothingToChallenge = &Error{Kind: NotFound, Msg: "There is no move to challenge"}
	ErrOwnMove            = &Error{Kind: RuleViolation, Msg: "You cannot challenge your own move"}
	ErrAlreadyChallenged  = &Error{Kind: RuleViolation, Msg: "The last move has already been challenged"}
	ErrNotAWordTurn       = &Error{Kind: RuleViolation, Msg: "Unable to challenge the last move"}
	ErrPlayerCount        = &Error{Kind: UserInput, Msg: "There must be 2 to 4 players"}
)

// ErrStateNotFound is returned by a Store when a channel has no live game.
var ErrStateNotFound = errors.New("game state not found")
