package game

import (
	"encoding/json"
	"fmt"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/board"
)

// TurnType tags the variants of Turn.
type TurnType string

const (
	TurnWord      TurnType = "word"
	TurnExchange  TurnType = "exchange"
	TurnChallenge TurnType = "challenge"
	// TurnPass is reserved. A pass is recorded as an ExchangeTurn of zero
	// tiles with Passed set.
	TurnPass TurnType = "pass"
)

// A Turn is one resolved entry in the game history. The variants are
// *WordTurn, *ExchangeTurn and *ChallengeTurn; no other type implements it.
type Turn interface {
	Type() TurnType
	Info() *TurnInfo
}

// TurnInfo is common to every turn: who took it and the status line shown
// for it.
type TurnInfo struct {
	Player        int    `json:"player"`
	UserID        string `json:"userId"`
	StatusMessage string `json:"statusMessage"`
}

func (t *TurnInfo) Info() *TurnInfo { return t }

// PlayedTile is a tile newly placed by a word turn.
type PlayedTile struct {
	X           int           `json:"x"`
	Y           int           `json:"y"`
	Letter      alphabet.Tile `json:"letter"`
	Replacement alphabet.Tile `json:"replacement,omitempty"`
}

func (pt PlayedTile) Square() board.Square {
	return board.Square{Letter: pt.Letter, Replacement: pt.Replacement}
}

// WordTurn records a word play. Words lists the main word first and then
// every secondary word, spelled with blanks resolved.
type WordTurn struct {
	TurnInfo
	Words       []string        `json:"words"`
	Points      int             `json:"points"`
	DrawnTiles  []alphabet.Tile `json:"drawnTiles"`
	PlayedTiles []PlayedTile    `json:"playedTiles"`
}

func (*WordTurn) Type() TurnType { return TurnWord }

// ExchangeTurn records tiles traded back into the pouch.
type ExchangeTurn struct {
	TurnInfo
	ExchangedTiles []alphabet.Tile `json:"exchangedTiles"`
	DrawnTiles     []alphabet.Tile `json:"drawnTiles"`
	Passed         bool            `json:"passed,omitempty"`
}

func (*ExchangeTurn) Type() TurnType { return TurnExchange }

// ChallengeTurn records a challenge of the word turn before it. Player is
// the challenger.
type ChallengeTurn struct {
	TurnInfo
	ChallengedTurn *WordTurn `json:"challengedTurn"`
	Successful     bool      `json:"successful"`
}

func (*ChallengeTurn) Type() TurnType { return TurnChallenge }

// Turns is the append-only history.
type Turns []Turn

// Last returns the most recent turn, or nil.
func (ts Turns) Last() Turn {
	if len(ts) == 0 {
		return nil
	}
	return ts[len(ts)-1]
}

type turnEnvelope struct {
	Type      TurnType       `json:"type"`
	Word      *WordTurn      `json:"word,omitempty"`
	Exchange  *ExchangeTurn  `json:"exchange,omitempty"`
	Challenge *ChallengeTurn `json:"challenge,omitempty"`
}

func (ts Turns) MarshalJSON() ([]byte, error) {
	envs := make([]turnEnvelope, 0, len(ts))
	for _, t := range ts {
		env := turnEnvelope{Type: t.Type()}
		switch v := t.(type) {
		case *WordTurn:
			env.Word = v
		case *ExchangeTurn:
			env.Exchange = v
		case *ChallengeTurn:
			env.Challenge = v
		default:
			return nil, fmt.Errorf("unhandled turn type %T", t)
		}
		envs = append(envs, env)
	}
	return json.Marshal(envs)
}

func (ts *Turns) UnmarshalJSON(data []byte) error {
	var envs []turnEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out := make(Turns, 0, len(envs))
	for idx, env := range envs {
		var t Turn
		switch {
		case env.Type == TurnWord && env.Word != nil:
			t = env.Word
		case env.Type == TurnExchange && env.Exchange != nil:
			t = env.Exchange
		case env.Type == TurnChallenge && env.Challenge != nil:
			t = env.Challenge
		default:
			return fmt.Errorf("turn %d: bad envelope of type %q", idx, env.Type)
		}
		out = append(out, t)
	}
	*ts = out
	return nil
}
