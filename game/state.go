// Package game is the turn engine: it owns the per-channel game state and
// every rule that changes it, from dealing a new game through word plays,
// exchanges, challenges and undo, to the end of the game.
package game

import (
	"github.com/samber/lo"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/board"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Player is one seat at the table. Slot is 1-based and never changes.
type Player struct {
	Slot           int           `json:"slot"`
	UserID         string        `json:"userId"`
	Rack           alphabet.Rack `json:"tileRack"`
	Points         int           `json:"points"`
	LosesNextTurn  bool          `json:"losesNextTurn"`
	PassedLastTurn bool          `json:"passedLastTurn"`
}

// State is everything persisted for the one live game in a channel.
type State struct {
	Channel         string              `json:"channel"`
	Board           board.Board         `json:"board"`
	TilePouch       alphabet.Pouch      `json:"tilePouch"`
	Players         [MaxPlayers]*Player `json:"players"`
	CurrentPlayer   int                 `json:"currentPlayer"`
	Turns           Turns               `json:"turns"`
	StatusMessageID string              `json:"statusMessageId,omitempty"`
}

// Player returns the player in the given 1-based slot, or nil.
func (s *State) Player(slot int) *Player {
	if slot < 1 || slot > MaxPlayers {
		return nil
	}
	return s.Players[slot-1]
}

// Current is the player whose turn it is.
func (s *State) Current() *Player {
	return s.Player(s.CurrentPlayer)
}

// Seated returns the players in slot order.
func (s *State) Seated() []*Player {
	return lo.Filter(s.Players[:], func(p *Player, _ int) bool {
		return p != nil
	})
}

// PlayerFor finds a user's seat.
func (s *State) PlayerFor(userID string) *Player {
	p, _ := lo.Find(s.Seated(), func(p *Player) bool {
		return p.UserID == userID
	})
	return p
}

// TileCount counts every tile in the game: the pouch, the racks and the
// board. It is always alphabet.TotalTiles.
func (s *State) TileCount() int {
	return len(s.TilePouch) + s.Board.TileCount() +
		lo.SumBy(s.Seated(), func(p *Player) int { return len(p.Rack) })
}

// allPassed is true once every seated player's last turn was a pass.
func (s *State) allPassed() bool {
	return lo.EveryBy(s.Seated(), func(p *Player) bool { return p.PassedLastTurn })
}

// leaders returns the players sharing the highest score.
func (s *State) leaders() []*Player {
	seated := s.Seated()
	best := lo.MaxBy(seated, func(a, b *Player) bool { return a.Points > b.Points })
	return lo.Filter(seated, func(p *Player, _ int) bool { return p.Points == best.Points })
}
