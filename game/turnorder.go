package game

import (
	"github.com/rs/zerolog/log"
)

// nextSlot is the slot after the given one, wrapping 4 -> 1.
func nextSlot(slot int) int {
	return slot%MaxPlayers + 1
}

// advanceFrom moves the turn to the first seated slot after from. A player
// with LosesNextTurn set is skipped and the flag cleared. The player at from
// has their flag cleared as well.
func (s *State) advanceFrom(from int) {
	if len(s.Seated()) == 0 {
		return
	}
	if p := s.Player(from); p != nil {
		p.LosesNextTurn = false
	}
	slot := nextSlot(from)
	for {
		p := s.Player(slot)
		if p != nil && !p.LosesNextTurn {
			break
		}
		if p != nil {
			log.Debug().Int("slot", slot).Str("user", p.UserID).Msg("skipping player who lost their turn")
			p.LosesNextTurn = false
		}
		slot = nextSlot(slot)
	}
	s.CurrentPlayer = slot
}

// advance passes the turn on from the current player.
func (s *State) advance() {
	s.advanceFrom(s.CurrentPlayer)
}
