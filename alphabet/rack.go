package alphabet

import (
	"errors"
	"math/rand/v2"

	"github.com/samber/lo"
)

// RackSize is the number of tiles a full rack holds.
const RackSize = 7

// Rack is a player's hand of tiles. Order is kept because players may
// rearrange their racks.
type Rack []Tile

// Has returns true if every tile (counted with multiplicity) is on the rack.
func (r Rack) Has(tiles []Tile) bool {
	for _, t := range lo.Uniq(tiles) {
		if lo.Count(r, t) < lo.Count(tiles, t) {
			return false
		}
	}
	return true
}

// Take removes the tiles from the rack. The rack is left untouched if any
// tile is missing.
func (r *Rack) Take(tiles []Tile) error {
	remaining, err := without(*r, tiles)
	if err != nil {
		return err
	}
	*r = remaining
	return nil
}

// Add puts tiles at the end of the rack.
func (r *Rack) Add(tiles ...Tile) {
	*r = append(*r, tiles...)
}

// Refill draws from the pouch until the rack is full or the pouch is
// empty. It returns the tiles drawn.
func (r *Rack) Refill(p *Pouch, rng *rand.Rand) []Tile {
	need := RackSize - len(*r)
	if need <= 0 {
		return nil
	}
	drawn := p.Draw(rng, need)
	r.Add(drawn...)
	return drawn
}

// Reorder returns a copy of the rack with the given tiles moved to the front,
// in the order given; the rest keep their relative order.
func (r Rack) Reorder(front []Tile) (Rack, error) {
	if len(front) > RackSize {
		return nil, errors.New("too many tiles")
	}
	rest, err := without(r, front)
	if err != nil {
		return nil, err
	}
	return append(append(Rack{}, front...), rest...), nil
}

func (r Rack) String() string {
	return TilesString(r)
}
