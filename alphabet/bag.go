package alphabet

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// A Pouch is the shared reserve of unplayed tiles. It is an ordered list so
// that it can be persisted as-is; draws pick uniformly at random.
type Pouch []Tile

// NewPouch returns a pouch holding the whole tile set.
func NewPouch() Pouch {
	return Pouch(FullSet())
}

// Shuffle shuffles the pouch in place.
func (p Pouch) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p), func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
}

// Draw draws n tiles uniformly at random without replacement. It draws
// fewer (possibly none) if the pouch has fewer than n tiles.
func (p *Pouch) Draw(rng *rand.Rand, n int) []Tile {
	if n < 0 {
		n = 0
	}
	if n > len(*p) {
		n = len(*p)
	}
	drawn := make([]Tile, 0, n)
	for i := 0; i < n; i++ {
		idx := rng.IntN(len(*p))
		drawn = append(drawn, (*p)[idx])
		*p = slices.Delete(*p, idx, idx+1)
	}
	return drawn
}

// PutBack returns tiles to the pouch.
func (p *Pouch) PutBack(tiles []Tile) {
	*p = append(*p, tiles...)
}

// Remove takes the given tiles out of the pouch. Either every tile is
// removed or, if any is missing, none are.
func (p *Pouch) Remove(tiles []Tile) error {
	remaining, err := without(*p, tiles)
	if err != nil {
		return fmt.Errorf("cannot remove %v from the pouch: %w", TilesString(tiles), err)
	}
	*p = remaining
	return nil
}

// without returns a copy of from with the first occurrence of every tile in
// take removed.
func without(from []Tile, take []Tile) ([]Tile, error) {
	out := slices.Clone(from)
	for _, t := range take {
		idx := slices.Index(out, t)
		if idx == -1 {
			return nil, fmt.Errorf("tile %v not found", t)
		}
		out = slices.Delete(out, idx, idx+1)
	}
	return out, nil
}
