package alphabet

import (
	"sort"
)

const (
	// TotalTiles is the size of the full tile set, blanks included.
	TotalTiles = 100
	// BingoBonus is awarded for using all RackSize tiles in one play.
	BingoBonus = 50
)

// englishDistribution is the standard English tile set: 98 letters and
// two blanks.
var englishDistribution = map[Tile]int{
	'a': 9, 'b': 2, 'c': 2, 'd': 4, 'e': 12, 'f': 2, 'g': 3, 'h': 2,
	'i': 9, 'j': 1, 'k': 1, 'l': 4, 'm': 2, 'n': 6, 'o': 8, 'p': 2,
	'q': 1, 'r': 6, 's': 4, 't': 6, 'u': 4, 'v': 2, 'w': 2, 'x': 1,
	'y': 2, 'z': 1, BlankTile: 2,
}

var pointValues = map[Tile]int{
	'a': 1, 'b': 3, 'c': 3, 'd': 2, 'e': 1, 'f': 4, 'g': 2, 'h': 4,
	'i': 1, 'j': 8, 'k': 5, 'l': 1, 'm': 3, 'n': 1, 'o': 1, 'p': 3,
	'q': 10, 'r': 1, 's': 1, 't': 1, 'u': 1, 'v': 4, 'w': 4, 'x': 8,
	'y': 4, 'z': 10,
}

// PointValue returns the face value of a tile. Blanks (and anything that
// is not a letter) are worth nothing.
func PointValue(t Tile) int {
	return pointValues[t]
}

// Count returns how many of the given tile are in the full set.
func Count(t Tile) int {
	return englishDistribution[t]
}

// FullSet returns every tile of the distribution, in tile order.
func FullSet() []Tile {
	letters := make([]Tile, 0, len(englishDistribution))
	for t := range englishDistribution {
		letters = append(letters, t)
	}
	sort.Slice(letters, func(a, b int) bool {
		return letters[a] < letters[b]
	})
	tiles := make([]Tile, 0, TotalTiles)
	for _, t := range letters {
		for i := 0; i < englishDistribution[t]; i++ {
			tiles = append(tiles, t)
		}
	}
	return tiles
}
