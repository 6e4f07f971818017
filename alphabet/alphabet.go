// Package alphabet contains the tiles of the game: the tile codes, the
// English letter distribution and point values, the shared tile pouch, and
// the player racks.
package alphabet

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// A Tile is a single tile code. Letters are always lowercase; the blank
// is BlankTile.
type Tile rune

const (
	// BlankTile is the wildcard tile. On the board it carries a replacement
	// letter chosen at play time.
	BlankTile Tile = '_'
	// NoTile is the zero value, used for an unset replacement.
	NoTile Tile = 0
)

// IsBlank returns true if this is the blank tile.
func (t Tile) IsBlank() bool {
	return t == BlankTile
}

// IsLetter returns true for the 26 letter tiles.
func (t Tile) IsLetter() bool {
	return t >= 'a' && t <= 'z'
}

func (t Tile) String() string {
	if t == NoTile {
		return ""
	}
	return string(rune(t))
}

// MarshalText lets tiles serialize as one-character JSON strings.
func (t Tile) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tile) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = NoTile
		return nil
	}
	r, size := utf8.DecodeRune(b)
	if size != len(b) {
		return fmt.Errorf("tile must be a single character, got %q", string(b))
	}
	tile, err := TileFromRune(r)
	if err != nil {
		return err
	}
	*t = tile
	return nil
}

// TileFromRune converts user input to a tile. Letters are case-insensitive,
// and both '_' and '?' mean the blank.
func TileFromRune(r rune) (Tile, error) {
	switch {
	case r == '_' || r == '?':
		return BlankTile, nil
	case r >= 'a' && r <= 'z':
		return Tile(r), nil
	case r >= 'A' && r <= 'Z':
		return Tile(r - 'A' + 'a'), nil
	}
	return NoTile, fmt.Errorf("%q is not a valid tile", r)
}

// ToTiles converts a string such as "c_t" into tiles.
func ToTiles(s string) ([]Tile, error) {
	tiles := make([]Tile, 0, len(s))
	for _, r := range s {
		t, err := TileFromRune(r)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// ToLetters is like ToTiles but rejects blanks; it is used for the letters
// a blank stands for.
func ToLetters(s string) ([]Tile, error) {
	tiles, err := ToTiles(s)
	if err != nil {
		return nil, err
	}
	for _, t := range tiles {
		if t.IsBlank() {
			return nil, fmt.Errorf("a blank cannot stand in for another blank")
		}
	}
	return tiles, nil
}

// TilesString returns the user-visible string for a list of tiles.
func TilesString(tiles []Tile) string {
	var sb strings.Builder
	for _, t := range tiles {
		sb.WriteString(t.String())
	}
	return sb.String()
}
