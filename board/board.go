// Package board holds the 15x15 game board: the premium-space layout, the
// tiles placed on it, and the scanning used to find the words a play forms.
package board

import (
	"fmt"

	"github.com/domino14/scrabblebot/alphabet"
)

// A Square is a tile sitting on the board. When Letter is the blank,
// Replacement carries the letter the player assigned to it.
type Square struct {
	Letter      alphabet.Tile `json:"letter"`
	Replacement alphabet.Tile `json:"replacement,omitempty"`
}

// Face is the letter this square reads as in a word.
func (s Square) Face() alphabet.Tile {
	if s.Letter.IsBlank() {
		return s.Replacement
	}
	return s.Letter
}

// Points is the face value of the tile; blanks are always worth 0.
func (s Square) Points() int {
	return alphabet.PointValue(s.Letter)
}

func (s Square) String() string {
	if s.Letter.IsBlank() {
		return fmt.Sprintf("_(%v)", s.Replacement)
	}
	return s.Letter.String()
}

// A Position is a board coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is the orientation of a word on the board.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Step is the unit offset along the direction.
func (d Direction) Step() (dx, dy int) {
	if d == Vertical {
		return 0, 1
	}
	return 1, 0
}

// Perpendicular returns the crossing direction.
func (d Direction) Perpendicular() Direction {
	if d == Vertical {
		return Horizontal
	}
	return Vertical
}

// A Board is indexed as Board[x][y]; a nil entry is an empty space.
type Board [Dim][Dim]*Square

// At returns the square at (x, y), or nil if the space is empty or off the
// board.
func (b *Board) At(x, y int) *Square {
	if !InBounds(x, y) {
		return nil
	}
	return b[x][y]
}

// Occupied returns true if a tile sits at (x, y).
func (b *Board) Occupied(x, y int) bool {
	return b.At(x, y) != nil
}

// Set places a tile. It overwrites nothing: setting an occupied or
// out-of-range space is an error.
func (b *Board) Set(x, y int, sq Square) error {
	if !InBounds(x, y) {
		return fmt.Errorf("position (%d,%d) is off the board", x, y)
	}
	if b[x][y] != nil {
		return fmt.Errorf("position (%d,%d) is already occupied", x, y)
	}
	b[x][y] = &sq
	return nil
}

// Clear removes the tile at (x, y), returning it.
func (b *Board) Clear(x, y int) *Square {
	sq := b.At(x, y)
	if sq != nil {
		b[x][y] = nil
	}
	return sq
}

// IsEmpty returns true if no tile has been played.
func (b *Board) IsEmpty() bool {
	return b.TileCount() == 0
}

// TileCount is the number of tiles on the board.
func (b *Board) TileCount() int {
	n := 0
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			if b[x][y] != nil {
				n++
			}
		}
	}
	return n
}

// Tiles returns every tile on the board as its pouch code, blanks as '_'.
func (b *Board) Tiles() []alphabet.Tile {
	var tiles []alphabet.Tile
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			if b[x][y] != nil {
				tiles = append(tiles, b[x][y].Letter)
			}
		}
	}
	return tiles
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() Board {
	var c Board
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			if b[x][y] != nil {
				sq := *b[x][y]
				c[x][y] = &sq
			}
		}
	}
	return c
}

// RunThrough returns the positions of the contiguous occupied spaces that
// pass through (x, y) along dir, in reading order. (x, y) itself is treated
// as occupied whether or not a tile is there yet.
func (b *Board) RunThrough(x, y int, dir Direction) []Position {
	dx, dy := dir.Step()
	sx, sy := x, y
	for b.Occupied(sx-dx, sy-dy) {
		sx, sy = sx-dx, sy-dy
	}
	run := []Position{{sx, sy}}
	for cx, cy := sx+dx, sy+dy; ; cx, cy = cx+dx, cy+dy {
		if !(cx == x && cy == y) && !b.Occupied(cx, cy) {
			break
		}
		run = append(run, Position{cx, cy})
	}
	return run
}

// Word reads the letters at the given positions, blanks resolved.
func (b *Board) Word(run []Position) []alphabet.Tile {
	word := make([]alphabet.Tile, 0, len(run))
	for _, p := range run {
		if sq := b.At(p.X, p.Y); sq != nil {
			word = append(word, sq.Face())
		}
	}
	return word
}
