// Package move parses the text of a word play into a Placement.
package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/board"
)

// Usage is shown to players who get the play syntax wrong.
const Usage = "play (<startx>,<starty>) (<endx>,<endy>) <word> [<replacements>]"

var (
	ErrFormat       = errors.New("invalid command format - usage: " + Usage)
	ErrShortWord    = errors.New("word must contain at least two letters")
	ErrDirection    = errors.New("word direction must be either left-to-right or top-to-bottom")
	ErrReplacements = errors.New("number of replacements does not match number of blank tiles")
)

var reCoords = regexp.MustCompile(`^\((?P<x>-?[0-9]+),(?P<y>-?[0-9]+)\)$`)

// A Placement is a parsed word play: the span it covers and the letters
// typed for it. Word holds one tile per space, with BlankTile where the
// player is placing a blank; Replacements holds the letters those blanks
// stand for, in order.
type Placement struct {
	Start        board.Position
	End          board.Position
	Word         []alphabet.Tile
	Replacements []alphabet.Tile
}

// Parse reads "(x,y) (x,y) word [replacements]".
func Parse(text string) (*Placement, error) {
	fields := strings.Fields(text)
	if len(fields) < 3 || len(fields) > 4 {
		return nil, ErrFormat
	}
	start, err := parseCoords(fields[0], "start")
	if err != nil {
		return nil, err
	}
	end, err := parseCoords(fields[1], "end")
	if err != nil {
		return nil, err
	}
	word, err := alphabet.ToTiles(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	var repl []alphabet.Tile
	if len(fields) == 4 {
		repl, err = alphabet.ToLetters(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	}
	p := &Placement{Start: start, End: end, Word: word, Replacements: repl}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseCoords(s, which string) (board.Position, error) {
	m := reCoords.FindStringSubmatch(s)
	if m == nil {
		return board.Position{}, ErrFormat
	}
	x, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	if x < 0 || x >= board.Dim {
		return board.Position{}, fmt.Errorf("%sx must be a number between 0 and %d", which, board.Dim-1)
	}
	if y < 0 || y >= board.Dim {
		return board.Position{}, fmt.Errorf("%sy must be a number between 0 and %d", which, board.Dim-1)
	}
	return board.Position{X: x, Y: y}, nil
}

// Validate checks the shape of the placement without looking at a board.
func (p *Placement) Validate() error {
	if len(p.Word) < 2 {
		return ErrShortWord
	}
	if !board.InBounds(p.Start.X, p.Start.Y) || !board.InBounds(p.End.X, p.End.Y) {
		return fmt.Errorf("positions must be between 0 and %d", board.Dim-1)
	}
	horizontal := p.Start.Y == p.End.Y && p.Start.X < p.End.X
	vertical := p.Start.X == p.End.X && p.Start.Y < p.End.Y
	if !horizontal && !vertical {
		return ErrDirection
	}
	calc := p.positionAt(len(p.Word) - 1)
	if calc != p.End {
		return fmt.Errorf("calculated end position does not match expected\nexpected: %v\ncalculated: %v",
			p.End, calc)
	}
	if lo.Count(p.Word, alphabet.BlankTile) != len(p.Replacements) {
		return ErrReplacements
	}
	return nil
}

// Direction is the orientation of the play.
func (p *Placement) Direction() board.Direction {
	if p.Start.X == p.End.X {
		return board.Vertical
	}
	return board.Horizontal
}

func (p *Placement) positionAt(i int) board.Position {
	dx, dy := p.Direction().Step()
	return board.Position{X: p.Start.X + dx*i, Y: p.Start.Y + dy*i}
}

// Positions lists the spaces the word covers, in order.
func (p *Placement) Positions() []board.Position {
	return lo.Times(len(p.Word), p.positionAt)
}

// Squares pairs every typed letter with its replacement. Spaces typed as a
// blank get the next replacement letter.
func (p *Placement) Squares() []board.Square {
	next := 0
	return lo.Map(p.Word, func(t alphabet.Tile, _ int) board.Square {
		if !t.IsBlank() {
			return board.Square{Letter: t}
		}
		sq := board.Square{Letter: t, Replacement: p.Replacements[next]}
		next++
		return sq
	})
}

// String renders the placement back in command form.
func (p *Placement) String() string {
	s := fmt.Sprintf("%v %v %v", p.Start, p.End, alphabet.TilesString(p.Word))
	if len(p.Replacements) > 0 {
		s += " " + alphabet.TilesString(p.Replacements)
	}
	return s
}
