package game

import (
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/board"
	"github.com/domino14/scrabblebot/move"
)

func tileName(t alphabet.Tile) string {
	if t.IsBlank() {
		return "a blank"
	}
	return strings.ToUpper(t.String())
}

// checkPlacement works out which tiles a placement lays down and what it
// scores, leaving the board and the rack untouched.
func checkPlacement(b *board.Board, rack alphabet.Rack, p *move.Placement) ([]PlayedTile, scoredPlay, error) {
	var placed []PlayedTile
	reused := false
	remaining := append(alphabet.Rack{}, rack...)
	squares := p.Squares()
	for i, pos := range p.Positions() {
		sq := squares[i]
		if existing := b.At(pos.X, pos.Y); existing != nil {
			if sq.Letter.IsBlank() || existing.Face() != sq.Letter {
				return nil, scoredPlay{}, ruleViolation(
					"Unable to play word - expected %v to contain %v but the board space already has %v",
					pos, tileName(sq.Letter), tileName(existing.Face()))
			}
			reused = true
			continue
		}
		if err := remaining.Take([]alphabet.Tile{sq.Letter}); err != nil {
			return nil, scoredPlay{}, ruleViolation(
				"Unable to play word - you do not have %v in your tile rack for %v",
				tileName(sq.Letter), pos)
		}
		placed = append(placed, PlayedTile{X: pos.X, Y: pos.Y, Letter: sq.Letter, Replacement: sq.Replacement})
	}
	if len(placed) == 0 {
		return nil, scoredPlay{}, ruleViolation("Unable to play word - you must place at least one tile")
	}

	// The typed span has to be the whole word, not part of a longer one.
	dx, dy := p.Direction().Step()
	if b.Occupied(p.Start.X-dx, p.Start.Y-dy) || b.Occupied(p.End.X+dx, p.End.Y+dy) {
		return nil, scoredPlay{}, ruleViolation(
			"Unable to play word - the word continues past %v-%v; include every letter of it", p.Start, p.End)
	}

	firstWord := b.IsEmpty()
	trial := b.Copy()
	for _, pt := range placed {
		if err := trial.Set(pt.X, pt.Y, pt.Square()); err != nil {
			return nil, scoredPlay{}, ruleViolation("Unable to play word - %v", err)
		}
	}
	positions := lo.Map(placed, func(pt PlayedTile, _ int) board.Position {
		return board.Position{X: pt.X, Y: pt.Y}
	})
	scored := scorePlay(&trial, positions, p.Direction())

	if firstWord {
		coversCenter := lo.ContainsBy(positions, func(pos board.Position) bool {
			return board.SpaceKindAt(pos.X, pos.Y) == board.Center
		})
		if !coversCenter {
			return nil, scoredPlay{}, ruleViolation(
				"Unable to play word - the first word must be played in the center of the board")
		}
	} else if !reused && len(scored.words) == 1 {
		return nil, scoredPlay{}, ruleViolation(
			"Unable to play word - new word must intersect with an existing word")
	}
	return placed, scored, nil
}
