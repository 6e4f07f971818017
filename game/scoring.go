package game

import (
	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/board"
)

// scoreWord scores the word lying on run. Only the tiles in placed, the ones
// laid this turn, pick up premium spaces: each letter premium multiplies its
// own tile and each word premium multiplies the whole word, compounding.
func scoreWord(b *board.Board, run []board.Position, placed map[board.Position]bool) int {
	total, wordMultiplier := 0, 1
	for _, pos := range run {
		sq := b.At(pos.X, pos.Y)
		if sq == nil {
			continue
		}
		pts := sq.Points()
		if placed[pos] {
			kind := board.SpaceKindAt(pos.X, pos.Y)
			pts *= kind.LetterMultiplier()
			wordMultiplier *= kind.WordMultiplier()
		}
		total += pts
	}
	return total * wordMultiplier
}

// scoredPlay is the outcome of laying tiles on a board.
type scoredPlay struct {
	words  []string
	points int
}

// scorePlay scores tiles already placed on b along dir: the main word
// through them, every secondary word formed perpendicular to a newly placed
// tile, and the bingo bonus.
func scorePlay(b *board.Board, placed []board.Position, dir board.Direction) scoredPlay {
	isPlaced := make(map[board.Position]bool, len(placed))
	for _, p := range placed {
		isPlaced[p] = true
	}
	main := b.RunThrough(placed[0].X, placed[0].Y, dir)
	result := scoredPlay{
		words:  []string{alphabet.TilesString(b.Word(main))},
		points: scoreWord(b, main, isPlaced),
	}
	for _, p := range placed {
		cross := b.RunThrough(p.X, p.Y, dir.Perpendicular())
		if len(cross) < 2 {
			continue
		}
		result.words = append(result.words, alphabet.TilesString(b.Word(cross)))
		// only this tile is new in its crossing word
		result.points += scoreWord(b, cross, map[board.Position]bool{p: true})
	}
	if len(placed) == alphabet.RackSize {
		result.points += alphabet.BingoBonus
	}
	return result
}
