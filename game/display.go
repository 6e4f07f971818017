package game

import (
	"strings"

	"github.com/domino14/scrabblebot/alphabet"
	"github.com/domino14/scrabblebot/board"
	"github.com/domino14/scrabblebot/tiletext"
)

// Display renders the parts of status messages that depend on where they
// are shown.
type Display interface {
	Mention(userID string) string
	Tiles(tiles []alphabet.Tile) string
	// Banner renders a headline such as "game over".
	Banner(text string) string
	Board(b *board.Board) string
}

// EmojiDisplay renders for the chat: users as <@id> mentions and tiles as
// emoji.
type EmojiDisplay struct{}

var emptySpaceEmoji = map[board.SpaceKind]string{
	board.Blank:        ":sb_empty:",
	board.Center:       ":sb_center:",
	board.DoubleLetter: ":sb_dl:",
	board.TripleLetter: ":sb_tl:",
	board.DoubleWord:   ":sb_dw:",
	board.TripleWord:   ":sb_tw:",
}

func (EmojiDisplay) Mention(userID string) string {
	return "<@" + userID + ">"
}

func (EmojiDisplay) Tiles(tiles []alphabet.Tile) string {
	return tiletext.Tiles(tiles)
}

func (EmojiDisplay) Banner(text string) string {
	return tiletext.FromText(text)
}

func (EmojiDisplay) Board(b *board.Board) string {
	var sb strings.Builder
	for y := 0; y < board.Dim; y++ {
		for x := 0; x < board.Dim; x++ {
			sq := b.At(x, y)
			if sq == nil {
				sb.WriteString(emptySpaceEmoji[board.SpaceKindAt(x, y)])
				continue
			}
			// a blank shows as a blank, whatever it stands for
			sb.WriteString(tiletext.Letter(rune(sq.Letter)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// PlainDisplay renders for a terminal.
type PlainDisplay struct{}

func (PlainDisplay) Mention(userID string) string {
	return "@" + userID
}

func (PlainDisplay) Tiles(tiles []alphabet.Tile) string {
	return strings.ToUpper(alphabet.TilesString(tiles))
}

func (PlainDisplay) Banner(text string) string {
	return strings.ToUpper(text)
}

func (PlainDisplay) Board(b *board.Board) string {
	return b.ToDisplayText()
}
