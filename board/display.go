package board

import (
	"fmt"
	"strings"
)

var plainMarks = map[SpaceKind]string{
	Blank:        ".",
	Center:       "*",
	DoubleLetter: "'",
	TripleLetter: "\"",
	DoubleWord:   "-",
	TripleWord:   "=",
}

// ToDisplayText renders the board as text, x across and y down, with the
// coordinates players type in the margins. Blanks show their replacement in
// uppercase.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < Dim; x++ {
		fmt.Fprintf(&sb, "%2d", x)
	}
	sb.WriteString("\n   " + strings.Repeat("-", Dim*2) + "\n")
	for y := 0; y < Dim; y++ {
		fmt.Fprintf(&sb, "%2d|", y)
		for x := 0; x < Dim; x++ {
			sb.WriteString(" ")
			sq := b.At(x, y)
			switch {
			case sq == nil:
				sb.WriteString(plainMarks[SpaceKindAt(x, y)])
			case sq.Letter.IsBlank():
				sb.WriteString(strings.ToUpper(sq.Replacement.String()))
			default:
				sb.WriteString(sq.Letter.String())
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	return sb.String()
}
