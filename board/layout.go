package board

// Dim is the width and height of the board.
const Dim = 15

// A SpaceKind is the premium marking of a board space.
type SpaceKind uint8

const (
	Blank SpaceKind = iota
	Center
	DoubleLetter
	TripleLetter
	DoubleWord
	TripleWord
)

func (k SpaceKind) String() string {
	switch k {
	case Center:
		return "center"
	case DoubleLetter:
		return "double letter"
	case TripleLetter:
		return "triple letter"
	case DoubleWord:
		return "double word"
	case TripleWord:
		return "triple word"
	}
	return "blank"
}

// LetterMultiplier is the factor applied to a tile newly placed on this kind
// of space.
func (k SpaceKind) LetterMultiplier() int {
	switch k {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	}
	return 1
}

// WordMultiplier is the factor applied to a whole word when one of its newly
// placed tiles sits on this kind of space. The center star counts as a
// double word.
func (k SpaceKind) WordMultiplier() int {
	switch k {
	case Center, DoubleWord:
		return 2
	case TripleWord:
		return 3
	}
	return 1
}

const (
	markTripleWord   = '='
	markDoubleWord   = '-'
	markTripleLetter = '"'
	markDoubleLetter = '\''
	markCenter       = '*'
)

// StandardLayout is the standard 15x15 board. Row i of the layout is y=i and
// column j is x=j; the layout is symmetric so the distinction rarely matters.
var StandardLayout = []string{
	`=  '   =   '  =`,
	` -   "   "   - `,
	`  -   ' '   -  `,
	`'  -   '   -  '`,
	`    -     -    `,
	` "   "   "   " `,
	`  '   ' '   '  `,
	`=  '   *   '  =`,
	`  '   ' '   '  `,
	` "   "   "   " `,
	`    -     -    `,
	`'  -   '   -  '`,
	`  -   ' '   -  `,
	` -   "   "   - `,
	`=  '   =   '  =`,
}

var spaceKinds [Dim][Dim]SpaceKind

func init() {
	for y, row := range StandardLayout {
		for x, c := range row {
			spaceKinds[x][y] = kindFromMark(c)
		}
	}
}

func kindFromMark(c rune) SpaceKind {
	switch c {
	case markTripleWord:
		return TripleWord
	case markDoubleWord:
		return DoubleWord
	case markTripleLetter:
		return TripleLetter
	case markDoubleLetter:
		return DoubleLetter
	case markCenter:
		return Center
	}
	return Blank
}

// SpaceKindAt returns the marking of the space at (x, y). Coordinates off the
// board are Blank.
func SpaceKindAt(x, y int) SpaceKind {
	if !InBounds(x, y) {
		return Blank
	}
	return spaceKinds[x][y]
}

// InBounds returns true if (x, y) is on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Dim && y >= 0 && y < Dim
}

// CenterX and CenterY locate the star.
const (
	CenterX = 7
	CenterY = 7
)
