package bitboards

import (
	"fmt"
	"strings"

	. "github.com/cricklet/reversigo/internal/helpers"
)

type Color uint8

const (
	Black Color = iota
	White
)

var _colorStrings = [2]string{
	"black", "white",
}

func (c Color) String() string {
	return _colorStrings[c]
}

func (c Color) Other() Color {
	return 1 - c
}

func ColorFromString(s string) (Color, Error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return Black, NilError
	case "w", "white":
		return White, NilError
	default:
		return Black, Errorf("invalid color %v", s)
	}
}

type Cell struct {
	X int
	Y int
}

func (c Cell) InBounds() bool {
	return InBounds(c.X, c.Y)
}

func (c Cell) Index() int {
	return c.Y*BoardWidth + c.X
}

func (c Cell) Bit() Bitboard {
	return CellBit(c.X, c.Y)
}

func CellFromIndex(index int) Cell {
	return Cell{X: index % BoardWidth, Y: index / BoardWidth}
}

// String uses a..h for x and 1..8 for y+1, e.g. (2, 3) is "c4".
func (c Cell) String() string {
	if !c.InBounds() {
		return fmt.Sprintf("(%v,%v)", c.X, c.Y)
	}
	return string(rune('a'+c.X)) + string(rune('1'+c.Y))
}

func CellFromString(s string) (Cell, Error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Cell{}, Errorf("invalid cell %q", s)
	}
	c := Cell{X: int(s[0]) - 'a', Y: int(s[1]) - '1'}
	if !c.InBounds() {
		return Cell{}, Errorf("invalid cell %q", s)
	}
	return c, NilError
}

// Board holds one occupancy mask per color. Black&White is always zero.
type Board struct {
	Black Bitboard
	White Bitboard
}

// d4 and e5 white, e4 and d5 black
var (
	OpeningBlack = CellBit(4, 3) | CellBit(3, 4)
	OpeningWhite = CellBit(3, 3) | CellBit(4, 4)
)

func NewOpeningBoard() Board {
	return Board{Black: OpeningBlack, White: OpeningWhite}
}

func (b Board) Occupancy(c Color) Bitboard {
	if c == Black {
		return b.Black
	}
	return b.White
}

func (b Board) Occupied() Bitboard {
	return b.Black | b.White
}

func (b Board) Empty() Bitboard {
	return ^b.Occupied()
}

func (b Board) IsEmpty(c Cell) bool {
	return b.Occupied()&c.Bit() == 0
}

func (b Board) ColorAt(c Cell) Optional[Color] {
	bit := c.Bit()
	if b.Black&bit != 0 {
		return Some(Black)
	} else if b.White&bit != 0 {
		return Some(White)
	}
	return Empty[Color]()
}

func (b Board) Valid() bool {
	return b.Black&b.White == 0
}

// WithOccupancy returns a copy of b with c's mask replaced.
func (b Board) WithOccupancy(c Color, mask Bitboard) Board {
	if c == Black {
		b.Black = mask
	} else {
		b.White = mask
	}
	return b
}

var _cellRunes = map[rune]Optional[Color]{
	'.': Empty[Color](),
	'X': Some(Black),
	'O': Some(White),
}

// BoardFromStrings reads X (black), O (white) and . (empty), row y=0 first.
func BoardFromStrings(rows [BoardWidth]string) (Board, Error) {
	b := Board{}
	for y, line := range rows {
		if len(line) != BoardWidth {
			return Board{}, Errorf("row %v has length %v", y, len(line))
		}
		for x, r := range line {
			color, ok := _cellRunes[r]
			if !ok {
				return Board{}, Errorf("invalid rune %q at %v", r, Cell{x, y})
			}
			if color.HasValue() {
				b = b.WithOccupancy(color.Value(), b.Occupancy(color.Value())|CellBit(x, y))
			}
		}
	}
	return b, NilError
}

func (b Board) String() string {
	result := "  a b c d e f g h\n"
	for y := 0; y < BoardWidth; y++ {
		result += fmt.Sprint(y + 1)
		for x := 0; x < BoardWidth; x++ {
			color := b.ColorAt(Cell{x, y})
			r := "."
			if color.HasValue() && color.Value() == Black {
				r = "X"
			} else if color.HasValue() {
				r = "O"
			}
			result += " " + r
		}
		if y != BoardWidth-1 {
			result += "\n"
		}
	}
	return result
}
