package bitboards

import (
	"strings"
	"testing"

	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestCellBitMapping(t *testing.T) {
	assert.Equal(t, Bitboard(1), CellBit(0, 0))
	assert.Equal(t, Bitboard(1)<<7, CellBit(7, 0))
	assert.Equal(t, Bitboard(1)<<8, CellBit(0, 1))
	assert.Equal(t, Bitboard(1)<<63, CellBit(7, 7))
	assert.Equal(t, Bitboard(1)<<(3*8+2), CellBit(2, 3))

	for i := 0; i < NumCells; i++ {
		c := CellFromIndex(i)
		assert.Equal(t, SingleBitboard(i), c.Bit())
		assert.Equal(t, i, c.Index())
	}
}

func TestCellBitPanicsOffBoard(t *testing.T) {
	assert.Panics(t, func() { CellBit(-1, 0) })
	assert.Panics(t, func() { CellBit(0, 8) })
	assert.Panics(t, func() { CellBit(8, 8) })
	assert.NotPanics(t, func() { CellBit(7, 7) })
}

func TestCellNotation(t *testing.T) {
	assert.Equal(t, "c4", Cell{2, 3}.String())
	assert.Equal(t, "a1", Cell{0, 0}.String())
	assert.Equal(t, "h8", Cell{7, 7}.String())

	c, err := CellFromString("C4")
	assert.True(t, IsNil(err))
	assert.Equal(t, Cell{2, 3}, c)

	for _, s := range []string{"", "c", "i1", "a9", "a0", "c44"} {
		_, err := CellFromString(s)
		assert.False(t, IsNil(err), s)
	}
}

func TestOpeningBoard(t *testing.T) {
	b := NewOpeningBoard()
	assert.True(t, b.Valid())
	assert.Equal(t, 2, OnesCount(b.Black))
	assert.Equal(t, 2, OnesCount(b.White))
	assert.Equal(t, 60, OnesCount(b.Empty()))

	center := CellBit(3, 3) | CellBit(4, 3) | CellBit(3, 4) | CellBit(4, 4)
	assert.Equal(t, center, b.Occupied())

	assert.Equal(t, Some(White), b.ColorAt(Cell{3, 3}))
	assert.Equal(t, Some(Black), b.ColorAt(Cell{4, 3}))
	assert.True(t, b.IsEmpty(Cell{2, 3}))
	assert.False(t, b.IsEmpty(Cell{3, 4}))
}

func TestBoardFromStrings(t *testing.T) {
	b, err := BoardFromStrings([8]string{
		"........",
		"........",
		"........",
		"...OX...",
		"...XO...",
		"........",
		"........",
		"........",
	})
	assert.True(t, IsNil(err))
	assert.Equal(t, NewOpeningBoard(), b)

	assert.Equal(t, strings.Join([]string{
		"  a b c d e f g h",
		"1 . . . . . . . .",
		"2 . . . . . . . .",
		"3 . . . . . . . .",
		"4 . . . O X . . .",
		"5 . . . X O . . .",
		"6 . . . . . . . .",
		"7 . . . . . . . .",
		"8 . . . . . . . .",
	}, "\n"), b.String())

	_, err = BoardFromStrings([8]string{"..."})
	assert.False(t, IsNil(err))
}

func TestBitboardStrings(t *testing.T) {
	rows := [8]string{
		"10000000",
		"01000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000001",
	}
	b := BitboardFromStrings(rows)
	assert.Equal(t, CellBit(0, 0)|CellBit(1, 1)|CellBit(7, 7), b)
	assert.Equal(t, strings.Join(rows[:], "\n"), b.String())
	assert.Equal(t, []Cell{{0, 0}, {1, 1}, {7, 7}}, b.Cells())
}

func TestEachIndexOfOne(t *testing.T) {
	result := []int{}
	(CellBit(1, 0) | CellBit(2, 5)).EachIndexOfOneCallback(func(i int) {
		result = append(result, i)
	})
	assert.Equal(t, []int{1, 42}, result)
	assert.Equal(t, 1, (CellBit(1, 0) | CellBit(2, 5)).FirstIndexOfOne())
}

func TestColors(t *testing.T) {
	assert.Equal(t, White, Black.Other())
	assert.Equal(t, Black, White.Other())
	c, err := ColorFromString("White")
	assert.True(t, IsNil(err))
	assert.Equal(t, White, c)
	_, err = ColorFromString("red")
	assert.False(t, IsNil(err))
}

func TestDeltasCoverCompass(t *testing.T) {
	seen := map[[2]int]bool{}
	for _, d := range AllDirs {
		seen[Deltas[d]] = true
	}
	assert.Equal(t, 8, len(seen))
	assert.False(t, seen[[2]int{0, 0}])
}
