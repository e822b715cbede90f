package bitboards

import (
	"fmt"
	"math/bits"
	"strings"
)

type Bitboard uint64

const (
	BoardWidth = 8
	NumCells   = BoardWidth * BoardWidth
)

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

// CellBit maps (x, y) to its bit, 1 << (y*8 + x). Coordinates outside
// [0, 8) are a programming error.
func CellBit(x int, y int) Bitboard {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("cell (%v, %v) is off the board", x, y))
	}
	return SingleBitboards[y*BoardWidth+x]
}

func InBounds(x int, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardWidth
}

var SingleBitboards [NumCells]Bitboard = func() [NumCells]Bitboard {
	result := [NumCells]Bitboard{}
	for i := 0; i < NumCells; i++ {
		result[i] = Bitboard(1) << i
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) LeastSignificantOne() Bitboard {
	return b & -b
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

func (b Bitboard) EachIndexOfOneCallback(callback func(int)) {
	temp := b
	for temp != 0 {
		ls1 := temp.LeastSignificantOne()
		callback(bits.TrailingZeros64(uint64(ls1)))
		temp = temp ^ ls1
	}
}

func (b Bitboard) Cells() []Cell {
	result := make([]Cell, 0, OnesCount(b))
	b.EachIndexOfOneCallback(func(index int) {
		result = append(result, CellFromIndex(index))
	})
	return result
}

// String prints row y=0 first, x increasing left to right.
func (b Bitboard) String() string {
	rows := [BoardWidth]string{}
	for y := 0; y < BoardWidth; y++ {
		row := uint8(b >> (y * BoardWidth))
		// reverse so index 0 prints on the left
		rows[y] = fmt.Sprintf("%08b", bits.Reverse8(row))
	}
	return strings.Join(rows[:], "\n")
}

func BitboardFromStrings(rows [BoardWidth]string) Bitboard {
	b := Bitboard(0)
	for y, line := range rows {
		for x, c := range line {
			if c == '1' {
				b |= CellBit(x, y)
			}
		}
	}
	return b
}

type Dir int

const (
	N Dir = iota
	S
	E
	W

	NE
	NW
	SE
	SW

	NumDirs
)

// Deltas are (dx, dy) per direction. N is towards y=0.
var Deltas = [NumDirs][2]int{
	{0, -1},
	{0, 1},
	{1, 0},
	{-1, 0},

	{1, -1},
	{-1, -1},
	{1, 1},
	{-1, 1},
}

var AllDirs = []Dir{N, S, E, W, NE, NW, SE, SW}

func (d Dir) String() string {
	return [NumDirs]string{"n", "s", "e", "w", "ne", "nw", "se", "sw"}[d]
}
