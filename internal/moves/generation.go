package moves

import (
	"sort"

	. "github.com/cricklet/reversigo/internal/bitboards"
)

// LegalMoveMap maps each playable empty cell to the mask of opponent cells
// it would flip, for one mover and one board.
type LegalMoveMap map[Cell]Bitboard

func (m LegalMoveMap) Selectable() Bitboard {
	result := Bitboard(0)
	for cell := range m {
		result |= cell.Bit()
	}
	return result
}

func (m LegalMoveMap) Contains(c Cell) bool {
	_, ok := m[c]
	return ok
}

// Cells returns the keys in board index order.
func (m LegalMoveMap) Cells() []Cell {
	result := make([]Cell, 0, len(m))
	for cell := range m {
		result = append(result, cell)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Index() < result[j].Index()
	})
	return result
}

// FlipMaskFor returns the opponent cells that flip if mover plays origin.
// A direction only counts if its run of opponent cells is closed by a mover
// cell; running into the edge or an empty cell contributes nothing.
func FlipMaskFor(board Board, origin Cell, mover Color) Bitboard {
	own := board.Occupancy(mover)
	opponent := board.Occupancy(mover.Other())

	result := Bitboard(0)
	for _, dir := range AllDirs {
		dx, dy := Deltas[dir][0], Deltas[dir][1]

		run := Bitboard(0)
		for step := 1; step < BoardWidth; step++ {
			x, y := origin.X+dx*step, origin.Y+dy*step
			if !InBounds(x, y) {
				break
			}
			bit := CellBit(x, y)
			if opponent&bit != 0 {
				run |= bit
				continue
			}
			if own&bit != 0 {
				result |= run
			}
			break
		}
	}
	return result
}

// LegalMoves scans every empty cell; a cell is legal iff it flips something.
func LegalMoves(board Board, mover Color) LegalMoveMap {
	result := LegalMoveMap{}
	board.Empty().EachIndexOfOneCallback(func(index int) {
		cell := CellFromIndex(index)
		if flips := FlipMaskFor(board, cell, mover); flips != 0 {
			result[cell] = flips
		}
	})
	return result
}

const (
	_notColumnA Bitboard = 0xfefefefefefefefe
	_notColumnH Bitboard = 0x7f7f7f7f7f7f7f7f
)

// shift moves every bit one step in dir, dropping bits that leave the board.
func shift(b Bitboard, dir Dir) Bitboard {
	dx, dy := Deltas[dir][0], Deltas[dir][1]
	offset := dy*BoardWidth + dx
	if offset > 0 {
		b <<= offset
	} else {
		b >>= -offset
	}
	switch dx {
	case 1:
		b &= _notColumnA
	case -1:
		b &= _notColumnH
	}
	return b
}

// SelectableMask computes LegalMoves(board, mover).Selectable() with
// whole-board shifts instead of a per-cell walk.
func SelectableMask(board Board, mover Color) Bitboard {
	own := board.Occupancy(mover)
	opponent := board.Occupancy(mover.Other())
	empty := board.Empty()

	result := Bitboard(0)
	for _, dir := range AllDirs {
		run := shift(own, dir) & opponent
		for i := 0; i < BoardWidth-3; i++ {
			run |= shift(run, dir) & opponent
		}
		result |= shift(run, dir) & empty
	}
	return result
}
