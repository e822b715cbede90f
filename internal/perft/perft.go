package perft

import (
	"sort"

	. "github.com/cricklet/reversigo/internal/bitboards"
	"github.com/cricklet/reversigo/internal/game"
	"github.com/cricklet/reversigo/internal/moves"
)

// Count returns the number of leaves of the move tree depth plies below
// board. A pass uses up a ply; a position where neither color can move is
// a leaf at any depth.
func Count(board Board, mover Color, depth int) int {
	return count(board, mover, depth, false)
}

func count(board Board, mover Color, depth int, passed bool) int {
	if depth == 0 {
		return 1
	}

	legal := moves.LegalMoves(board, mover)
	if len(legal) == 0 {
		if passed {
			return 1
		}
		return count(board, mover.Other(), depth-1, true)
	}

	if depth == 1 {
		return len(legal)
	}

	result := 0
	for cell := range legal {
		next, _ := game.ApplyMove(board, cell, mover)
		result += count(next, mover.Other(), depth-1, false)
	}
	return result
}

type DivideResult struct {
	Move   Cell
	Leaves int
}

// Divide splits Count by root move. A root pass is reported with an
// off-board cell.
func Divide(board Board, mover Color, depth int, progress func(DivideResult)) []DivideResult {
	results := []DivideResult{}
	if depth == 0 {
		return results
	}

	legal := moves.LegalMoves(board, mover)
	if len(legal) == 0 {
		result := DivideResult{Move: PassCell, Leaves: count(board, mover.Other(), depth-1, true)}
		if progress != nil {
			progress(result)
		}
		return append(results, result)
	}

	for _, cell := range legal.Cells() {
		next, _ := game.ApplyMove(board, cell, mover)
		result := DivideResult{Move: cell, Leaves: count(next, mover.Other(), depth-1, false)}
		if progress != nil {
			progress(result)
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Move.Index() < results[j].Move.Index()
	})
	return results
}

var PassCell = Cell{X: -1, Y: -1}

func Total(results []DivideResult) int {
	total := 0
	for _, r := range results {
		total += r.Leaves
	}
	return total
}
