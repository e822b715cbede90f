package game

import (
	"context"
	"sync/atomic"

	. "github.com/cricklet/reversigo/internal/bitboards"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/moves"
)

type Counts struct {
	Black int
	White int
}

func CountsFor(b Board) Counts {
	return Counts{Black: OnesCount(b.Black), White: OnesCount(b.White)}
}

func (c Counts) Total() int {
	return c.Black + c.White
}

func (c Counts) For(color Color) int {
	if color == Black {
		return c.Black
	}
	return c.White
}

// Winner is empty on a draw.
func (c Counts) Winner() Optional[Color] {
	if c.Black > c.White {
		return Some(Black)
	} else if c.White > c.Black {
		return Some(White)
	}
	return Empty[Color]()
}

// Snapshot is a board with the counts derived from it.
type Snapshot struct {
	Board  Board
	Counts Counts
}

// BoardState owns the board of one session. Every change replaces the
// board and its counts with a single pointer swap, then notifies OnBoard
// and OnCounts.
type BoardState struct {
	Logger Logger

	snapshot atomic.Pointer[Snapshot]
	board    *Observable[Board]
	counts   *Observable[Counts]
}

type BoardStateOption func(*BoardState)

func WithLogger(logger Logger) BoardStateOption {
	return func(s *BoardState) {
		s.Logger = logger
	}
}

func NewBoardState(options ...BoardStateOption) *BoardState {
	opening := NewOpeningBoard()
	s := &BoardState{
		Logger: &SilentLogger,
		board:  NewObservable(opening),
		counts: NewObservable(CountsFor(opening)),
	}
	for _, o := range options {
		o(s)
	}
	s.snapshot.Store(&Snapshot{Board: opening, Counts: CountsFor(opening)})
	return s
}

func (s *BoardState) Reset() {
	s.replace(NewOpeningBoard())
}

// SetBoard installs an arbitrary position, e.g. one parsed from a position
// string.
func (s *BoardState) SetBoard(b Board) Error {
	if !b.Valid() {
		return Errorf("cells occupied by both colors: %v", (b.Black & b.White).Cells())
	}
	s.replace(b)
	return NilError
}

func (s *BoardState) replace(b Board) {
	next := &Snapshot{Board: b, Counts: CountsFor(b)}
	s.snapshot.Store(next)
	s.Logger.Printf("update count black: %v white: %v\n", next.Counts.Black, next.Counts.White)

	s.board.Set(next.Board)
	s.counts.Set(next.Counts)
}

func (s *BoardState) Snapshot() Snapshot {
	return *s.snapshot.Load()
}

func (s *BoardState) Board() Board {
	return s.Snapshot().Board
}

func (s *BoardState) Counts() Counts {
	return s.Snapshot().Counts
}

func (s *BoardState) OnBoard() Readable[Board] {
	return s.board
}

func (s *BoardState) OnCounts() Readable[Counts] {
	return s.counts
}

func (s *BoardState) LegalMoves(mover Color) moves.LegalMoveMap {
	return moves.LegalMoves(s.Board(), mover)
}

func (s *BoardState) LegalMovesAsync(ctx context.Context, mover Color, generate moves.Generator) (Optional[moves.LegalMoveMap], Error) {
	return moves.LegalMovesAsync(ctx, s.Board(), mover, generate, s.Logger)
}

// ApplyMove places mover's stone at cell and flips the generator's mask for
// it. cell must be a key of the current legal move map for mover; the
// caller checks that. Returns the flipped cells.
func (s *BoardState) ApplyMove(cell Cell, mover Color) Bitboard {
	next, flips := ApplyMove(s.Board(), cell, mover)
	s.replace(next)
	return flips
}

func ApplyMove(b Board, cell Cell, mover Color) (Board, Bitboard) {
	flips := moves.FlipMaskFor(b, cell, mover)
	b = b.WithOccupancy(mover, b.Occupancy(mover)|flips|cell.Bit())
	b = b.WithOccupancy(mover.Other(), b.Occupancy(mover.Other())&^flips)
	return b, flips
}
