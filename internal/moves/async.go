package moves

import (
	"context"
	"errors"

	. "github.com/cricklet/reversigo/internal/bitboards"
	. "github.com/cricklet/reversigo/internal/helpers"
)

type Generator func(Board, Color) LegalMoveMap

var ErrGenerationFailed = errors.New("legal move generation failed")

// LegalMovesAsync runs generate on a worker goroutine and hands the result
// back to the caller's goroutine.
//
//   - Some(moves), NilError: computed (moves may be empty)
//   - Empty, NilError: ctx was cancelled first; the worker's result is dropped
//   - Empty, error wrapping ErrGenerationFailed: the worker panicked
func LegalMovesAsync(ctx context.Context, board Board, mover Color, generate Generator, logger Logger) (Optional[LegalMoveMap], Error) {
	if generate == nil {
		generate = LegalMoves
	}
	if ctx.Err() != nil {
		return Empty[LegalMoveMap](), NilError
	}

	type result struct {
		moves LegalMoveMap
		err   Error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: Errorf("%w: %v for %v on\n%v", ErrGenerationFailed, r, mover, board)}
			}
		}()
		done <- result{moves: generate(board, mover)}
	}()

	select {
	case <-ctx.Done():
		return Empty[LegalMoveMap](), NilError
	case r := <-done:
		if ctx.Err() != nil {
			return Empty[LegalMoveMap](), NilError
		}
		if !IsNil(r.err) {
			logger.Println("generation:", r.err)
			return Empty[LegalMoveMap](), r.err
		}
		if r.moves == nil {
			r.moves = LegalMoveMap{}
		}
		return Some(r.moves), NilError
	}
}
