package session

import (
	"context"

	. "github.com/cricklet/reversigo/internal/bitboards"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/moves"
)

// Run plays turns until both colors pass in a row or ctx is cancelled. Both
// return NilError. An error is returned only when legal move generation
// keeps failing.
func (c *Controller) Run(ctx context.Context) Error {
	if !c.running.CompareAndSwap(false, true) {
		return Errorf("game is already running")
	}
	defer c.running.Store(false)

	c.Logger.Println("start game")

	failures := 0
	for {
		c.turn.Pending = Empty[Cell]()
		c.publishTurn()
		c.setPhase(AwaitingLegalMoves)

		result, err := c.board.LegalMovesAsync(ctx, c.turn.ActiveColor, c.generate)
		if !IsNil(err) {
			failures++
			if failures >= c.maxGenerationFailures {
				return Errorf("turn %v for %v: %w", c.turn.TurnNumber, c.turn.ActiveColor, err)
			}
			continue
		}
		failures = 0

		if result.IsEmpty() {
			c.Logger.Println("game cancelled")
			return NilError
		}
		legal := result.Value()
		c.onLegalMoves.Set(legal.Selectable())

		if len(legal) == 0 {
			if c.turn.Passed {
				c.end()
				return NilError
			}
			c.Logger.Printf("%v passes on turn %v\n", c.turn.ActiveColor, c.turn.TurnNumber)
			c.turn.Passed = true
			c.advance()
			continue
		}

		selection := c.awaitSelection(ctx, legal)
		if selection.IsEmpty() {
			c.Logger.Println("game cancelled")
			return NilError
		}

		cell := selection.Value()
		c.turn.Pending = Empty[Cell]()
		// withdrawn until computed against the new board
		c.onLegalMoves.Set(0)
		flips := c.board.ApplyMove(cell, c.turn.ActiveColor)
		c.Logger.Printf("turn %v: %v plays %v flipping %v\n", c.turn.TurnNumber, c.turn.ActiveColor, cell, OnesCount(flips))

		c.turn.Passed = false
		c.advance()
	}
}

func (c *Controller) advance() {
	c.turn.ActiveColor = c.turn.ActiveColor.Other()
	c.turn.TurnNumber++
}

// awaitSelection blocks until a legal cell is selected. Illegal selections
// are dropped and the same turn waits again. Empty means ctx was cancelled.
func (c *Controller) awaitSelection(ctx context.Context, legal moves.LegalMoveMap) Optional[Cell] {
	mover := c.turn.ActiveColor
	chosen := c.policies[mover].Choose(ctx, c.board.Board(), mover, legal)
	if chosen.HasValue() && legal.Contains(chosen.Value()) {
		c.setPhase(Applying)
		return chosen
	}

	c.setPhase(AwaitingInput)
	for {
		select {
		case <-ctx.Done():
			return Empty[Cell]()
		case cell := <-c.selections:
			c.turn.Pending = Some(cell)
			c.publishTurn()
			if legal.Contains(cell) {
				c.setPhase(Applying)
				return Some(cell)
			}
			c.Logger.Printf("ignoring %v, not a legal move for %v\n", cell, mover)
			c.turn.Pending = Empty[Cell]()
			c.publishTurn()
		}
	}
}

func (c *Controller) end() {
	counts := c.board.Counts()
	c.setPhase(Ended)

	winner := counts.Winner()
	if winner.HasValue() {
		c.Logger.Printf("end game: black %v white %v, %v wins\n", counts.Black, counts.White, winner.Value())
	} else {
		c.Logger.Printf("end game: black %v white %v, draw\n", counts.Black, counts.White)
	}
}
