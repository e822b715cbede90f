package console

import (
	"context"
	"fmt"
	"strings"

	. "github.com/cricklet/reversigo/internal/bitboards"
	"github.com/cricklet/reversigo/internal/game"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/session"
)

// Console is a line protocol over one controller:
//
//	new | position <cells> <X|O> | play <cell> | <cell> | board | moves |
//	counts | turn | help | quit
type Console struct {
	Controller *session.Controller

	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	result   Error
}

func NewConsole(controller *session.Controller) *Console {
	return &Console{Controller: controller}
}

var _help = []string{
	"new                      start a new game",
	"position <cells> <X|O>   start from a 64 cell position string",
	"play <cell>, <cell>      play a move, e.g. c4",
	"board                    print the board",
	"moves                    list legal moves",
	"counts                   print stone counts",
	"turn                     print whose turn it is",
	"quit                     stop the game",
}

func (c *Console) HandleInput(input string) ([]string, Error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return []string{}, NilError
	}

	switch fields[0] {
	case "help":
		return _help, NilError
	case "new":
		return c.start(game.OpeningPosition)
	case "position":
		p, err := game.PositionFromString(strings.Join(fields[1:], " "))
		if !IsNil(err) {
			return nil, err
		}
		return c.start(p)
	case "board":
		return c.boardLines(), NilError
	case "moves":
		return []string{c.movesLine()}, NilError
	case "counts":
		return []string{c.countsLine()}, NilError
	case "turn":
		return []string{c.turnLine()}, NilError
	case "quit":
		c.Stop()
		return []string{"bye"}, NilError
	case "play":
		if len(fields) != 2 {
			return nil, Errorf("usage: play <cell>")
		}
		return c.play(fields[1])
	}

	if len(fields) == 1 {
		if _, err := CellFromString(fields[0]); IsNil(err) {
			return c.play(fields[0])
		}
	}
	return nil, Errorf("unknown command %q", input)
}

func (c *Console) start(p game.Position) ([]string, Error) {
	c.Stop()

	err := c.Controller.SetPosition(p)
	if !IsNil(err) {
		return nil, err
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.finished = make(chan struct{})
	go func(ctx context.Context, finished chan struct{}) {
		c.result = c.Controller.Run(ctx)
		close(finished)
	}(c.ctx, c.finished)

	err = c.settle(0)
	if !IsNil(err) {
		return nil, err
	}
	return append(c.boardLines(), c.turnLine()), NilError
}

// Stop cancels the running game, if any, and waits for it.
func (c *Console) Stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.finished
	c.cancel = nil
}

func (c *Console) play(s string) ([]string, Error) {
	cell, err := CellFromString(s)
	if !IsNil(err) {
		return nil, err
	}
	if c.cancel == nil {
		return nil, Errorf("no game, use new")
	}

	state := c.Controller.State()
	switch {
	case c.Controller.Phase() == session.Ended:
		return []string{"game over", c.countsLine()}, NilError
	case c.Controller.OnLegalMoves().Value()&cell.Bit() == 0:
		return []string{fmt.Sprintf("illegal move %v for %v", cell, state.ActiveColor)}, NilError
	case !c.Controller.SelectFromInput(cell):
		return []string{fmt.Sprintf("%v is not accepting input", state.ActiveColor)}, NilError
	}

	err = c.settle(state.TurnNumber)
	if !IsNil(err) {
		return nil, err
	}
	return append(c.boardLines(), c.turnLine()), NilError
}

// settle waits until the controller is past afterTurn and either waiting
// for input or ended.
func (c *Console) settle(afterTurn int) Error {
	ctx, cancel := context.WithCancel(c.ctx)
	defer cancel()

	phases := c.Controller.OnPhase().Channel(ctx)
	for {
		select {
		case phase := <-phases:
			settled := phase == session.AwaitingInput || phase == session.Ended
			if settled && c.Controller.State().TurnNumber > afterTurn {
				return NilError
			}
		case <-c.finished:
			if c.Controller.Phase() == session.Ended {
				return NilError
			}
			if !IsNil(c.result) {
				return c.result
			}
			return Errorf("game stopped")
		}
	}
}

func (c *Console) boardLines() []string {
	return strings.Split(c.Controller.Snapshot().Board.String(), "\n")
}

func (c *Console) movesLine() string {
	cells := c.Controller.OnLegalMoves().Value().Cells()
	if len(cells) == 0 {
		return "moves: none"
	}
	return "moves: " + strings.Join(MapSlice(cells, Cell.String), " ")
}

func (c *Console) countsLine() string {
	counts := c.Controller.Snapshot().Counts
	return fmt.Sprintf("black %v white %v", counts.Black, counts.White)
}

func (c *Console) turnLine() string {
	state := c.Controller.State()
	if c.Controller.Phase() == session.Ended {
		winner := c.Controller.Snapshot().Counts.Winner()
		if winner.HasValue() {
			return fmt.Sprintf("game over after turn %v, %v wins (%v)", state.TurnNumber, winner.Value(), c.countsLine())
		}
		return fmt.Sprintf("game over after turn %v, draw (%v)", state.TurnNumber, c.countsLine())
	}
	return fmt.Sprintf("turn %v, %v to move (%v)", state.TurnNumber, state.ActiveColor, c.countsLine())
}
