package session

import (
	"context"

	. "github.com/cricklet/reversigo/internal/bitboards"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/moves"
)

type PlayerKind int

const (
	Human PlayerKind = iota
	Computer
)

func (k PlayerKind) String() string {
	switch k {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

func PlayerKindFromString(s string) (PlayerKind, Error) {
	switch s {
	case "human", "user":
		return Human, NilError
	case "computer", "cpu":
		return Computer, NilError
	}
	return Human, Errorf("unknown player kind %q", s)
}

// Policy decides how a color picks its move. Choose is consulted once per
// turn before the controller waits for a selection; an empty result means
// the move comes from Select.
type Policy interface {
	Kind() PlayerKind
	Choose(ctx context.Context, board Board, mover Color, legal moves.LegalMoveMap) Optional[Cell]
}

type HumanPolicy struct{}

var _ Policy = HumanPolicy{}

func (HumanPolicy) Kind() PlayerKind {
	return Human
}

func (HumanPolicy) Choose(ctx context.Context, board Board, mover Color, legal moves.LegalMoveMap) Optional[Cell] {
	return Empty[Cell]()
}

// ComputerPolicy marks a computer-controlled color. It has no strategy yet:
// selections for it still arrive through Select, while SelectFromInput
// drops them.
type ComputerPolicy struct {
	Logger Logger
}

var _ Policy = ComputerPolicy{}

func (ComputerPolicy) Kind() PlayerKind {
	return Computer
}

func (p ComputerPolicy) Choose(ctx context.Context, board Board, mover Color, legal moves.LegalMoveMap) Optional[Cell] {
	if p.Logger != nil {
		p.Logger.Printf("no strategy for %v, waiting for a selection\n", mover)
	}
	return Empty[Cell]()
}

func PolicyForKind(kind PlayerKind, logger Logger) Policy {
	if kind == Computer {
		return ComputerPolicy{Logger: logger}
	}
	return HumanPolicy{}
}
