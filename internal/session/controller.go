package session

import (
	"context"
	"sync"
	"sync/atomic"

	. "github.com/cricklet/reversigo/internal/bitboards"
	"github.com/cricklet/reversigo/internal/game"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/moves"
)

type Phase int

const (
	Idle Phase = iota
	AwaitingLegalMoves
	AwaitingInput
	Applying
	Ended
)

func (p Phase) String() string {
	return [...]string{"idle", "awaiting-legal-moves", "awaiting-input", "applying", "ended"}[p]
}

type TurnState struct {
	ActiveColor Color
	TurnNumber  int
	Passed      bool
	Pending     Optional[Cell]
}

var openingTurn = TurnState{ActiveColor: Black, TurnNumber: 1}

// Controller runs the turn cycle of one game. Run is the only writer of the
// board and the turn; everything else reads the published observables.
type Controller struct {
	Logger Logger

	policies              [2]Policy
	generate              moves.Generator
	maxGenerationFailures int

	board *game.BoardState
	turn  TurnState

	// guards phase and the hand-off of selections
	lock       sync.Mutex
	phase      Phase
	selections chan Cell
	running    atomic.Bool

	onLegalMoves *Observable[Bitboard]
	onTurn       *Observable[TurnState]
	onPhase      *Observable[Phase]
}

type ControllerOption func(*Controller)

func WithLogger(logger Logger) ControllerOption {
	return func(c *Controller) {
		c.Logger = logger
	}
}

func WithPolicies(black Policy, white Policy) ControllerOption {
	return func(c *Controller) {
		c.policies = [2]Policy{black, white}
	}
}

// WithComputerPlayers flags which colors are computer-controlled.
func WithComputerPlayers(blackIsComputer bool, whiteIsComputer bool) ControllerOption {
	return func(c *Controller) {
		kinds := [2]PlayerKind{Human, Human}
		if blackIsComputer {
			kinds[Black] = Computer
		}
		if whiteIsComputer {
			kinds[White] = Computer
		}
		c.policies = [2]Policy{PolicyForKind(kinds[Black], nil), PolicyForKind(kinds[White], nil)}
	}
}

// WithGenerator replaces the function run on the worker goroutine to
// compute legal moves.
func WithGenerator(generate moves.Generator) ControllerOption {
	return func(c *Controller) {
		c.generate = generate
	}
}

func WithMaxGenerationFailures(n int) ControllerOption {
	return func(c *Controller) {
		c.maxGenerationFailures = n
	}
}

func NewController(options ...ControllerOption) *Controller {
	c := &Controller{
		policies:              [2]Policy{HumanPolicy{}, HumanPolicy{}},
		generate:              moves.LegalMoves,
		maxGenerationFailures: 3,
		turn:                  openingTurn,
		selections:            make(chan Cell, 1),
		onTurn:                NewObservable(openingTurn),
		onPhase:               NewObservable(Idle),
	}
	for _, o := range options {
		o(c)
	}
	if c.Logger == nil {
		c.Logger = &DefaultLogger
	}
	for i, p := range c.policies {
		if computer, ok := p.(ComputerPolicy); ok && computer.Logger == nil {
			computer.Logger = c.Logger
			c.policies[i] = computer
		}
	}

	c.board = game.NewBoardState(game.WithLogger(c.Logger))
	c.onLegalMoves = NewObservable(c.board.LegalMoves(Black).Selectable())
	return c
}

func (c *Controller) Reset() Error {
	return c.SetPosition(game.OpeningPosition)
}

// SetPosition starts the next game from p instead of the opening. It holds
// the running flag while it writes, so Run cannot start halfway through.
func (c *Controller) SetPosition(p game.Position) Error {
	if !c.running.CompareAndSwap(false, true) {
		return Errorf("cannot reset a running game")
	}
	defer c.running.Store(false)

	if !p.Board.Valid() {
		return Errorf("cells occupied by both colors: %v", (p.Board.Black & p.Board.White).Cells())
	}
	c.onLegalMoves.Set(0)
	err := c.board.SetBoard(p.Board)
	if !IsNil(err) {
		return err
	}
	c.turn = TurnState{ActiveColor: p.Player, TurnNumber: 1}
	c.publishTurn()
	c.onLegalMoves.Set(c.board.LegalMoves(p.Player).Selectable())
	c.setPhase(Idle)
	return NilError
}

// Start resets the game and runs it on a new goroutine. The returned
// channel receives Run's result.
func (c *Controller) Start(ctx context.Context) (<-chan Error, Error) {
	err := c.Reset()
	if !IsNil(err) {
		return nil, err
	}
	return c.Go(ctx), NilError
}

// Go runs the game from its current position on a new goroutine.
func (c *Controller) Go(ctx context.Context) <-chan Error {
	done := make(chan Error, 1)
	go func() {
		done <- c.Run(ctx)
	}()
	return done
}

func (c *Controller) OnBoard() Readable[Board] {
	return c.board.OnBoard()
}

func (c *Controller) OnCounts() Readable[game.Counts] {
	return c.board.OnCounts()
}

// OnLegalMoves publishes the cells the active color may select.
func (c *Controller) OnLegalMoves() Readable[Bitboard] {
	return c.onLegalMoves
}

func (c *Controller) OnTurn() Readable[TurnState] {
	return c.onTurn
}

func (c *Controller) OnPhase() Readable[Phase] {
	return c.onPhase
}

func (c *Controller) Snapshot() game.Snapshot {
	return c.board.Snapshot()
}

func (c *Controller) State() TurnState {
	return c.onTurn.Value()
}

func (c *Controller) Phase() Phase {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.phase
}

func (c *Controller) PlayerKind(color Color) PlayerKind {
	return c.policies[color].Kind()
}

// Select submits a cell for the current turn. It is dropped unless the
// controller is waiting for input and no other selection is queued.
// Validity is checked by the controller, not here.
func (c *Controller) Select(cell Cell) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.running.Load() || c.phase != AwaitingInput {
		return false
	}
	select {
	case c.selections <- cell:
		return true
	default:
		return false
	}
}

// SelectFromInput is Select for user input: it is dropped while the active
// color is computer-controlled.
func (c *Controller) SelectFromInput(cell Cell) bool {
	if c.PlayerKind(c.State().ActiveColor) == Computer {
		return false
	}
	return c.Select(cell)
}

func (c *Controller) publishTurn() {
	c.onTurn.Set(c.turn)
}

// setPhase clears any queued selection when leaving AwaitingInput.
func (c *Controller) setPhase(p Phase) {
	c.lock.Lock()
	c.phase = p
	if p != AwaitingInput {
		c.drainSelections()
	}
	c.lock.Unlock()

	c.onPhase.Set(p)
}

func (c *Controller) drainSelections() {
	for {
		select {
		case <-c.selections:
		default:
			return
		}
	}
}
