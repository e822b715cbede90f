package console

import (
	"strings"
	"testing"

	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/session"
	"github.com/stretchr/testify/assert"
)

func newConsole(options ...session.ControllerOption) *Console {
	return NewConsole(session.NewController(append(options, session.WithLogger(&SilentLogger))...))
}

func handle(t *testing.T, c *Console, input string) []string {
	result, err := c.HandleInput(input)
	assert.True(t, IsNil(err), "%v: %v", input, err)
	return result
}

func TestNewGame(t *testing.T) {
	c := newConsole()
	defer c.Stop()

	result := handle(t, c, "new")
	assert.Equal(t, "  a b c d e f g h", result[0])
	assert.Equal(t, "4 . . . O X . . .", result[4])
	assert.Equal(t, "turn 1, black to move (black 2 white 2)", result[len(result)-1])

	assert.Equal(t, []string{"moves: d3 c4 f5 e6"}, handle(t, c, "moves"))
}

func TestPlayOpeningMove(t *testing.T) {
	c := newConsole()
	defer c.Stop()
	handle(t, c, "new")

	result := handle(t, c, "play c4")
	assert.Equal(t, "4 . . X X X . . .", result[4])
	assert.Equal(t, "turn 2, white to move (black 4 white 1)", result[len(result)-1])

	assert.Equal(t, []string{"black 4 white 1"}, handle(t, c, "counts"))
	assert.Equal(t, []string{"moves: c3 e3 c5"}, handle(t, c, "moves"))

	result = handle(t, c, "c3")
	assert.Equal(t, "turn 3, black to move (black 3 white 3)", result[len(result)-1])
}

func TestIllegalMoveIsReported(t *testing.T) {
	c := newConsole()
	defer c.Stop()
	handle(t, c, "new")

	assert.Equal(t, []string{"illegal move a1 for black"}, handle(t, c, "play a1"))
	assert.Equal(t, []string{"turn 1, black to move (black 2 white 2)"}, handle(t, c, "turn"))
}

func TestComputerTurnRejectsInput(t *testing.T) {
	c := newConsole(session.WithComputerPlayers(true, false))
	defer c.Stop()
	handle(t, c, "new")

	assert.Equal(t, []string{"black is not accepting input"}, handle(t, c, "c4"))
}

func TestPositionToGameOver(t *testing.T) {
	c := newConsole()
	defer c.Stop()

	result := handle(t, c, "position OX-------------------------------------------------------------- X")
	assert.Equal(t, "turn 2, white to move (black 1 white 1)", result[len(result)-1])

	result = handle(t, c, "c1")
	assert.Equal(t, "game over after turn 4, white wins (black 0 white 3)", result[len(result)-1])

	assert.Equal(t, []string{"game over", "black 0 white 3"}, handle(t, c, "c2"))
}

func TestErrors(t *testing.T) {
	c := newConsole()
	defer c.Stop()

	for _, input := range []string{"play c4", "jump", "play", "play z9", "position nonsense"} {
		_, err := c.HandleInput(input)
		assert.False(t, IsNil(err), input)
	}

	result, err := c.HandleInput("")
	assert.True(t, IsNil(err))
	assert.Equal(t, 0, len(result))

	assert.True(t, strings.HasPrefix(handle(t, c, "help")[0], "new"))
	assert.Equal(t, []string{"bye"}, handle(t, c, "quit"))
}
