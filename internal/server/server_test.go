package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	. "github.com/cricklet/reversigo/internal/bitboards"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/moves"
	"github.com/cricklet/reversigo/internal/session"
)

func pp(t any) string {
	return spew.Sdump(t)
}

func dial(t *testing.T, h *Handler) (*websocket.Conn, func()) {
	s := httptest.NewServer(h)
	url := "ws" + strings.TrimPrefix(s.URL, "http")
	socket, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Nil(t, err)
	return socket, func() {
		socket.Close()
		s.Close()
	}
}

func send(t *testing.T, socket *websocket.Conn, message MessageFromWeb) {
	bytes, err := json.Marshal(message)
	assert.Nil(t, err)
	assert.Nil(t, socket.WriteMessage(websocket.TextMessage, bytes))
}

// readUntil returns the first update matching done.
func readUntil(t *testing.T, socket *websocket.Conn, done func(UpdateToWeb) bool) UpdateToWeb {
	socket.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, bytes, err := socket.ReadMessage()
		if !assert.Nil(t, err) {
			t.FailNow()
		}
		var update UpdateToWeb
		assert.Nil(t, json.Unmarshal(bytes, &update))
		if done(update) {
			return update
		}
	}
}

func awaitingInput(turn int) func(UpdateToWeb) bool {
	return func(u UpdateToWeb) bool {
		return u.Turn == turn && u.Phase == session.AwaitingInput.String()
	}
}

func TestOpeningOverWebsocket(t *testing.T) {
	socket, closer := dial(t, NewHandler(WithLogger(&SilentLogger)))
	defer closer()

	update := readUntil(t, socket, awaitingInput(1))
	assert.Equal(t, 36, len(update.Session))
	assert.Equal(t, "black", update.Player)
	assert.Equal(t, []string{"d3", "c4", "f5", "e6"}, update.LegalMoves)
	assert.Equal(t, uint64(NewOpeningBoard().Black), update.Black)
	assert.Equal(t, uint64(NewOpeningBoard().White), update.White)
	assert.Equal(t, 2, update.BlackCount)
	assert.Equal(t, 2, update.WhiteCount)

	selection := "c4"
	send(t, socket, MessageFromWeb{Selection: &selection})

	update = readUntil(t, socket, awaitingInput(2))
	assert.Equal(t, "white", update.Player)
	assert.Equal(t, 4, update.BlackCount)
	assert.Equal(t, 1, update.WhiteCount)
	assert.Equal(t, []string{"c3", "e3", "c5"}, update.LegalMoves)
	assert.Equal(t, uint64(Cell{X: 2, Y: 2}.Bit()|Cell{X: 4, Y: 2}.Bit()|Cell{X: 2, Y: 4}.Bit()), update.Selectable)
}

func TestIllegalSelectionOverWebsocket(t *testing.T) {
	socket, closer := dial(t, NewHandler(WithLogger(&SilentLogger)))
	defer closer()

	readUntil(t, socket, awaitingInput(1))

	for _, selection := range []string{"a1", "zz"} {
		s := selection
		send(t, socket, MessageFromWeb{Selection: &s})
	}
	selection := "d3"
	send(t, socket, MessageFromWeb{Selection: &selection})

	update := readUntil(t, socket, awaitingInput(2))
	assert.Equal(t, 4, update.BlackCount)
	assert.Equal(t, 1, update.WhiteCount)
}

func TestResetOverWebsocket(t *testing.T) {
	socket, closer := dial(t, NewHandler(WithLogger(&SilentLogger)))
	defer closer()

	readUntil(t, socket, awaitingInput(1))
	selection := "f5"
	send(t, socket, MessageFromWeb{Selection: &selection})
	readUntil(t, socket, awaitingInput(2))

	reset := true
	send(t, socket, MessageFromWeb{Reset: &reset})
	update := readUntil(t, socket, awaitingInput(1))
	assert.Equal(t, 2, update.BlackCount)
	assert.Equal(t, 2, update.WhiteCount)
}

func TestComputerPlayerRejectsSelections(t *testing.T) {
	socket, closer := dial(t, NewHandler(
		WithLogger(&SilentLogger),
		WithPlayerKinds(session.Human, session.Human)))
	defer closer()

	readUntil(t, socket, awaitingInput(1))

	computer := "computer"
	send(t, socket, MessageFromWeb{BlackPlayer: &computer})
	update := readUntil(t, socket, func(u UpdateToWeb) bool {
		return u.BlackPlayer == "computer" && u.Phase == session.AwaitingInput.String()
	})
	assert.Equal(t, "human", update.WhitePlayer)

	selection := "c4"
	send(t, socket, MessageFromWeb{Selection: &selection})

	socket.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	for {
		_, bytes, err := socket.ReadMessage()
		if err != nil {
			assert.True(t, strings.Contains(err.Error(), "timeout"), err)
			break
		}
		var update UpdateToWeb
		assert.Nil(t, json.Unmarshal(bytes, &update))
		assert.Equal(t, 1, update.Turn, pp(update))
		assert.Equal(t, 2, update.BlackCount, pp(update))
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	h := NewHandler(WithLogger(&SilentLogger))
	a, closeA := dial(t, h)
	defer closeA()
	b, closeB := dial(t, h)
	defer closeB()

	updateA := readUntil(t, a, awaitingInput(1))
	updateB := readUntil(t, b, awaitingInput(1))
	assert.NotEqual(t, updateA.Session, updateB.Session)

	selection := "e6"
	send(t, a, MessageFromWeb{Selection: &selection})
	readUntil(t, a, awaitingInput(2))

	selection = "d3"
	send(t, b, MessageFromWeb{Selection: &selection})
	updateB = readUntil(t, b, awaitingInput(2))
	assert.Equal(t, uint64(Cell{X: 3, Y: 2}.Bit()), updateB.Black&uint64(Cell{X: 3, Y: 2}.Bit()))
	assert.Equal(t, uint64(0), updateB.Black&uint64(Cell{X: 4, Y: 5}.Bit()))
}

func TestInvalidPlayerKindsLeaveSessionUnchanged(t *testing.T) {
	socket, closer := dial(t, NewHandler(WithLogger(&SilentLogger)))
	defer closer()

	readUntil(t, socket, awaitingInput(1))
	selection := "c4"
	send(t, socket, MessageFromWeb{Selection: &selection})
	readUntil(t, socket, awaitingInput(2))

	computer := "computer"
	nonsense := "nonsense"
	send(t, socket, MessageFromWeb{BlackPlayer: &computer, WhitePlayer: &nonsense})
	send(t, socket, MessageFromWeb{WhitePlayer: &computer, BlackPlayer: &nonsense})

	reset := true
	send(t, socket, MessageFromWeb{Reset: &reset})
	update := readUntil(t, socket, awaitingInput(1))
	assert.Equal(t, "human", update.BlackPlayer, pp(update))
	assert.Equal(t, "human", update.WhitePlayer, pp(update))
}

func TestUpdatesPairBoardWithLegalMoves(t *testing.T) {
	socket, closer := dial(t, NewHandler(WithLogger(&SilentLogger)))
	defer closer()

	paired := func(turn int) func(UpdateToWeb) bool {
		return func(u UpdateToWeb) bool {
			board := Board{Black: Bitboard(u.Black), White: Bitboard(u.White)}
			if u.Selectable != 0 {
				mover := Black
				if u.Player == "white" {
					mover = White
				}
				assert.Equal(t, uint64(moves.LegalMoves(board, mover).Selectable()), u.Selectable, pp(u))
			}
			return awaitingInput(turn)(u)
		}
	}

	readUntil(t, socket, paired(1))
	for i, s := range []string{"c4", "c3", "d3"} {
		selection := s
		send(t, socket, MessageFromWeb{Selection: &selection})
		readUntil(t, socket, paired(i+2))
	}
}
