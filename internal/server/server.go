package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	. "github.com/cricklet/reversigo/internal/bitboards"
	"github.com/cricklet/reversigo/internal/game"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/session"
)

// Handler serves one game per websocket connection.
type Handler struct {
	Logger Logger

	playerKinds   [2]session.PlayerKind
	sessionLogger func(id string) Logger
	upgrader      websocket.Upgrader
}

type HandlerOption func(*Handler)

func WithLogger(logger Logger) HandlerOption {
	return func(h *Handler) {
		h.Logger = logger
	}
}

// WithSessionLogger builds the logger for each connection's game.
func WithSessionLogger(f func(id string) Logger) HandlerOption {
	return func(h *Handler) {
		h.sessionLogger = f
	}
}

func WithPlayerKinds(black session.PlayerKind, white session.PlayerKind) HandlerOption {
	return func(h *Handler) {
		h.playerKinds = [2]session.PlayerKind{black, white}
	}
}

func NewHandler(options ...HandlerOption) *Handler {
	h := &Handler{}
	for _, o := range options {
		o(h)
	}
	if h.Logger == nil {
		h.Logger = &DefaultLogger
	}
	if h.sessionLogger == nil {
		h.sessionLogger = func(id string) Logger {
			return FuncLogger(func(s string) {
				h.Logger.Print(id[:8], ": ", s)
			})
		}
	}
	return h
}

type connection struct {
	id     string
	logger Logger
	kinds  [2]session.PlayerKind
	socket *websocket.Conn

	controllers chan *session.Controller
	controller  *session.Controller
	cancelGame  context.CancelFunc
	gameDone    <-chan Error
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	socket, err := h.upgrader.Upgrade(w, r, nil)
	if !IsNil(err) {
		h.Logger.Println("upgrade:", err)
		return
	}
	defer socket.Close()

	id := uuid.New().String()
	c := &connection{
		id:          id,
		logger:      h.sessionLogger(id),
		kinds:       h.playerKinds,
		socket:      socket,
		controllers: make(chan *session.Controller, 1),
	}
	c.logger.Println("connected", r.RemoteAddr)

	ctx, cancel := context.WithCancel(context.Background())
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writeLoop(ctx)
	}()

	c.restart(ctx)
	for {
		_, message, err := socket.ReadMessage()
		if !IsNil(err) {
			c.logger.Println("read:", err)
			break
		}
		c.handleMessage(ctx, message)
	}

	cancel()
	c.stopGame()
	<-writerDone
	c.logger.Println("disconnected")
}

func (c *connection) handleMessage(ctx context.Context, bytes []byte) {
	var message MessageFromWeb
	err := json.Unmarshal(bytes, &message)
	if !IsNil(err) {
		c.logger.Println("handleMessage: json unmarshal:", err)
		return
	}
	c.logger.Println("received", message)

	if message.Selection != nil {
		cell, err := CellFromString(*message.Selection)
		if !IsNil(err) {
			c.logger.Println("selection:", err)
			return
		}
		if !c.controller.SelectFromInput(cell) {
			c.logger.Println("selection dropped:", cell)
		}
	} else if message.BlackPlayer != nil || message.WhitePlayer != nil {
		kinds := c.kinds
		for _, color := range []Color{Black, White} {
			kind := message.BlackPlayer
			if color == White {
				kind = message.WhitePlayer
			}
			if kind == nil {
				continue
			}
			parsed, err := session.PlayerKindFromString(*kind)
			if !IsNil(err) {
				c.logger.Println("player:", err)
				return
			}
			kinds[color] = parsed
		}
		c.kinds = kinds
		c.restart(ctx)
	} else if message.Reset != nil && *message.Reset {
		c.restart(ctx)
	}
}

// restart replaces the game with a fresh one using the current player kinds.
func (c *connection) restart(ctx context.Context) {
	c.stopGame()

	c.controller = session.NewController(
		session.WithLogger(c.logger),
		session.WithPolicies(
			session.PolicyForKind(c.kinds[Black], c.logger),
			session.PolicyForKind(c.kinds[White], c.logger)),
	)

	gameCtx, cancel := context.WithCancel(ctx)
	c.cancelGame = cancel
	c.gameDone = c.controller.Go(gameCtx)

	select {
	case <-c.controllers:
	default:
	}
	c.controllers <- c.controller
}

func (c *connection) stopGame() {
	if c.cancelGame == nil {
		return
	}
	c.cancelGame()
	err := <-c.gameDone
	if !IsNil(err) {
		c.logger.Println("game:", err)
	}
	c.cancelGame = nil
}

// writeLoop is the only writer on the socket. It sends a full update
// whenever any of the current controller's observables changes.
func (c *connection) writeLoop(ctx context.Context) {
	var current *session.Controller
	subscriptionCtx, cancelSubscriptions := context.WithCancel(ctx)
	defer func() { cancelSubscriptions() }()

	var boards <-chan Board
	var counts <-chan game.Counts
	var legal <-chan Bitboard
	var phases <-chan session.Phase
	var turns <-chan session.TurnState

	for {
		select {
		case <-ctx.Done():
			return
		case next := <-c.controllers:
			cancelSubscriptions()
			subscriptionCtx, cancelSubscriptions = context.WithCancel(ctx)
			current = next
			boards = next.OnBoard().Channel(subscriptionCtx)
			counts = next.OnCounts().Channel(subscriptionCtx)
			legal = next.OnLegalMoves().Channel(subscriptionCtx)
			phases = next.OnPhase().Channel(subscriptionCtx)
			turns = next.OnTurn().Channel(subscriptionCtx)
			continue
		case <-boards:
		case <-counts:
		case <-legal:
		case <-phases:
		case <-turns:
		}
		if ctx.Err() != nil {
			return
		}

		update := updateFor(c.id, current)
		bytes, err := json.Marshal(update)
		if !IsNil(err) {
			c.logger.Println("update: json marshal:", err)
			continue
		}
		err = c.socket.WriteMessage(websocket.TextMessage, bytes)
		if !IsNil(err) {
			c.logger.Println("websocket:", err)
			return
		}
	}
}
