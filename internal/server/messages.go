package server

import (
	"fmt"

	. "github.com/cricklet/reversigo/internal/bitboards"
	"github.com/cricklet/reversigo/internal/game"
	"github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/session"
)

// UpdateToWeb carries the latest board, counts and selectable cells. Masks
// use bit(x, y) = 1 << (y*8 + x) and are sent as decimal strings so they
// survive JavaScript numbers.
type UpdateToWeb struct {
	Session     string   `json:"session"`
	Black       uint64   `json:"black,string"`
	White       uint64   `json:"white,string"`
	Selectable  uint64   `json:"selectable,string"`
	LegalMoves  []string `json:"legalMoves"`
	BlackCount  int      `json:"blackCount"`
	WhiteCount  int      `json:"whiteCount"`
	Player      string   `json:"player"`
	Turn        int      `json:"turn"`
	Phase       string   `json:"phase"`
	BlackPlayer string   `json:"blackPlayer"`
	WhitePlayer string   `json:"whitePlayer"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: turn ", u.Turn, ", ", u.Player, ", ", u.Phase, ", ", u.BlackCount, "/", u.WhiteCount, ", ", u.LegalMoves)
}

type MessageFromWeb struct {
	Selection   *string `json:"selection"`
	Reset       *bool   `json:"reset"`
	BlackPlayer *string `json:"blackPlayer"`
	WhitePlayer *string `json:"whitePlayer"`
}

func (u MessageFromWeb) String() string {
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Reset != nil {
		return fmt.Sprint("MessageFromWeb Reset: ", *u.Reset)
	}
	if u.BlackPlayer != nil {
		return fmt.Sprint("MessageFromWeb BlackPlayer: ", *u.BlackPlayer)
	}
	if u.WhitePlayer != nil {
		return fmt.Sprint("MessageFromWeb WhitePlayer: ", *u.WhitePlayer)
	}
	return "MessageFromWeb unknown"
}

func updateFor(id string, c *session.Controller) UpdateToWeb {
	snapshot, state, selectable := consistentRead(c)
	return UpdateToWeb{
		Session:     id,
		Black:       uint64(snapshot.Board.Black),
		White:       uint64(snapshot.Board.White),
		Selectable:  uint64(selectable),
		LegalMoves:  helpers.MapSlice(selectable.Cells(), Cell.String),
		BlackCount:  snapshot.Counts.Black,
		WhiteCount:  snapshot.Counts.White,
		Player:      state.ActiveColor.String(),
		Turn:        state.TurnNumber,
		Phase:       c.Phase().String(),
		BlackPlayer: c.PlayerKind(Black).String(),
		WhitePlayer: c.PlayerKind(White).String(),
	}
}

// consistentRead pairs the board and turn with the selectable cells
// computed for them. The selectable cells are withdrawn before every board
// change, so a mask read between two equal reads belongs to that board.
func consistentRead(c *session.Controller) (game.Snapshot, session.TurnState, Bitboard) {
	for {
		before, beforeState := c.Snapshot(), c.State()
		selectable := c.OnLegalMoves().Value()
		after, afterState := c.Snapshot(), c.State()
		if before.Board == after.Board && beforeState == afterState {
			return after, afterState, selectable
		}
	}
}
