package game

import (
	"strings"

	. "github.com/cricklet/reversigo/internal/bitboards"
	. "github.com/cricklet/reversigo/internal/helpers"
)

// Position strings hold 64 cells, row y=0 first, X black, O white and - for
// empty, then a space and the side to move:
//
//	---------------------------OX------XO--------------------------- X
type Position struct {
	Board  Board
	Player Color
}

var OpeningPosition = Position{Board: NewOpeningBoard(), Player: Black}

var _positionRunes = [2]byte{'X', 'O'}

func (p Position) String() string {
	result := strings.Builder{}
	for i := 0; i < NumCells; i++ {
		color := p.Board.ColorAt(CellFromIndex(i))
		if color.HasValue() {
			result.WriteByte(_positionRunes[color.Value()])
		} else {
			result.WriteByte('-')
		}
	}
	result.WriteByte(' ')
	result.WriteByte(_positionRunes[p.Player])
	return result.String()
}

func PositionFromString(s string) (Position, Error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Position{}, Errorf("position %q needs cells and a side to move", s)
	}
	cells, player := fields[0], fields[1]
	if len(cells) != NumCells {
		return Position{}, Errorf("position has %v cells, expected %v", len(cells), NumCells)
	}

	result := Position{}
	for i := 0; i < NumCells; i++ {
		bit := SingleBitboard(i)
		switch cells[i] {
		case 'X', 'x', '*':
			result.Board.Black |= bit
		case 'O', 'o':
			result.Board.White |= bit
		case '-', '.':
		default:
			return Position{}, Errorf("invalid cell %q at %v", cells[i], CellFromIndex(i))
		}
	}

	switch player {
	case "X", "x", "*":
		result.Player = Black
	case "O", "o":
		result.Player = White
	default:
		return Position{}, Errorf("invalid side to move %q", player)
	}
	return result, NilError
}
