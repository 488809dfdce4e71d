package types

import (
	"fmt"

	"github.com/corentings/chess/v2"
)

// Board coordinate system:
// - Row: 0-7 from the top of the screen, row 0 is rank 8
// - Col: 0-7 from the left, col 0 is file a
// - Example: (6, 4) is e2, (0, 0) is a8

// Algebraic returns the square name of c, e.g. "e2".
// Coordinates off the board are shown as "(row,col)".
func (c Coordinate) Algebraic() string {
	if !c.InBounds() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	sq := chess.NewSquare(chess.File(c.Col), chess.Rank(BoardSize-1-c.Row))
	return sq.String()
}

// String renders the move as "e2-e4".
func (m MoveRequest) String() string {
	return fmt.Sprintf("%s-%s", m.Source.Algebraic(), m.Target.Algebraic())
}
