// Package types contains shared data structures for termsuji-chess.
package types

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// BoardSize is the number of rows and columns on a chess board.
const BoardSize = 8

// CellCode is a single board cell as sent by the server.
type CellCode byte

const (
	WhiteKing   CellCode = 'K'
	WhiteQueen  CellCode = 'Q'
	WhiteRook   CellCode = 'R'
	WhiteBishop CellCode = 'B'
	WhiteKnight CellCode = 'N'
	WhitePawn   CellCode = 'P'
	BlackKing   CellCode = 'k'
	BlackQueen  CellCode = 'q'
	BlackRook   CellCode = 'r'
	BlackBishop CellCode = 'b'
	BlackKnight CellCode = 'n'
	BlackPawn   CellCode = 'p'

	// VisibleEmpty marks a square the viewer can see but holds nothing it may know about.
	VisibleEmpty CellCode = '*'
	// Hidden marks an occluded or unknown square.
	Hidden CellCode = ' '
)

// IsPiece returns true if the code names a piece of either side.
func (c CellCode) IsPiece() bool {
	return c.IsWhite() || c.IsBlack()
}

// IsWhite returns true for the uppercase piece codes.
func (c CellCode) IsWhite() bool {
	switch c {
	case WhiteKing, WhiteQueen, WhiteRook, WhiteBishop, WhiteKnight, WhitePawn:
		return true
	}
	return false
}

// IsBlack returns true for the lowercase piece codes.
func (c CellCode) IsBlack() bool {
	switch c {
	case BlackKing, BlackQueen, BlackRook, BlackBishop, BlackKnight, BlackPawn:
		return true
	}
	return false
}

// Board is indexed as Board[row][col], row 0 being the top of the screen (rank 8).
type Board [BoardSize][BoardSize]CellCode

// UnmarshalJSON reads a board from the server's nested list of one-character strings.
// Cells that are not exactly one byte are kept as code 0, which renders as empty.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return &InvalidSnapshot{fmt.Sprintf("board: %s", err)}
	}
	if len(rows) != BoardSize {
		return &InvalidSnapshot{fmt.Sprintf("board has %d rows, want %d", len(rows), BoardSize)}
	}
	var out Board
	for r, row := range rows {
		if len(row) != BoardSize {
			return &InvalidSnapshot{fmt.Sprintf("board row %d has %d columns, want %d", r, len(row), BoardSize)}
		}
		for c, cell := range row {
			if len(cell) == 1 && utf8.ValidString(cell) {
				out[r][c] = CellCode(cell[0])
			}
		}
	}
	*b = out
	return nil
}

// MarshalJSON writes the board in the same shape the server uses.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]string, BoardSize)
	for r := range b {
		rows[r] = make([]string, BoardSize)
		for c, code := range b[r] {
			rows[r][c] = string(rune(code))
		}
	}
	return json.Marshal(rows)
}

// PieceCount returns the number of squares holding a known piece.
func (b *Board) PieceCount() int {
	n := 0
	for r := range b {
		for _, code := range b[r] {
			if code.IsPiece() {
				n++
			}
		}
	}
	return n
}

// ParseBoard builds a board from eight strings of eight cell codes each.
// It is meant for fixtures; invalid input panics.
func ParseBoard(rows ...string) Board {
	if len(rows) != BoardSize {
		panic(fmt.Sprintf("ParseBoard: got %d rows", len(rows)))
	}
	var b Board
	for r, row := range rows {
		if len(row) != BoardSize {
			panic(fmt.Sprintf("ParseBoard: row %d has %d cells", r, len(row)))
		}
		for c := 0; c < BoardSize; c++ {
			b[r][c] = CellCode(row[c])
		}
	}
	return b
}

// InitialBoard returns the standard starting position.
func InitialBoard() Board {
	return ParseBoard(
		"rnbqkbnr",
		"pppppppp",
		"        ",
		"        ",
		"        ",
		"        ",
		"PPPPPPPP",
		"RNBQKBNR",
	)
}

// GameState is the outcome carried by every snapshot.
type GameState string

const (
	Unfinished GameState = "UNFINISHED"
	WhiteWon   GameState = "WHITE_WON"
	BlackWon   GameState = "BLACK_WON"
)

// Finished returns true if the game is over.
func (s GameState) Finished() bool {
	return s == WhiteWon || s == BlackWon
}

// Banner returns the end-of-game text for a finished game.
// Unknown states are treated like an unfinished game.
func (s GameState) Banner() (string, bool) {
	switch s {
	case WhiteWon:
		return "White Wins! ♚", true
	case BlackWon:
		return "Black Wins! ♔", true
	}
	return "", false
}

// Snapshot is the complete board state returned by the server.
type Snapshot struct {
	Board     Board     `json:"board"`
	GameState GameState `json:"game_state"`
	Turn      string    `json:"turn,omitempty"` // "white" or "black", informational only
}

// UnmarshalJSON rejects payloads without a board.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Board     *Board    `json:"board"`
		GameState GameState `json:"game_state"`
		Turn      string    `json:"turn"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Board == nil {
		return &InvalidSnapshot{"missing board"}
	}
	*s = Snapshot{Board: *raw.Board, GameState: raw.GameState, Turn: raw.Turn}
	return nil
}

// InvalidSnapshot is returned when a server payload cannot be used as a snapshot.
type InvalidSnapshot struct {
	err string
}

func (e *InvalidSnapshot) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.err)
}

// Coordinate is a square position. Row 0 is rank 8, col 0 is file a.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds returns true if the coordinate lies on the board.
func (c Coordinate) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// MoveRequest is one completed source-then-target gesture.
type MoveRequest struct {
	Source Coordinate `json:"source"`
	Target Coordinate `json:"target"`
	Fog    bool       `json:"fog"`
}

// MoveResult is the server's answer to a move request.
type MoveResult struct {
	// Success is nil when the server does not report acceptance.
	Success  *bool
	Snapshot Snapshot
}

// Rejected returns true if the server explicitly refused the move.
func (m *MoveResult) Rejected() bool {
	return m.Success != nil && !*m.Success
}

// Perspective selects which view of the board the server returns.
type Perspective string

const (
	// PerspectiveAudience is the fully visible board.
	PerspectiveAudience Perspective = "audience"
	// PerspectiveCurrent is the board as seen by the side to move.
	PerspectiveCurrent Perspective = "current"
)

// PerspectiveFor returns the perspective to request for the given fog flag.
func PerspectiveFor(fog bool) Perspective {
	if fog {
		return PerspectiveCurrent
	}
	return PerspectiveAudience
}
