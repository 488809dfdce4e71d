// Package ui specifies custom controls for tview to play chess in the terminal.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsuji-chess/config"
	"termsuji-chess/types"
)

const (
	// 3 characters per square: padding, glyph, padding
	cellWidth  = 3
	labelWidth = 3
)

// Square is one rendered board square.
type Square struct {
	Coord types.Coordinate
	Code  types.CellCode
	Glyph rune
	Dark  bool
	click func()
}

// Click forwards the square's coordinate to the board's click handler.
func (sq *Square) Click() {
	if sq.click != nil {
		sq.click()
	}
}

type ChessBoardUI struct {
	Box      *tview.Box
	cfg      *config.Config
	styles   []tcell.Color
	squares  []Square
	selected *types.Coordinate
	curRow   int
	curCol   int
	onClick  func(types.Coordinate)

	// where the last draw put square a8
	originX int
	originY int
}

// NewChessBoard creates an empty board. Nothing is drawn until Render is called.
func NewChessBoard(c *config.Config) *ChessBoardUI {
	board := &ChessBoardUI{
		Box:    tview.NewBox(),
		curRow: -1,
		curCol: -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if len(board.squares) == 0 {
			return x, y, width, height
		}
		board.originX, board.originY = x, y
		if board.cfg.Theme.DrawCoordinates {
			board.originX += labelWidth
		}
		for i := range board.squares {
			board.drawSquare(screen, &board.squares[i])
		}
		if board.cfg.Theme.DrawCoordinates {
			board.drawCoordinates(screen)
		}
		return x, y, width, height
	})
	board.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		sq := board.SquareAt(event.Position())
		if sq == nil {
			return action, event
		}
		board.curRow, board.curCol = sq.Coord.Row, sq.Coord.Col
		sq.Click()
		return action, nil
	})
	return board
}

// SetClickHandler sets the function every square click is forwarded to.
func (b *ChessBoardUI) SetClickHandler(fn func(types.Coordinate)) {
	b.onClick = fn
}

// Render throws away all squares and builds 64 new ones from board.
func (b *ChessBoardUI) Render(board types.Board) {
	squares := make([]Square, 0, types.BoardSize*types.BoardSize)
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			coord := types.Coordinate{Row: row, Col: col}
			code := board[row][col]
			squares = append(squares, Square{
				Coord: coord,
				Code:  code,
				Glyph: ResolveGlyph(code),
				Dark:  (row+col)%2 == 1,
				click: func() {
					if b.onClick != nil {
						b.onClick(coord)
					}
				},
			})
		}
	}
	b.squares = squares
}

// Squares returns the squares built by the last Render, in row-major order.
func (b *ChessBoardUI) Squares() []Square {
	return b.squares
}

// SetSelected moves the selection marker; nil removes it.
func (b *ChessBoardUI) SetSelected(c *types.Coordinate) {
	if c == nil {
		b.selected = nil
		return
	}
	sel := *c
	b.selected = &sel
}

// Selected returns the marked square, or nil.
func (b *ChessBoardUI) Selected() *types.Coordinate {
	return b.selected
}

// CursorSquare returns the keyboard cursor position, or nil when hidden.
func (b *ChessBoardUI) CursorSquare() *types.Coordinate {
	if b.curRow == -1 && b.curCol == -1 {
		return nil
	}
	return &types.Coordinate{Row: b.curRow, Col: b.curCol}
}

// MoveCursor moves the keyboard cursor, showing it first if it is hidden.
func (b *ChessBoardUI) MoveCursor(dRow, dCol int) {
	if b.CursorSquare() == nil {
		if b.selected != nil {
			b.curRow, b.curCol = b.selected.Row, b.selected.Col
		} else {
			// e2, where most games start
			b.curRow, b.curCol = 6, 4
		}
		return
	}
	if b.curRow+dRow < 0 || b.curRow+dRow >= types.BoardSize {
		return
	}
	if b.curCol+dCol < 0 || b.curCol+dCol >= types.BoardSize {
		return
	}
	b.curRow += dRow
	b.curCol += dCol
}

// HideCursor hides the keyboard cursor.
func (b *ChessBoardUI) HideCursor() {
	b.curRow = -1
	b.curCol = -1
}

// ActivateCursor clicks the square under the keyboard cursor.
func (b *ChessBoardUI) ActivateCursor() {
	c := b.CursorSquare()
	if c == nil {
		return
	}
	if sq := b.square(*c); sq != nil {
		sq.Click()
	}
}

// SquareAt returns the square drawn at screen position x, y, or nil.
func (b *ChessBoardUI) SquareAt(x, y int) *Square {
	if len(b.squares) == 0 || x < b.originX || y < b.originY {
		return nil
	}
	return b.square(types.Coordinate{Row: y - b.originY, Col: (x - b.originX) / cellWidth})
}

func (b *ChessBoardUI) square(c types.Coordinate) *Square {
	if !c.InBounds() || len(b.squares) != types.BoardSize*types.BoardSize {
		return nil
	}
	return &b.squares[c.Row*types.BoardSize+c.Col]
}

func (b *ChessBoardUI) SetConfig(c *config.Config) {
	b.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.LightSquare), // 0
		tcell.PaletteColor(c.Theme.Colors.DarkSquare),  // 1
		tcell.PaletteColor(c.Theme.Colors.WhitePiece),  // 2
		tcell.PaletteColor(c.Theme.Colors.BlackPiece),  // 3
		tcell.PaletteColor(c.Theme.Colors.Marker),      // 4
		tcell.PaletteColor(c.Theme.Colors.CursorBG),    // 5
		tcell.PaletteColor(c.Theme.Colors.SelectedBG),  // 6
	}
	b.cfg = c
}

func (b *ChessBoardUI) drawSquare(s tcell.Screen, sq *Square) {
	bg := b.styles[0]
	if sq.Dark {
		bg = b.styles[1]
	}
	if b.selected != nil && *b.selected == sq.Coord {
		bg = b.styles[6]
	} else if sq.Coord.Row == b.curRow && sq.Coord.Col == b.curCol {
		bg = b.styles[5]
	}

	fg := b.styles[4]
	switch {
	case sq.Code.IsWhite():
		fg = b.styles[2]
	case sq.Code.IsBlack():
		fg = b.styles[3]
	}

	glyph := sq.Glyph
	if glyph == NoGlyph {
		glyph = ' '
	}
	style := tcell.StyleDefault.Background(bg).Foreground(fg)
	l := b.originX + sq.Coord.Col*cellWidth
	t := b.originY + sq.Coord.Row
	s.SetContent(l, t, ' ', nil, style)
	s.SetContent(l+1, t, glyph, nil, style)
	s.SetContent(l+2, t, ' ', nil, style)
}

// drawCoordinates labels ranks 8-1 on the left and files a-h below.
func (b *ChessBoardUI) drawCoordinates(s tcell.Screen) {
	style := tcell.StyleDefault.Foreground(MenuColors.Hint)
	for row := 0; row < types.BoardSize; row++ {
		s.SetContent(b.originX-2, b.originY+row, rune('8'-row), nil, style)
	}
	for col := 0; col < types.BoardSize; col++ {
		s.SetContent(b.originX+col*cellWidth+1, b.originY+types.BoardSize, rune('a'+col), nil, style)
	}
}
