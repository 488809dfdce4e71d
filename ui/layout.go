package ui

import (
	"github.com/rivo/tview"

	"termsuji-chess/types"
)

const panelWidth = 26

// boardSize returns the screen size of a drawn board including labels.
func boardSize(board *ChessBoardUI) (int, int) {
	w, h := types.BoardSize*cellWidth, types.BoardSize
	if board.cfg.Theme.DrawCoordinates {
		w += labelWidth
		h++
	}
	return w, h
}

// BuildNormalLayout fills gameFrame with the board and the status panel.
func BuildNormalLayout(gameFrame *tview.Flex, board *ChessBoardUI, panel *StatusPanel) {
	gameFrame.Clear()

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(panel.Box(), panelWidth, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
}

// BuildFocusLayout fills gameFrame with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *ChessBoardUI) {
	gameFrame.Clear()
	w, h := boardSize(board)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, w, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)
	gameFrame.AddItem(centerRow, h, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}

// CreateCenteredForm centers form horizontally with the given maximum width.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}
