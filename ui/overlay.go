package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsuji-chess/types"
)

const (
	overlayWidth  = 34
	overlayHeight = 9
)

// OverlayUI is the end-of-game banner. It stays up until Hide is called,
// which only happens when a new game starts.
type OverlayUI struct {
	*MenuCard
	text         string
	visible      bool
	button       *MenuButton
	onVisibility func(bool)
}

// NewOverlay creates a hidden overlay. onNewGame runs when the player asks
// for a new game from the banner.
func NewOverlay(onNewGame func()) *OverlayUI {
	o := &OverlayUI{
		MenuCard: NewMenuCard("Game Over"),
		button:   NewMenuButton("New game", 'n', onNewGame),
	}
	o.button.SetFocused(true)
	o.MenuCard.SetFocused(true)
	return o
}

// SetVisibilityFunc sets the function that shows or hides the overlay on screen.
func (o *OverlayUI) SetVisibilityFunc(fn func(visible bool)) {
	o.onVisibility = fn
}

// ApplyOutcome shows the banner for a won game. An unfinished game leaves
// the overlay as it is.
func (o *OverlayUI) ApplyOutcome(state types.GameState) {
	text, over := state.Banner()
	if !over {
		return
	}
	o.text = text
	o.setVisible(true)
}

// Hide hides the banner.
func (o *OverlayUI) Hide() {
	o.setVisible(false)
}

// Visible returns true if the banner is shown.
func (o *OverlayUI) Visible() bool {
	return o.visible
}

// Text returns the banner text.
func (o *OverlayUI) Text() string {
	return o.text
}

func (o *OverlayUI) setVisible(visible bool) {
	o.visible = visible
	if o.onVisibility != nil {
		o.onVisibility(visible)
	}
}

// Draw renders the card, the banner text and the new game button.
func (o *OverlayUI) Draw(screen tcell.Screen) {
	o.MenuCard.Draw(screen)
	x, _, width, _ := o.GetInnerRect()
	top := o.BodyTop()

	textStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
	drawText(screen, x+(width-len([]rune(o.text)))/2, top+1, o.text, textStyle)
	o.button.Draw(screen, x+(width-o.button.Width())/2, top+3)
}

// InputHandler forwards Enter and the hotkey to the new game button.
func (o *OverlayUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return o.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		o.button.HandleKey(event)
	})
}

// Centered wraps the overlay in spacers so it floats in the middle of a page.
func (o *OverlayUI) Centered() *tview.Flex {
	row := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(o, overlayWidth, 0, true).
		AddItem(nil, 0, 1, false)
	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(row, overlayHeight, 0, true).
		AddItem(nil, 0, 1, false)
}
