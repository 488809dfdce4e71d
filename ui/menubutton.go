package ui

import (
	"github.com/gdamore/tcell/v2"
)

// MenuButton is a styled button with an optional hotkey.
type MenuButton struct {
	label    string
	hotkey   rune
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button. A zero hotkey means Enter only.
func NewMenuButton(label string, hotkey rune, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		hotkey:   hotkey,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// Press runs the button action.
func (b *MenuButton) Press() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

// HandleKey processes keyboard input. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	switch {
	case event.Key() == tcell.KeyEnter:
	case b.hotkey != 0 && event.Key() == tcell.KeyRune && event.Rune() == b.hotkey:
	default:
		return false
	}
	b.Press()
	return true
}

// Draw renders the button at the given position and returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.text()
	width := len([]rune(label)) + 2

	if b.focused {
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		drawText(screen, x+1, y, label, style)
		return width
	}

	dimStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	bracketStyle := tcell.StyleDefault.Foreground(MenuColors.Border).Background(MenuColors.CardBG)
	screen.SetContent(x, y, '[', nil, bracketStyle)
	col := drawText(screen, x+1, y, label, dimStyle)
	screen.SetContent(col, y, ']', nil, bracketStyle)
	return width
}

// Width returns the button width.
func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2
}

func (b *MenuButton) text() string {
	if b.hotkey == 0 {
		return b.label
	}
	return "▶ " + b.label + " (" + string(b.hotkey) + ")"
}
