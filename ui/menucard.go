package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a styled card container with rounded borders and a title row.
type MenuCard struct {
	*tview.Box
	title   string
	focused bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// SetTitleText replaces the card title.
func (c *MenuCard) SetTitleText(title string) {
	c.title = title
}

// Draw renders the card frame. Callers draw their content below BodyTop.
func (c *MenuCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	// ╭───╮ / │ │ / ╰───╯
	screen.SetContent(x, y, '╭', nil, borderStyle)
	screen.SetContent(x+width-1, y, '╮', nil, borderStyle)
	screen.SetContent(x, y+height-1, '╰', nil, borderStyle)
	screen.SetContent(x+width-1, y+height-1, '╯', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, borderStyle)
		screen.SetContent(col, y+height-1, '─', nil, borderStyle)
	}
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}

	if c.title == "" {
		return
	}
	titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)

	// ♞  Title, centered on the second row
	titleLen := len([]rune(c.title)) + 3
	titleX := x + (width-titleLen)/2
	screen.SetContent(titleX, y+1, '♞', nil, accentStyle)
	drawText(screen, titleX+3, y+1, c.title, titleStyle)
	c.DrawDivider(screen, y+2)
}

// BodyTop returns the first row below the title divider.
func (c *MenuCard) BodyTop() int {
	_, y, _, _ := c.GetInnerRect()
	if c.title == "" {
		return y + 1
	}
	return y + 3
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	x, _, width, _ := c.GetInnerRect()
	borderStyle := c.borderStyle()

	screen.SetContent(x, divY, '├', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, divY, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, divY, '┤', nil, borderStyle)
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}

func (c *MenuCard) borderStyle() tcell.Style {
	borderColor := MenuColors.Border
	if c.focused {
		borderColor = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)
}

// drawText writes s starting at x, y and returns the column after it.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
