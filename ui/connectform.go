package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ConnectOptions is what the connect screen collects.
type ConnectOptions struct {
	ServerURL string
	Fog       bool
}

// ConnectFormUI provides the start screen form for choosing a server.
type ConnectFormUI struct {
	form    *tview.Form
	flex    *tview.Flex
	status  *tview.TextView
	options ConnectOptions
}

// NewConnectForm creates the connect form. onConnect receives the chosen
// options; onQuit leaves the application.
func NewConnectForm(initial ConnectOptions, onConnect func(ConnectOptions) error, onQuit func()) *ConnectFormUI {
	setup := &ConnectFormUI{options: initial}

	form := tview.NewForm()
	form.AddInputField("Server", initial.ServerURL, 40, nil, func(text string) {
		setup.options.ServerURL = strings.TrimSpace(text)
	})
	form.AddCheckbox("Fog of war", initial.Fog, func(checked bool) {
		setup.options.Fog = checked
	})

	form.AddButton("Connect", func() {
		setup.submit(onConnect)
	})
	form.AddButton("Quit", func() {
		onQuit()
	})

	form.SetBorder(true)
	form.SetTitle(" Connect ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	setup.status = tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Space: toggle  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	setup.status.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(setup.status, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Options returns the values currently entered.
func (s *ConnectFormUI) Options() ConnectOptions {
	return s.options
}

// Flex returns the flex container with form and help text.
func (s *ConnectFormUI) Flex() *tview.Flex {
	return s.flex
}

// ShowError replaces the help line with an error message.
func (s *ConnectFormUI) ShowError(err error) {
	s.status.SetTextColor(MenuColors.Error)
	s.status.SetText(err.Error())
}

func (s *ConnectFormUI) submit(onConnect func(ConnectOptions) error) {
	if err := onConnect(s.options); err != nil {
		s.ShowError(err)
	}
}
