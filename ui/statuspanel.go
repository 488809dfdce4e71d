package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"termsuji-chess/types"
)

// StatusPanel displays game information and key help alongside the board.
type StatusPanel struct {
	box      *tview.TextView
	server   string
	fog      bool
	snap     *types.Snapshot
	lastMove *types.MoveRequest
	rejected bool
	err      error
}

// NewStatusPanel creates a new status panel for the given server address.
func NewStatusPanel(server string) *StatusPanel {
	panel := &StatusPanel{
		box:    tview.NewTextView(),
		server: server,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)
	panel.refresh()

	return panel
}

// Box returns the underlying tview component.
func (p *StatusPanel) Box() *tview.TextView {
	return p.box
}

// SetServer updates the server line.
func (p *StatusPanel) SetServer(server string) {
	p.server = server
	p.refresh()
}

// SetFog updates the perspective line.
func (p *StatusPanel) SetFog(enabled bool) {
	p.fog = enabled
	p.refresh()
}

// SetSnapshot updates the panel with the board on screen.
func (p *StatusPanel) SetSnapshot(snap *types.Snapshot) {
	p.snap = snap
	p.refresh()
}

// SetLastMove records the most recent move the server answered.
func (p *StatusPanel) SetLastMove(req types.MoveRequest, rejected bool) {
	p.lastMove = &req
	p.rejected = rejected
	p.refresh()
}

// SetError shows a failed request; nil clears it.
func (p *StatusPanel) SetError(err error) {
	p.err = err
	p.refresh()
}

// Text returns the panel text without color tags.
func (p *StatusPanel) Text() string {
	return p.box.GetText(true)
}

func (p *StatusPanel) refresh() {
	var text strings.Builder

	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	text.WriteString(fmt.Sprintf("[white]Server:[-:-:-] %s\n", tview.Escape(p.server)))

	view := "audience"
	if p.fog {
		view = "[yellow]fog of war[-]"
	}
	text.WriteString(fmt.Sprintf("[white]View:[-:-:-] %s\n", view))

	if p.snap != nil {
		if p.snap.Turn != "" {
			text.WriteString(fmt.Sprintf("[white]To move:[-:-:-] %s\n", tview.Escape(p.snap.Turn)))
		}
		state := "in progress"
		if banner, over := p.snap.GameState.Banner(); over {
			state = banner
		}
		text.WriteString(fmt.Sprintf("[white]State:[-:-:-] %s\n", state))
	}

	if p.lastMove != nil {
		mark := "[green]✓[-]"
		if p.rejected {
			mark = "[red]✗ rejected[-]"
		}
		text.WriteString(fmt.Sprintf("[white]Last:[-:-:-] %s %s\n", p.lastMove, mark))
	}

	if p.err != nil {
		text.WriteString("\n[red::b]Connection problem[-:-:-]\n")
		text.WriteString(fmt.Sprintf("[red]%s[-]\n", tview.Escape(p.err.Error())))
		text.WriteString("[dimgray]r · retry[-]\n")
	}

	text.WriteString(`
[dimgray]──────────────────────[-:-:-]
[dimgray]hjkl/↑↓←→ move
⏎/space select
v fog   r refresh
n new game
q cancel / quit[-]`)

	p.box.SetText(text.String())
}
