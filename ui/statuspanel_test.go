package ui

import (
	"errors"
	"strings"
	"testing"

	"termsuji-chess/types"
)

func TestStatusPanel(t *testing.T) {
	p := NewStatusPanel("http://127.0.0.1:5000")
	if !strings.Contains(p.Text(), "View: audience") {
		t.Errorf("initial text should show audience view:\n%s", p.Text())
	}

	p.SetFog(true)
	if !strings.Contains(p.Text(), "View: fog of war") {
		t.Errorf("text should show fog view:\n%s", p.Text())
	}

	p.SetSnapshot(&types.Snapshot{Board: types.InitialBoard(), GameState: types.Unfinished, Turn: "white"})
	if !strings.Contains(p.Text(), "To move: white") {
		t.Errorf("text should show side to move:\n%s", p.Text())
	}

	req := types.MoveRequest{Source: types.Coordinate{Row: 6, Col: 4}, Target: types.Coordinate{Row: 4, Col: 4}}
	p.SetLastMove(req, true)
	if !strings.Contains(p.Text(), "e2-e4") || !strings.Contains(p.Text(), "rejected") {
		t.Errorf("text should show the rejected move:\n%s", p.Text())
	}

	p.SetError(errors.New("refresh board: connection refused"))
	if !strings.Contains(p.Text(), "connection refused") || !strings.Contains(p.Text(), "retry") {
		t.Errorf("text should show the error and retry hint:\n%s", p.Text())
	}

	p.SetError(nil)
	if strings.Contains(p.Text(), "connection refused") {
		t.Errorf("error should be cleared:\n%s", p.Text())
	}
}
