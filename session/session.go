// Package session holds the interaction state of one connected game screen:
// the two-click move gesture, the fog perspective and the reconciliation of
// server answers with what is on screen.
//
// A Session is created when the game screen connects and torn down with
// Close when the screen goes away. All methods must be called on the UI loop.
package session

import (
	"context"
	"fmt"

	"termsuji-chess/engine"
	"termsuji-chess/logging"
	"termsuji-chess/types"
)

// BoardView draws the board and the selected-square marker.
type BoardView interface {
	// Render redraws every square from board.
	Render(board types.Board)
	// SetSelected moves the selection marker; nil removes it.
	SetSelected(c *types.Coordinate)
}

// OverlayView is the end-of-game banner.
type OverlayView interface {
	// ApplyOutcome shows the banner for a finished game and leaves it alone otherwise.
	ApplyOutcome(state types.GameState)
	Hide()
}

// StatusView shows secondary information next to the board.
type StatusView interface {
	SetFog(enabled bool)
	SetSnapshot(snap *types.Snapshot)
	SetLastMove(req types.MoveRequest, rejected bool)
	// SetError shows a failed request; nil clears it.
	SetError(err error)
}

// Views groups the widgets a session drives.
type Views struct {
	Board   BoardView
	Overlay OverlayView
	Status  StatusView
}

type Session struct {
	ID string

	server engine.GameServer
	views  Views
	disp   Dispatcher
	ctx    context.Context
	cancel context.CancelFunc

	selected *types.Coordinate
	fog      bool
	snapshot *types.Snapshot
	closed   bool

	// dispatched numbers every request that may replace the board.
	// Only the answer to the latest one is applied.
	dispatched uint64
}

// New creates a session. Nothing is fetched until RefreshBoard is called.
func New(id string, server engine.GameServer, views Views, disp Dispatcher, fog bool) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:     id,
		server: server,
		views:  views,
		disp:   disp,
		ctx:    ctx,
		cancel: cancel,
		fog:    fog,
	}
	views.Status.SetFog(fog)
	logging.Info("session %s: created fog=%v", id, fog)
	return s
}

// Close stops applying answers and aborts requests still in flight.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	logging.Info("session %s: closed", s.ID)
}

// Selected returns the pending source square, if any.
func (s *Session) Selected() (types.Coordinate, bool) {
	if s.selected == nil {
		return types.Coordinate{}, false
	}
	return *s.selected, true
}

// Fog returns true if the restricted perspective is active.
func (s *Session) Fog() bool {
	return s.fog
}

// Snapshot returns the snapshot currently on screen, or nil before the first load.
func (s *Session) Snapshot() *types.Snapshot {
	return s.snapshot
}

// SquareClicked advances the source-then-target gesture.
// The first click marks a source. The second click sends a move from that
// source to c, even when both squares are the same; the server decides.
func (s *Session) SquareClicked(c types.Coordinate) {
	if s.closed {
		return
	}
	if s.selected == nil {
		sel := c
		s.selected = &sel
		s.views.Board.SetSelected(&sel)
		logging.Trace("session %s: selected %s", s.ID, c.Algebraic())
		return
	}
	s.SubmitMove(types.MoveRequest{Source: *s.selected, Target: c, Fog: s.fog})
}

// CancelSelection drops a pending source square without sending anything.
func (s *Session) CancelSelection() {
	s.clearSelection()
}

// SetFog switches the perspective and refetches the board in it.
func (s *Session) SetFog(enabled bool) {
	if s.closed {
		return
	}
	s.fog = enabled
	s.views.Status.SetFog(enabled)
	logging.Debug("session %s: fog=%v", s.ID, enabled)
	s.RefreshBoard()
}

// ToggleFog flips the perspective.
func (s *Session) ToggleFog() {
	s.SetFog(!s.fog)
}

// RefreshBoard fetches the board for the current perspective.
// A failed fetch leaves the board as it is and reports the error.
func (s *Session) RefreshBoard() {
	if s.closed {
		return
	}
	seq := s.next()
	p := types.PerspectiveFor(s.fog)
	ctx := s.ctx
	s.disp.Go(func() {
		snap, err := s.server.FetchBoard(ctx, p)
		s.disp.Post(func() {
			if err != nil {
				s.fail(seq, "refresh board", err)
				return
			}
			s.apply(seq, snap)
		})
	})
}

// SubmitMove sends req and renders the board the server answers with.
// The selection is cleared as soon as the request is dispatched.
func (s *Session) SubmitMove(req types.MoveRequest) {
	if s.closed {
		return
	}
	s.clearSelection()
	seq := s.next()
	ctx := s.ctx
	logging.Info("session %s: move %s fog=%v", s.ID, req, req.Fog)
	s.disp.Go(func() {
		res, err := s.server.SubmitMove(ctx, req)
		s.disp.Post(func() {
			if err != nil {
				s.fail(seq, fmt.Sprintf("move %s", req), err)
				return
			}
			if s.apply(seq, &res.Snapshot) {
				s.views.Status.SetLastMove(req, res.Rejected())
			}
		})
	})
}

// ResetGame asks the server for a new game, then hides the banner and refetches.
func (s *Session) ResetGame() {
	if s.closed {
		return
	}
	// Answers to requests sent before the reset describe the old game.
	s.next()
	ctx := s.ctx
	logging.Info("session %s: reset", s.ID)
	s.disp.Go(func() {
		err := s.server.Reset(ctx)
		s.disp.Post(func() {
			if s.closed {
				return
			}
			if err != nil {
				logging.Warn("session %s: reset failed: %v", s.ID, err)
				s.views.Status.SetError(fmt.Errorf("reset: %w", err))
				return
			}
			s.views.Overlay.Hide()
			s.RefreshBoard()
		})
	})
}

func (s *Session) next() uint64 {
	s.dispatched++
	return s.dispatched
}

// apply shows snap if it answers the latest request. It reports whether it did.
func (s *Session) apply(seq uint64, snap *types.Snapshot) bool {
	if s.closed {
		return false
	}
	if seq != s.dispatched {
		logging.Debug("session %s: dropping stale answer %d, latest is %d", s.ID, seq, s.dispatched)
		return false
	}
	s.snapshot = snap
	s.views.Board.Render(snap.Board)
	s.clearSelection()
	s.views.Overlay.ApplyOutcome(snap.GameState)
	s.views.Status.SetSnapshot(snap)
	s.views.Status.SetError(nil)
	return true
}

func (s *Session) fail(seq uint64, op string, err error) {
	if s.closed {
		return
	}
	logging.Warn("session %s: %s failed: %v", s.ID, op, err)
	if seq != s.dispatched {
		return
	}
	s.views.Status.SetError(fmt.Errorf("%s: %w", op, err))
}

func (s *Session) clearSelection() {
	if s.selected == nil {
		return
	}
	s.selected = nil
	s.views.Board.SetSelected(nil)
}
