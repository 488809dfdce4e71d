package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsuji-chess/types"
)

// fakeServer is an in-memory engine.GameServer.
type fakeServer struct {
	mu sync.Mutex

	board types.Board
	state types.GameState

	fetches  []types.Perspective
	moves    []types.MoveRequest
	resets   int
	fetchErr error
	moveErr  error
	resetErr error
	reject   bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{board: types.InitialBoard(), state: types.Unfinished}
}

func (f *fakeServer) FetchBoard(ctx context.Context, p types.Perspective) (*types.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, p)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	board := f.board
	if p == types.PerspectiveCurrent {
		// Hide the top half, as a fogged view would.
		for r := 0; r < 4; r++ {
			for c := range board[r] {
				board[r][c] = types.Hidden
			}
		}
	}
	return &types.Snapshot{Board: board, GameState: f.state}, nil
}

func (f *fakeServer) SubmitMove(ctx context.Context, req types.MoveRequest) (*types.MoveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, req)
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	ok := !f.reject
	if ok {
		f.board[req.Target.Row][req.Target.Col] = f.board[req.Source.Row][req.Source.Col]
		f.board[req.Source.Row][req.Source.Col] = types.Hidden
	}
	return &types.MoveResult{Success: &ok, Snapshot: types.Snapshot{Board: f.board, GameState: f.state}}, nil
}

func (f *fakeServer) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	if f.resetErr != nil {
		return f.resetErr
	}
	f.board = types.InitialBoard()
	f.state = types.Unfinished
	return nil
}

type fakeBoard struct {
	renders  []types.Board
	selected *types.Coordinate
	markers  int // SetSelected calls with a square
}

func (b *fakeBoard) Render(board types.Board) {
	b.renders = append(b.renders, board)
}

func (b *fakeBoard) SetSelected(c *types.Coordinate) {
	if c != nil {
		b.markers++
		sel := *c
		b.selected = &sel
		return
	}
	b.selected = nil
}

type fakeOverlay struct {
	visible bool
	text    string
	hides   int
}

func (o *fakeOverlay) ApplyOutcome(state types.GameState) {
	if text, over := state.Banner(); over {
		o.text = text
		o.visible = true
	}
}

func (o *fakeOverlay) Hide() {
	o.hides++
	o.visible = false
}

type fakeStatus struct {
	fog      bool
	snap     *types.Snapshot
	lastMove *types.MoveRequest
	rejected bool
	err      error
}

func (s *fakeStatus) SetFog(enabled bool) { s.fog = enabled }
func (s *fakeStatus) SetSnapshot(snap *types.Snapshot) { s.snap = snap }
func (s *fakeStatus) SetError(err error) { s.err = err }
func (s *fakeStatus) SetLastMove(req types.MoveRequest, rejected bool) {
	s.lastMove = &req
	s.rejected = rejected
}

// queueDispatcher holds work and completions until the test releases them.
type queueDispatcher struct {
	work  []func()
	posts []func()
}

func (q *queueDispatcher) Go(work func()) { q.work = append(q.work, work) }
func (q *queueDispatcher) Post(fn func()) { q.posts = append(q.posts, fn) }

// finish runs the i-th queued request and delivers its completion.
func (q *queueDispatcher) finish(i int) {
	q.work[i]()
	posts := q.posts
	q.posts = nil
	for _, fn := range posts {
		fn()
	}
}

type harness struct {
	server  *fakeServer
	board   *fakeBoard
	overlay *fakeOverlay
	status  *fakeStatus
	sess    *Session
}

func newHarness(t *testing.T, disp Dispatcher, fog bool) *harness {
	t.Helper()
	h := &harness{
		server:  newFakeServer(),
		board:   &fakeBoard{},
		overlay: &fakeOverlay{},
		status:  &fakeStatus{},
	}
	h.sess = New("test-session", h.server, Views{Board: h.board, Overlay: h.overlay, Status: h.status}, disp, fog)
	t.Cleanup(h.sess.Close)
	return h
}

func TestFreshLoad(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.sess.RefreshBoard()

	require.Len(t, h.board.renders, 1)
	assert.Equal(t, 32, h.board.renders[0].PieceCount())
	assert.Equal(t, []types.Perspective{types.PerspectiveAudience}, h.server.fetches)
	assert.False(t, h.overlay.visible)
	require.NotNil(t, h.sess.Snapshot())
	assert.Equal(t, types.Unfinished, h.sess.Snapshot().GameState)
}

func TestFirstClickSelects(t *testing.T) {
	for _, c := range []types.Coordinate{{Row: 0, Col: 0}, {Row: 6, Col: 4}, {Row: 7, Col: 7}} {
		h := newHarness(t, Inline{}, false)
		h.sess.SquareClicked(c)

		sel, ok := h.sess.Selected()
		assert.True(t, ok)
		assert.Equal(t, c, sel)
		assert.Equal(t, 1, h.board.markers)
		require.NotNil(t, h.board.selected)
		assert.Equal(t, c, *h.board.selected)
		assert.Empty(t, h.server.fetches)
		assert.Empty(t, h.server.moves)
	}
}

func TestTwoClicksSubmitOneMove(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.sess.RefreshBoard()

	h.sess.SquareClicked(types.Coordinate{Row: 6, Col: 4})
	h.sess.SquareClicked(types.Coordinate{Row: 4, Col: 4})

	require.Len(t, h.server.moves, 1)
	assert.Equal(t, types.MoveRequest{
		Source: types.Coordinate{Row: 6, Col: 4},
		Target: types.Coordinate{Row: 4, Col: 4},
		Fog:    false,
	}, h.server.moves[0])

	_, ok := h.sess.Selected()
	assert.False(t, ok)
	assert.Nil(t, h.board.selected)

	// The move answer is rendered directly; no second fetch.
	assert.Len(t, h.server.fetches, 1)
	last := h.board.renders[len(h.board.renders)-1]
	assert.Equal(t, types.WhitePawn, last[4][4])
	assert.Equal(t, types.Hidden, last[6][4])

	require.NotNil(t, h.status.lastMove)
	assert.Equal(t, "e2-e4", h.status.lastMove.String())
	assert.False(t, h.status.rejected)
}

func TestSelfTargetIsForwarded(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.server.reject = true

	c := types.Coordinate{Row: 3, Col: 3}
	h.sess.SquareClicked(c)
	h.sess.SquareClicked(c)

	require.Len(t, h.server.moves, 1)
	assert.Equal(t, c, h.server.moves[0].Source)
	assert.Equal(t, c, h.server.moves[0].Target)
	_, ok := h.sess.Selected()
	assert.False(t, ok)
	assert.True(t, h.status.rejected)
	assert.Equal(t, types.InitialBoard(), h.board.renders[len(h.board.renders)-1])
}

func TestSelectionClearedBeforeAnswer(t *testing.T) {
	q := &queueDispatcher{}
	h := newHarness(t, q, false)

	h.sess.SquareClicked(types.Coordinate{Row: 6, Col: 0})
	h.sess.SquareClicked(types.Coordinate{Row: 5, Col: 0})

	// The request has not run yet but the gesture is already over.
	_, ok := h.sess.Selected()
	assert.False(t, ok)
	assert.Nil(t, h.board.selected)
	require.Len(t, q.work, 1)

	q.finish(0)
	require.Len(t, h.server.moves, 1)
}

func TestMoveCarriesFogFlag(t *testing.T) {
	h := newHarness(t, Inline{}, true)
	h.sess.SquareClicked(types.Coordinate{Row: 6, Col: 4})
	h.sess.SquareClicked(types.Coordinate{Row: 5, Col: 4})

	require.Len(t, h.server.moves, 1)
	assert.True(t, h.server.moves[0].Fog)
}

func TestToggleFogRefetches(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	assert.False(t, h.status.fog)

	h.sess.SetFog(true)
	assert.True(t, h.sess.Fog())
	assert.True(t, h.status.fog)
	assert.Equal(t, []types.Perspective{types.PerspectiveCurrent}, h.server.fetches)
	assert.Equal(t, types.Hidden, h.board.renders[0][0][0])

	h.sess.ToggleFog()
	assert.False(t, h.sess.Fog())
	assert.Equal(t, []types.Perspective{types.PerspectiveCurrent, types.PerspectiveAudience}, h.server.fetches)
	assert.Equal(t, types.BlackRook, h.board.renders[1][0][0])
}

func TestLoadClearsPendingSelection(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.sess.SquareClicked(types.Coordinate{Row: 6, Col: 4})
	h.sess.RefreshBoard()

	_, ok := h.sess.Selected()
	assert.False(t, ok)
	assert.Nil(t, h.board.selected)
	assert.Empty(t, h.server.moves)
}

func TestCancelSelection(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.sess.SquareClicked(types.Coordinate{Row: 1, Col: 1})
	h.sess.CancelSelection()

	_, ok := h.sess.Selected()
	assert.False(t, ok)
	assert.Nil(t, h.board.selected)

	// Next click starts a new gesture instead of completing the old one.
	h.sess.SquareClicked(types.Coordinate{Row: 2, Col: 2})
	assert.Empty(t, h.server.moves)
}

func TestOverlayOutcome(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.server.state = types.WhiteWon
	h.sess.RefreshBoard()

	assert.True(t, h.overlay.visible)
	assert.Contains(t, h.overlay.text, "White")

	// An unfinished snapshot does not hide the banner.
	h.server.state = types.Unfinished
	h.sess.RefreshBoard()
	assert.True(t, h.overlay.visible)
	assert.Zero(t, h.overlay.hides)
}

func TestResetHidesOverlayAndRefetches(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.server.state = types.BlackWon
	h.sess.RefreshBoard()
	require.True(t, h.overlay.visible)

	h.sess.ResetGame()

	assert.Equal(t, 1, h.server.resets)
	assert.False(t, h.overlay.visible)
	assert.Equal(t, 1, h.overlay.hides)
	require.Len(t, h.board.renders, 2)
	assert.Equal(t, types.InitialBoard(), h.board.renders[1])
	assert.Equal(t, types.Unfinished, h.sess.Snapshot().GameState)
}

func TestResetFailureKeepsOverlay(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.server.state = types.WhiteWon
	h.sess.RefreshBoard()

	h.server.resetErr = errors.New("connection refused")
	h.sess.ResetGame()

	assert.True(t, h.overlay.visible)
	assert.Zero(t, h.overlay.hides)
	require.Error(t, h.status.err)
	assert.Len(t, h.server.fetches, 1)
}

func TestFetchFailureKeepsBoard(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.sess.RefreshBoard()
	require.Len(t, h.board.renders, 1)

	boom := errors.New("connection reset")
	h.server.fetchErr = boom
	h.sess.RefreshBoard()

	assert.Len(t, h.board.renders, 1)
	assert.ErrorIs(t, h.status.err, boom)
	assert.Equal(t, types.InitialBoard(), h.sess.Snapshot().Board)

	// A later success clears the error.
	h.server.fetchErr = nil
	h.sess.RefreshBoard()
	assert.NoError(t, h.status.err)
	assert.Len(t, h.board.renders, 2)
}

func TestMoveFailureKeepsBoard(t *testing.T) {
	h := newHarness(t, Inline{}, false)
	h.sess.RefreshBoard()
	h.server.moveErr = errors.New("timeout")

	h.sess.SquareClicked(types.Coordinate{Row: 6, Col: 4})
	h.sess.SquareClicked(types.Coordinate{Row: 4, Col: 4})

	assert.Len(t, h.board.renders, 1)
	assert.Error(t, h.status.err)
	assert.Nil(t, h.status.lastMove)
	_, ok := h.sess.Selected()
	assert.False(t, ok)
}

func TestStaleAnswersAreDropped(t *testing.T) {
	q := &queueDispatcher{}
	h := newHarness(t, q, false)

	h.sess.RefreshBoard() // audience, seq 1
	h.sess.SetFog(true)   // current, seq 2
	require.Len(t, q.work, 2)

	// The newer request answers first.
	q.finish(1)
	require.Len(t, h.board.renders, 1)
	assert.Equal(t, types.Hidden, h.board.renders[0][0][0])

	// The older answer arrives late and must not overwrite it.
	q.finish(0)
	assert.Len(t, h.board.renders, 1)
	assert.Equal(t, types.Hidden, h.sess.Snapshot().Board[0][0])
}

func TestStaleFailureIsNotReported(t *testing.T) {
	q := &queueDispatcher{}
	h := newHarness(t, q, false)

	h.server.fetchErr = errors.New("down")
	h.sess.RefreshBoard() // seq 1
	q.finish(0)

	// The failing request was the latest one, so it is reported.
	assert.Error(t, h.status.err)

	h.status.err = nil
	h.server.fetchErr = errors.New("down again")
	h.sess.RefreshBoard() // seq 2
	h.sess.RefreshBoard() // seq 3
	q.finish(1)
	assert.NoError(t, h.status.err)
}

func TestAnswersBeforeResetAreDropped(t *testing.T) {
	q := &queueDispatcher{}
	h := newHarness(t, q, false)
	h.server.state = types.WhiteWon

	h.sess.RefreshBoard()
	h.sess.ResetGame()

	q.finish(0) // pre-reset board arrives after the reset was sent
	assert.Empty(t, h.board.renders)
	assert.False(t, h.overlay.visible)

	q.finish(1) // reset completes and queues a refresh
	require.Len(t, q.work, 3)
	q.finish(2)
	require.Len(t, h.board.renders, 1)
	assert.Equal(t, types.Unfinished, h.sess.Snapshot().GameState)
}

func TestCloseIgnoresLateAnswers(t *testing.T) {
	q := &queueDispatcher{}
	h := newHarness(t, q, false)

	h.sess.RefreshBoard()
	h.sess.Close()
	q.finish(0)

	assert.Empty(t, h.board.renders)
	h.sess.SquareClicked(types.Coordinate{Row: 0, Col: 0})
	assert.Nil(t, h.board.selected)
}
