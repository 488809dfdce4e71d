// Package engine defines the interface to the remote chess server.
package engine

import (
	"context"
	"fmt"

	"termsuji-chess/types"
)

// GameServer is the authority that owns the game. The client never
// validates moves itself; every board it shows comes from here.
type GameServer interface {
	// FetchBoard returns the current snapshot seen from the given perspective.
	FetchBoard(ctx context.Context, p types.Perspective) (*types.Snapshot, error)

	// SubmitMove sends a move and returns the board after the server handled it.
	// A rejected move is not an error; the returned board is simply unchanged.
	SubmitMove(ctx context.Context, req types.MoveRequest) (*types.MoveResult, error)

	// Reset starts a fresh game on the server.
	Reset(ctx context.Context) error
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: server returned HTTP %d", e.Method, e.Path, e.Code)
}
