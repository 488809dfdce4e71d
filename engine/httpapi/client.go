// Package httpapi implements engine.GameServer over the chess server's JSON API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"termsuji-chess/engine"
	"termsuji-chess/logging"
	"termsuji-chess/types"
)

const (
	boardPath = "/get_board"
	movePath  = "/move"
	resetPath = "/reset"

	// SessionHeader identifies the client session on every request.
	SessionHeader = "X-Client-Session"

	maxBodyBytes = 1 << 20
)

// Client talks to a chess server over HTTP.
type Client struct {
	baseURL   string
	sessionID string
	http      *http.Client
}

var _ engine.GameServer = (*Client)(nil)

// NewClient creates a client for the server at baseURL.
// A zero timeout leaves requests unbounded.
func NewClient(baseURL, sessionID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionID: sessionID,
		http:      &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchBoard issues GET /get_board with the given perspective.
func (c *Client) FetchBoard(ctx context.Context, p types.Perspective) (*types.Snapshot, error) {
	path := boardPath
	if p != "" {
		path += "?" + url.Values{"perspective": {string(p)}}.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var snap types.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	logging.Debug("FetchBoard: perspective=%s state=%s pieces=%d", p, snap.GameState, snap.Board.PieceCount())
	return &snap, nil
}

// SubmitMove issues POST /move and decodes the board the server answers with.
func (c *Client) SubmitMove(ctx context.Context, req types.MoveRequest) (*types.MoveResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode move: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, movePath, payload)
	if err != nil {
		return nil, err
	}

	var ack struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("decode move result: %w", err)
	}
	result := &types.MoveResult{Success: ack.Success}
	if err := json.Unmarshal(body, &result.Snapshot); err != nil {
		return nil, fmt.Errorf("decode move result: %w", err)
	}
	logging.Debug("SubmitMove: %s fog=%v rejected=%v state=%s", req, req.Fog, result.Rejected(), result.Snapshot.GameState)
	return result, nil
}

// Reset issues POST /reset. Any 2xx answer counts as success; the body is ignored.
func (c *Client) Reset(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, resetPath, nil)
	if err != nil {
		return err
	}
	logging.Info("Reset: server started a new game")
	return nil
}

// do sends one request and returns the response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	logging.Trace("do: %s %s", method, path)

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionID != "" {
		req.Header.Set(SessionHeader, c.sessionID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.Warn("do: %s %s failed: %v", method, path, err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Warn("do: %s %s returned HTTP %d", method, path, resp.StatusCode)
		return nil, &engine.StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	return body, nil
}
