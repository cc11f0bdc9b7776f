package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"othello/agent"
	"othello/game"
	"strings"
	"time"
)

// RemoteAgent asks a decision server for moves.
type RemoteAgent struct {
	URL    string
	client *http.Client
}

func NewRemoteAgent(url string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{
		URL:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (r *RemoteAgent) FindMove(ctx context.Context, b game.Board, side game.Side) (agent.Decision, error) {
	body, err := json.Marshal(agent.DecideRequest{Board: b.Cells(), Symbol: int(side)})
	if err != nil {
		return agent.Decision{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL+"/decide", bytes.NewReader(body))
	if err != nil {
		return agent.Decision{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return agent.Decision{}, fmt.Errorf("remote agent %s: %w", r.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return agent.Decision{}, fmt.Errorf("remote agent %s returned status %d: %s", r.URL, resp.StatusCode, bytes.TrimSpace(out))
	}

	var payload agent.DecideResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return agent.Decision{}, fmt.Errorf("remote agent %s: decode: %w", r.URL, err)
	}
	return agent.Decision{
		Move:   game.Move{Row: payload.Row, Col: payload.Col},
		Found:  !payload.Pass,
		Source: payload.Source,
		Score:  payload.Score,
		Depth:  payload.Depth,
	}, nil
}
