package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"othello/communication"
	"strconv"
	"strings"
	"time"
)

// HTTPClient talks to a match service over HTTP.
type HTTPClient struct {
	serverURL string
	http      *http.Client
}

func NewHTTPClient(serverURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: timeout},
	}
}

// StatusError is a request the service rejected. It unwraps to the
// communication or game error the service reported, when it named one.
type StatusError struct {
	Path    string
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Path, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// post sends params as a query string and decodes the JSON reply into out.
// Transport failures and server errors wrap communication.ErrUnavailable.
func (c *HTTPClient) post(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.serverURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s: %v", communication.ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body communication.MoveResult
		_ = json.NewDecoder(resp.Body).Decode(&body)
		statusErr := &StatusError{
			Path:    path,
			Code:    resp.StatusCode,
			Message: body.Message,
			Err:     communication.CodeError(body.Code),
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %w", communication.ErrUnavailable, statusErr)
		}
		return statusErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Join(ctx context.Context, session, player string) (communication.JoinInfo, error) {
	var info communication.JoinInfo
	err := c.post(ctx, "/player/new_player", url.Values{
		"session_name": {session},
		"player_name":  {player},
	}, &info)
	return info, err
}

func (c *HTTPClient) GameInfo(ctx context.Context, session string) (communication.GameInfo, error) {
	var info communication.GameInfo
	err := c.post(ctx, "/game/game_info", url.Values{"session_name": {session}}, &info)
	return info, err
}

func (c *HTTPClient) MatchInfo(ctx context.Context, session, player string) (communication.MatchInfo, error) {
	var info communication.MatchInfo
	err := c.post(ctx, "/player/match_info", url.Values{
		"session_name": {session},
		"player_name":  {player},
	}, &info)
	return info, err
}

func (c *HTTPClient) TurnInfo(ctx context.Context, session, player, match string) (communication.TurnInfo, error) {
	var info communication.TurnInfo
	err := c.post(ctx, "/player/turn_to_move", url.Values{
		"session_name": {session},
		"player_name":  {player},
		"match_id":     {match},
	}, &info)
	return info, err
}

func (c *HTTPClient) Move(ctx context.Context, session, player, match string, row, col int) (communication.MoveResult, error) {
	var res communication.MoveResult
	err := c.post(ctx, "/player/move", url.Values{
		"session_name": {session},
		"player_name":  {player},
		"match_id":     {match},
		"row":          {strconv.Itoa(row)},
		"col":          {strconv.Itoa(col)},
	}, &res)
	return res, err
}
