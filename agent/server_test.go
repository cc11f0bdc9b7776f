package agent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"othello/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func postDecide(t *testing.T, srv *httptest.Server, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/decide", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer(t *testing.T) {
	srv := httptest.NewServer(NewServer(New(WithSeed(11))))
	defer srv.Close()

	t.Run("decides an opening move", func(t *testing.T) {
		resp := postDecide(t, srv, DecideRequest{Board: game.NewBoard().Cells(), Symbol: int(game.Black)})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got DecideResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.False(t, got.Pass)
		require.Equal(t, SourceOpening, got.Source)
		require.Contains(t, DefaultOpeningMoves(), game.Move{Row: got.Row, Col: got.Col})
	})

	t.Run("reports a pass", func(t *testing.T) {
		var b game.Board
		b[0][1] = game.Black
		b[0][0] = game.White
		resp := postDecide(t, srv, DecideRequest{Board: b.Cells(), Symbol: int(game.Black)})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got DecideResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.True(t, got.Pass)
		require.Equal(t, SourceNone, got.Source)
	})

	t.Run("rejects a malformed board", func(t *testing.T) {
		resp := postDecide(t, srv, DecideRequest{Board: [][]int{{1, 2, 3}}, Symbol: 1})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects an invalid symbol", func(t *testing.T) {
		resp := postDecide(t, srv, DecideRequest{Board: game.NewBoard().Cells(), Symbol: 5})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/decide", "application/json", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
