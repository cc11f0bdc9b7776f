package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"othello/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type DecideRequest struct {
	Board  [][]int `json:"board"`
	Symbol int     `json:"symbol"`
}

type DecideResponse struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Pass   bool    `json:"pass"`
	Source Source  `json:"source"`
	Score  float64 `json:"score"`
	Depth  int     `json:"depth"`
}

// NewServer exposes an agent over HTTP at POST /decide.
func NewServer(a Agent) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/decide", func(w http.ResponseWriter, r *http.Request) {
		handleDecide(a, w, r)
	})
	return r
}

func handleDecide(a Agent, w http.ResponseWriter, r *http.Request) {
	var payload DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	b, err := game.ParseBoard(payload.Board)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	side, err := game.ParseSide(payload.Symbol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	decision, err := a.FindMove(r.Context(), b, side)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, game.ErrInvalidSide) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	log.Debug().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("side", side.String()).
		Str("source", string(decision.Source)).
		Stringer("move", decision.Move).
		Msg("decision served")
	writeJSON(w, http.StatusOK, DecideResponse{
		Row:    decision.Move.Row,
		Col:    decision.Move.Col,
		Pass:   !decision.Found,
		Source: decision.Source,
		Score:  decision.Score,
		Depth:  decision.Depth,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
