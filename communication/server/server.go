package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"othello/communication"
	"othello/game"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type handler struct {
	comm communication.Communicator
}

// New serves a match service over HTTP. Every endpoint is a POST whose
// arguments travel as query parameters.
func New(comm communication.Communicator) http.Handler {
	h := &handler{comm: comm}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/game/game_info", h.gameInfo)
	r.Route("/player", func(r chi.Router) {
		r.Post("/new_player", h.join)
		r.Post("/match_info", h.matchInfo)
		r.Post("/turn_to_move", h.turnInfo)
		r.Post("/move", h.move)
	})
	return r
}

func (h *handler) join(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	info, err := h.comm.Join(r.Context(), q.Get("session_name"), q.Get("player_name"))
	respond(w, r, info, err)
}

func (h *handler) gameInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.comm.GameInfo(r.Context(), r.URL.Query().Get("session_name"))
	respond(w, r, info, err)
}

func (h *handler) matchInfo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	info, err := h.comm.MatchInfo(r.Context(), q.Get("session_name"), q.Get("player_name"))
	respond(w, r, info, err)
}

func (h *handler) turnInfo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	info, err := h.comm.TurnInfo(r.Context(), q.Get("session_name"), q.Get("player_name"), q.Get("match_id"))
	respond(w, r, info, err)
}

func (h *handler) move(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	row, err := strconv.Atoi(q.Get("row"))
	if err != nil {
		respond(w, r, nil, fmt.Errorf("%w: row %q", game.ErrInvalidCoordinate, q.Get("row")))
		return
	}
	col, err := strconv.Atoi(q.Get("col"))
	if err != nil {
		respond(w, r, nil, fmt.Errorf("%w: col %q", game.ErrInvalidCoordinate, q.Get("col")))
		return
	}
	res, err := h.comm.Move(r.Context(), q.Get("session_name"), q.Get("player_name"), q.Get("match_id"), row, col)
	respond(w, r, res, err)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, communication.ErrUnknownSession),
		errors.Is(err, communication.ErrUnknownPlayer),
		errors.Is(err, communication.ErrUnknownMatch):
		return http.StatusNotFound
	case errors.Is(err, communication.ErrSessionFull),
		errors.Is(err, communication.ErrNotYourTurn),
		errors.Is(err, communication.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrInvalidCoordinate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respond writes data, or the error as a status/message body.
func respond(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err != nil {
		status := statusOf(err)
		log.Debug().Err(err).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Msg("request rejected")
		data = communication.MoveResult{Status: status, Message: err.Error(), Code: communication.ErrorCode(err)}
		writeJSON(w, status, data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
