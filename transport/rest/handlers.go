package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/entity"
	"github.com/kiselevME/tictactoe-bot/internal/pkg"
)

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type sessionResponse struct {
	Session *entity.Session    `json:"session,omitempty"`
	Turn    *entity.TurnResult `json:"turn,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func (that *Server) createSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.Start(r.Context(), pkg.GenerateSessionID())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, sessionResponse{Session: session})
}

func (that *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}

func (that *Server) startSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}

func (that *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, sessionResponse{Error: "row and col are required"})
		return
	}

	sessionID := chi.URLParam(r, "id")

	turn, err := that.uGame.MakeTurn(r.Context(), sessionID, *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	session, err := that.uGame.GetSession(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{Session: session, Turn: turn})
}

func (that *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := that.logger.With("path", r.URL.Path, "requestID", middleware.GetReqID(r.Context()))

	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		status, message = http.StatusNotFound, apperror.ErrSessionNotFound.Error()
	case errors.Is(err, apperror.ErrOutOfBounds):
		status, message = http.StatusBadRequest, apperror.ErrOutOfBounds.Error()
	case errors.Is(err, apperror.ErrGameFinished):
		status, message = http.StatusConflict, apperror.ErrGameFinished.Error()
	case errors.Is(err, apperror.ErrIllegalMove):
		status, message = http.StatusConflict, apperror.ErrIllegalMove.Error()
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Warn("request rejected", "error", err)
	}

	that.writeJSON(w, status, sessionResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body sessionResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
