package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"riseabove/backend/app/apperr"
	"riseabove/backend/app/dto"
	"riseabove/backend/app/models"
	"riseabove/backend/app/services"
	"riseabove/backend/app/session"
	"riseabove/backend/app/view"
	"riseabove/backend/global"
)

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

// writeError maps a service error to its status and JSON payload.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	var verr *apperr.ValidationError
	switch {
	case errors.Is(err, errBadBody):
		status, msg = http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, services.ErrSkillNameRequired):
		status, msg = http.StatusBadRequest, "Skill name is required"
	case errors.Is(err, services.ErrSkillExists):
		status, msg = http.StatusBadRequest, "Skill already exists"
	case errors.Is(err, services.ErrSkillNameTooLong):
		status, msg = http.StatusBadRequest, fmt.Sprintf("Skill name must be at most %d characters", models.MaxSkillnameLen)
	case errors.Is(err, services.ErrSkillNotFound):
		status, msg = http.StatusNotFound, "Skill not found"
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, strings.Join(verr.Messages, " ")
	case errors.Is(err, apperr.ErrValidation):
		status, msg = http.StatusBadRequest, "Invalid input"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, apperr.ErrAuthRequired):
		status, msg = http.StatusUnauthorized, "Not logged in"
	case errors.Is(err, apperr.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, apperr.ErrConflict):
		status, msg = http.StatusBadRequest, "Already exists"
	default:
		global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

// internalError answers a page request that failed for a non-user reason.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func currentSession(r *http.Request) *session.Session {
	if s := session.FromContext(r.Context()); s != nil {
		return s
	}
	// handlers mounted without the session middleware get a throwaway one
	return &session.Session{}
}

func renderPage(v *view.Renderer, w http.ResponseWriter, r *http.Request, name, title string, data any) {
	s := currentSession(r)
	_, loggedIn := s.UserID()
	page := view.Page{Title: title, LoggedIn: loggedIn, Flashes: s.Flashes(), Data: data}
	if err := v.Render(w, http.StatusOK, name, page); err != nil {
		internalError(w, r, err)
	}
}

// flashAll queues every user-facing message of err.
func flashAll(s *session.Session, err error) {
	for _, msg := range apperr.Messages(err) {
		s.AddFlash(session.FlashDanger, msg)
	}
}
