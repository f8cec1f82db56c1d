package httputil

import (
	"errors"
	"net/http"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorResponse{Error: msg})
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	log.WithError(err).Error(msg)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	entry := log.WithField("message", msg)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("bad request")
	writeError(w, http.StatusBadRequest, msg)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	entry := log.WithField("message", msg)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Debug("not found")
	writeError(w, http.StatusNotFound, msg)
}

func Unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, football.ErrUnauthenticated.Error())
}

// Error maps a service error to its HTTP status. Unknown errors are logged
// and reported as a generic 500.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, football.ErrUnauthenticated):
		Unauthorized(w)
	case errors.Is(err, football.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, football.ErrNotFound):
		NotFound(w, err.Error(), nil)
	case errors.Is(err, football.ErrInvalidInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, football.ErrInvalidState):
		writeError(w, http.StatusConflict, err.Error())
	default:
		InternalServerError(w, "unhandled service error", err)
	}
}
