package main

import (
	"net/http"

	"github.com/AdamBeresnev/matchmaker/internal/httputil"
	"github.com/AdamBeresnev/matchmaker/internal/service"
	"github.com/AdamBeresnev/matchmaker/views"
	log "github.com/sirupsen/logrus"
)

func (app *application) createMatch(w http.ResponseWriter, r *http.Request) {
	var in service.CreateMatchInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	match, err := app.matches.CreateMatch(r.Context(), in)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, match)
}

func (app *application) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := app.matches.ListMatches(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, matches)
}

func (app *application) getMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	match, err := app.matches.GetMatch(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, match)
}

func (app *application) updateMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in service.UpdateMatchInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	match, err := app.matches.SetMatchState(r.Context(), id, in)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, match)
}

func (app *application) appendEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in service.EventInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	event, err := app.matches.AppendEvent(r.Context(), id, in)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, event)
}

func (app *application) scoreboard(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	match, err := app.matches.GetMatch(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if err := views.Render(w, r, views.Scoreboard(match)); err != nil {
		log.WithError(err).Warn("failed to render scoreboard")
	}
}

func (app *application) liveMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := app.matches.GetMatch(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	// Upgrade writes its own error response
	if err := app.hub.ServeMatch(w, r, id); err != nil {
		log.WithError(err).Debug("websocket upgrade failed")
	}
}
