package main

import (
	"net/http"

	"github.com/AdamBeresnev/matchmaker/internal/httputil"
	"github.com/AdamBeresnev/matchmaker/internal/service"
)

func (app *application) createPlayer(w http.ResponseWriter, r *http.Request) {
	var in service.PlayerInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	player, err := app.players.CreatePlayer(r.Context(), in)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, player)
}

func (app *application) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := app.players.ListPlayers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, players)
}

func (app *application) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	player, err := app.players.GetPlayer(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, player)
}

func (app *application) updatePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in service.PlayerUpdate
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	player, err := app.players.UpdatePlayer(r.Context(), id, in)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, player)
}

func (app *application) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := app.players.DeletePlayer(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
