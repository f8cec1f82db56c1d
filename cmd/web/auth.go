package main

import (
	"context"
	"net/http"
	"slices"

	"github.com/AdamBeresnev/matchmaker/internal/httputil"
	"github.com/AdamBeresnev/matchmaker/internal/middleware"
	"github.com/AdamBeresnev/matchmaker/internal/service"
	users "github.com/AdamBeresnev/matchmaker/internal/user"
	"github.com/go-chi/chi/v5"
	"github.com/markbates/goth/gothic"
)

type loginResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

func (app *application) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (app *application) register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	user, err := app.users.Register(r.Context(), in)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	user, err := app.users.Login(r.Context(), in)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	app.startSession(w, r, user)
}

// startSession signs the user into the cookie session and answers with a
// bearer token for API clients.
func (app *application) startSession(w http.ResponseWriter, r *http.Request, user *users.User) {
	if err := app.sessions.RenewToken(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to renew session", err)
		return
	}
	app.sessions.Put(r.Context(), middleware.SessionUserKey, user.ID.String())

	token, err := middleware.IssueToken(app.tokenAuth, user.ID, app.cfg.Auth.TokenTTL)
	if err != nil {
		httputil.InternalServerError(w, "Failed to issue token", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.Destroy(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to destroy session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) withProvider(w http.ResponseWriter, r *http.Request) (*http.Request, bool) {
	provider := chi.URLParam(r, "provider")
	if !slices.Contains(app.providers, provider) {
		httputil.NotFound(w, "unknown auth provider", nil)
		return nil, false
	}
	return r.WithContext(context.WithValue(r.Context(), "provider", provider)), true
}

func (app *application) beginOAuth(w http.ResponseWriter, r *http.Request) {
	r, ok := app.withProvider(w, r)
	if !ok {
		return
	}
	gothic.BeginAuthHandler(w, r)
}

func (app *application) completeOAuth(w http.ResponseWriter, r *http.Request) {
	r, ok := app.withProvider(w, r)
	if !ok {
		return
	}

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		httputil.BadRequest(w, "Authentication failure", err)
		return
	}

	user, err := app.users.FindOrCreateUserByProvider(r.Context(), gothUser)
	if err != nil {
		httputil.InternalServerError(w, "Failed to find or create user", err)
		return
	}
	app.startSession(w, r, user)
}
