package main

import (
	"net/http"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/httputil"
	"github.com/AdamBeresnev/matchmaker/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth"
)

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if app.cfg.HTTP.RateLimit > 0 {
		r.Use(httprate.LimitByIP(app.cfg.HTTP.RateLimit, time.Minute))
	}

	r.Get("/health", app.health)

	// The live socket is hijacked, so the session is read without the
	// response-wrapping LoadAndSave. Browsers may pass the token as ?token=.
	r.With(
		jwtauth.Verify(app.tokenAuth, jwtauth.TokenFromHeader, tokenFromQuery),
		app.readSession,
		middleware.LoadAuthenticatedUser(app.sessions, app.userStore),
		middleware.RequireAuth,
	).Get("/matches/{id}/live", app.liveMatch)

	r.Group(func(r chi.Router) {
		r.Use(app.sessions.LoadAndSave)
		r.Use(jwtauth.Verifier(app.tokenAuth))
		r.Use(middleware.LoadAuthenticatedUser(app.sessions, app.userStore))

		r.Post("/register", app.register)
		r.Post("/login", app.login)
		r.Post("/logout", app.logout)
		r.Get("/auth/{provider}", app.beginOAuth)
		r.Get("/auth/{provider}/callback", app.completeOAuth)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/players", func(r chi.Router) {
				r.Post("/", app.createPlayer)
				r.Get("/", app.listPlayers)
				r.Get("/{id}", app.getPlayer)
				r.Put("/{id}", app.updatePlayer)
				r.Delete("/{id}", app.deletePlayer)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Post("/", app.createTeam)
				r.Get("/", app.listTeams)
				r.Post("/generate", app.generateTeams)
				r.Get("/{id}", app.getTeam)
				r.Put("/{id}", app.updateTeam)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Post("/", app.createMatch)
				r.Get("/", app.listMatches)
				r.Get("/{id}", app.getMatch)
				r.Put("/{id}", app.updateMatch)
				r.Post("/{id}/events", app.appendEvent)
				r.Get("/{id}/scoreboard", app.scoreboard)
			})

			r.Get("/stats/players", app.playerStats)
			r.Get("/stats/teams", app.teamStats)
		})
	})

	return r
}

func tokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}

// readSession loads the session for the request without committing it.
func (app *application) readSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(app.sessions.Cookie.Name); err == nil {
			token = cookie.Value
		}
		ctx, err := app.sessions.Load(r.Context(), token)
		if err != nil {
			httputil.InternalServerError(w, "Failed to load session", err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
