package main

import (
	"net/http"

	"github.com/AdamBeresnev/matchmaker/internal/config"
	"github.com/AdamBeresnev/matchmaker/internal/httputil"
	"github.com/AdamBeresnev/matchmaker/internal/service"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	"github.com/AdamBeresnev/matchmaker/internal/ws"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type application struct {
	cfg       *config.Config
	sessions  *scs.SessionManager
	tokenAuth *jwtauth.JWTAuth
	hub       *ws.Hub
	providers []string

	userStore *store.UserStore
	users     *service.UserService
	players   *service.PlayerService
	teams     *service.TeamService
	matches   *service.MatchService
	stats     *service.StatsService
}

func newApplication(cfg *config.Config, database *sqlx.DB, sessions *scs.SessionManager, hub *ws.Hub, notifier service.MatchNotifier, providers []string) *application {
	userStore := store.NewUserStore(database)
	playerStore := store.NewPlayerStore(database)
	teamStore := store.NewTeamStore(database)
	matchStore := store.NewMatchStore(database)

	return &application{
		cfg:       cfg,
		sessions:  sessions,
		tokenAuth: jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil),
		hub:       hub,
		providers: providers,

		userStore: userStore,
		users:     service.NewUserService(database, userStore),
		players:   service.NewPlayerService(database, playerStore),
		teams:     service.NewTeamService(database, teamStore, playerStore),
		matches:   service.NewMatchService(database, matchStore, teamStore, playerStore, notifier),
		stats:     service.NewStatsService(playerStore, teamStore, matchStore),
	}
}

// idParam parses the {id} URL parameter. An id that is not a UUID cannot
// exist, so it is reported as not found.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.NotFound(w, "resource not found", err)
		return uuid.Nil, false
	}
	return id, true
}
