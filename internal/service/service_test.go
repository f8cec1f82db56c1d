package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/db"
	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/middleware"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	users "github.com/AdamBeresnev/matchmaker/internal/user"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.InitDB("file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	t.Cleanup(func() { database.Close() })

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

type recordingNotifier struct {
	mu      sync.Mutex
	updates []football.MatchUpdate
}

func (n *recordingNotifier) NotifyMatch(_ context.Context, update football.MatchUpdate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, update)
}

type testEnv struct {
	db       *sqlx.DB
	players  *PlayerService
	teams    *TeamService
	matches  *MatchService
	stats    *StatsService
	users    *UserService
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := setupTestDB(t)

	playerStore := store.NewPlayerStore(database)
	teamStore := store.NewTeamStore(database)
	matchStore := store.NewMatchStore(database)
	notifier := &recordingNotifier{}

	return &testEnv{
		db:       database,
		players:  NewPlayerService(database, playerStore),
		teams:    NewTeamService(database, teamStore, playerStore),
		matches:  NewMatchService(database, matchStore, teamStore, playerStore, notifier),
		stats:    NewStatsService(playerStore, teamStore, matchStore),
		users:    NewUserService(database, store.NewUserStore(database)),
		notifier: notifier,
	}
}

// userCtx creates a user and returns a context authenticated as it.
func (e *testEnv) userCtx(t *testing.T, email string) (context.Context, uuid.UUID) {
	t.Helper()
	user := &users.User{ID: uuid.New(), Email: email, Username: email, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.NewUserStore(e.db).CreateUser(context.Background(), user))
	return context.WithValue(context.Background(), middleware.UserIDKey, user.ID), user.ID
}

func (e *testEnv) mustPlayer(t *testing.T, ctx context.Context, name string, rating float64) *football.Player {
	t.Helper()
	p, err := e.players.CreatePlayer(ctx, PlayerInput{Name: name, Position: football.Midfield, Rating: rating})
	require.NoError(t, err)
	return p
}

func (e *testEnv) mustTeam(t *testing.T, ctx context.Context, name string, players ...*football.Player) *football.Team {
	t.Helper()
	ids := make([]uuid.UUID, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	team, err := e.teams.CreateTeam(ctx, TeamInput{Name: name, PlayerIDs: ids})
	require.NoError(t, err)
	return team
}
