package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/db"
	"github.com/AdamBeresnev/matchmaker/internal/football"
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

func createTestUser(t *testing.T, database *sqlx.DB, email string) *users.User {
	t.Helper()
	user := &users.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  email,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, NewUserStore(database).CreateUser(context.Background(), user))
	return user
}

func withTx(t *testing.T, database *sqlx.DB, fn func(tx *sqlx.Tx)) {
	t.Helper()
	tx, err := database.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()
	fn(tx)
	require.NoError(t, tx.Commit())
}

func newPlayer(ownerID uuid.UUID, name string, rating float64) *football.Player {
	now := time.Now().UTC()
	return &football.Player{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Position:  football.Midfield,
		Rating:    rating,
		Status:    football.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTeam(ownerID uuid.UUID, name string) *football.Team {
	now := time.Now().UTC()
	return &football.Team{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Status:    football.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
