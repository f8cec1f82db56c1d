package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStoreCRUD(t *testing.T) {
	database := setupTestDB(t)
	store := NewPlayerStore(database)
	ctx := context.Background()
	owner := createTestUser(t, database, "owner@example.com")
	other := createTestUser(t, database, "other@example.com")

	zico := newPlayer(owner.ID, "Zico", 4.5)
	ana := newPlayer(owner.ID, "Ana", 3)
	stranger := newPlayer(other.ID, "Stranger", 2)
	withTx(t, database, func(tx *sqlx.Tx) {
		for _, p := range []*football.Player{zico, ana, stranger} {
			require.NoError(t, store.CreatePlayer(ctx, tx, p))
		}
	})

	t.Run("list by owner is ordered by name", func(t *testing.T) {
		players, err := store.GetPlayersByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, "Ana", players[0].Name)
		assert.Equal(t, "Zico", players[1].Name)
		assert.Equal(t, owner.ID, players[0].OwnerID)
		assert.Nil(t, players[0].TeamID)
	})

	t.Run("update", func(t *testing.T) {
		ana.Rating = 3.5
		ana.Position = football.Goalkeeper
		ana.Status = football.StatusInactive
		ana.UpdatedAt = time.Now().UTC()
		withTx(t, database, func(tx *sqlx.Tx) {
			require.NoError(t, store.UpdatePlayer(ctx, tx, ana))
		})

		got, err := store.GetPlayer(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, 3.5, got.Rating)
		assert.Equal(t, football.Goalkeeper, got.Position)
		assert.Equal(t, football.StatusInactive, got.Status)
	})

	t.Run("get by ids skips unknown ids", func(t *testing.T) {
		withTx(t, database, func(tx *sqlx.Tx) {
			players, err := store.GetPlayersByIDs(ctx, tx, []uuid.UUID{zico.ID, stranger.ID, uuid.New()})
			require.NoError(t, err)
			assert.Len(t, players, 2)

			empty, err := store.GetPlayersByIDs(ctx, tx, nil)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	})

	t.Run("rating outside range is rejected by the schema", func(t *testing.T) {
		tx, err := database.BeginTxx(ctx, nil)
		require.NoError(t, err)
		defer tx.Rollback()
		assert.Error(t, store.CreatePlayer(ctx, tx, newPlayer(owner.ID, "Too good", 6)))
	})

	t.Run("delete", func(t *testing.T) {
		withTx(t, database, func(tx *sqlx.Tx) {
			require.NoError(t, store.DeletePlayer(ctx, tx, stranger.ID))
		})
		_, err := store.GetPlayer(ctx, stranger.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestPlayerStoreRosters(t *testing.T) {
	database := setupTestDB(t)
	players := NewPlayerStore(database)
	teams := NewTeamStore(database)
	ctx := context.Background()
	owner := createTestUser(t, database, "owner@example.com")

	red := newTeam(owner.ID, "Red")
	blue := newTeam(owner.ID, "Blue")
	p1 := newPlayer(owner.ID, "P1", 5)
	p2 := newPlayer(owner.ID, "P2", 2)
	p3 := newPlayer(owner.ID, "P3", 4)
	withTx(t, database, func(tx *sqlx.Tx) {
		require.NoError(t, teams.CreateTeam(ctx, tx, red))
		require.NoError(t, teams.CreateTeam(ctx, tx, blue))
		for _, p := range []*football.Player{p1, p2, p3} {
			require.NoError(t, players.CreatePlayer(ctx, tx, p))
		}
		require.NoError(t, players.AssignToTeam(ctx, tx, red.ID, []uuid.UUID{p1.ID, p2.ID}))
		require.NoError(t, players.AssignToTeam(ctx, tx, blue.ID, []uuid.UUID{p3.ID}))
	})

	roster, err := players.GetPlayersByTeams(ctx, []uuid.UUID{red.ID})
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "P1", roster[0].Name, "rosters are ordered by rating")
	assert.True(t, roster[0].OnTeam(red.ID))

	withTx(t, database, func(tx *sqlx.Tx) {
		require.NoError(t, players.ClearTeam(ctx, tx, red.ID))
	})

	roster, err = players.GetPlayersByTeams(ctx, []uuid.UUID{red.ID, blue.ID})
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, p3.ID, roster[0].ID)
}
