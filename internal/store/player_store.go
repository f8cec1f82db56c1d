package store

import (
	"context"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PlayerStore struct {
	db *sqlx.DB
}

const (
	createPlayerQuery = `
		INSERT INTO players (id, owner_id, team_id, name, position, rating, status, created_at, updated_at)
		VALUES (:id, :owner_id, :team_id, :name, :position, :rating, :status, :created_at, :updated_at)
	`
	updatePlayerQuery = `
		UPDATE players SET
		name = :name,
		position = :position,
		rating = :rating,
		status = :status,
		team_id = :team_id,
		updated_at = :updated_at
		WHERE id = :id
	`
	getPlayerQuery           = "SELECT * FROM players WHERE id = ?"
	listPlayersByOwnerQuery  = "SELECT * FROM players WHERE owner_id = ? ORDER BY name ASC, created_at ASC"
	listPlayersByIDsQuery    = "SELECT * FROM players WHERE id IN (?)"
	listPlayersByTeamsQuery  = "SELECT * FROM players WHERE team_id IN (?) ORDER BY rating DESC, name ASC"
	deletePlayerQuery        = "DELETE FROM players WHERE id = ?"
	countPlayerEventsQuery   = "SELECT COUNT(*) FROM events WHERE player_id = ?"
	assignPlayersToTeamQuery = "UPDATE players SET team_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id IN (?)"
	clearTeamRosterQuery     = "UPDATE players SET team_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE team_id = ?"
)

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, tx *sqlx.Tx, player *football.Player) error {
	_, err := tx.NamedExecContext(ctx, createPlayerQuery, player)
	return err
}

func (s *PlayerStore) UpdatePlayer(ctx context.Context, tx *sqlx.Tx, player *football.Player) error {
	_, err := tx.NamedExecContext(ctx, updatePlayerQuery, player)
	return err
}

func (s *PlayerStore) DeletePlayer(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	_, err := tx.ExecContext(ctx, deletePlayerQuery, id)
	return err
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id uuid.UUID) (*football.Player, error) {
	return getPlayer(ctx, s.db, id)
}

func (s *PlayerStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*football.Player, error) {
	return getPlayer(ctx, tx, id)
}

func getPlayer(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*football.Player, error) {
	var player football.Player
	if err := sqlx.GetContext(ctx, q, &player, getPlayerQuery, id); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *PlayerStore) GetPlayersByOwner(ctx context.Context, ownerID uuid.UUID) ([]football.Player, error) {
	players := []football.Player{}
	err := s.db.SelectContext(ctx, &players, listPlayersByOwnerQuery, ownerID)
	return players, err
}

// GetPlayersByIDs returns the players found among ids, in no particular order.
func (s *PlayerStore) GetPlayersByIDs(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) ([]football.Player, error) {
	players := []football.Player{}
	if len(ids) == 0 {
		return players, nil
	}
	query, args, err := sqlx.In(listPlayersByIDsQuery, ids)
	if err != nil {
		return nil, err
	}
	err = tx.SelectContext(ctx, &players, tx.Rebind(query), args...)
	return players, err
}

// GetPlayersByTeams returns the current rosters of the given teams.
func (s *PlayerStore) GetPlayersByTeams(ctx context.Context, teamIDs []uuid.UUID) ([]football.Player, error) {
	players := []football.Player{}
	if len(teamIDs) == 0 {
		return players, nil
	}
	query, args, err := sqlx.In(listPlayersByTeamsQuery, teamIDs)
	if err != nil {
		return nil, err
	}
	err = s.db.SelectContext(ctx, &players, s.db.Rebind(query), args...)
	return players, err
}

func (s *PlayerStore) CountEvents(ctx context.Context, tx *sqlx.Tx, playerID uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, countPlayerEventsQuery, playerID)
	return count, err
}

func (s *PlayerStore) AssignToTeam(ctx context.Context, tx *sqlx.Tx, teamID uuid.UUID, playerIDs []uuid.UUID) error {
	if len(playerIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(assignPlayersToTeamQuery, teamID, playerIDs)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
	return err
}

func (s *PlayerStore) ClearTeam(ctx context.Context, tx *sqlx.Tx, teamID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, clearTeamRosterQuery, teamID)
	return err
}
