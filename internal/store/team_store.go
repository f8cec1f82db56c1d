package store

import (
	"context"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamStore struct {
	db *sqlx.DB
}

const (
	createTeamQuery = `
		INSERT INTO teams (id, owner_id, name, status, created_at, updated_at)
		VALUES (:id, :owner_id, :name, :status, :created_at, :updated_at)
	`
	updateTeamQuery = `
		UPDATE teams SET
		name = :name,
		status = :status,
		updated_at = :updated_at
		WHERE id = :id
	`
	getTeamQuery          = "SELECT * FROM teams WHERE id = ?"
	listTeamsByOwnerQuery = "SELECT * FROM teams WHERE owner_id = ? ORDER BY name ASC"
	listTeamNamesQuery    = "SELECT name FROM teams WHERE owner_id = ?"
	teamNameTakenQuery    = "SELECT COUNT(*) FROM teams WHERE owner_id = ? AND name = ? AND id <> ?"
)

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeam(ctx context.Context, tx *sqlx.Tx, team *football.Team) error {
	_, err := tx.NamedExecContext(ctx, createTeamQuery, team)
	return err
}

func (s *TeamStore) UpdateTeam(ctx context.Context, tx *sqlx.Tx, team *football.Team) error {
	_, err := tx.NamedExecContext(ctx, updateTeamQuery, team)
	return err
}

func (s *TeamStore) GetTeam(ctx context.Context, id uuid.UUID) (*football.Team, error) {
	return getTeam(ctx, s.db, id)
}

func (s *TeamStore) GetTeamTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*football.Team, error) {
	return getTeam(ctx, tx, id)
}

func getTeam(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*football.Team, error) {
	var team football.Team
	if err := sqlx.GetContext(ctx, q, &team, getTeamQuery, id); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) GetTeamsByOwner(ctx context.Context, ownerID uuid.UUID) ([]football.Team, error) {
	teams := []football.Team{}
	err := s.db.SelectContext(ctx, &teams, listTeamsByOwnerQuery, ownerID)
	return teams, err
}

func (s *TeamStore) GetTeamNames(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	names := []string{}
	err := s.db.SelectContext(ctx, &names, listTeamNamesQuery, ownerID)
	return names, err
}

// IsNameTaken reports whether another team of the owner already uses name.
// Pass uuid.Nil as exceptID when creating.
func (s *TeamStore) IsNameTaken(ctx context.Context, tx *sqlx.Tx, ownerID uuid.UUID, name string, exceptID uuid.UUID) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, teamNameTakenQuery, ownerID, name, exceptID)
	return count > 0, err
}
