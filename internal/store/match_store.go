package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchStore struct {
	db *sqlx.DB
}

const (
	createMatchQuery = `
		INSERT INTO matches (id, owner_id, team_a_id, team_b_id, score_a, score_b, status, duration_seconds, created_at, updated_at)
		VALUES (:id, :owner_id, :team_a_id, :team_b_id, :score_a, :score_b, :status, :duration_seconds, :created_at, :updated_at)
	`
	updateMatchStateQuery = `
		UPDATE matches SET
		status = :status,
		duration_seconds = :duration_seconds,
		updated_at = :updated_at
		WHERE id = :id
	`
	incrementScoreAQuery = "UPDATE matches SET score_a = score_a + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	incrementScoreBQuery = "UPDATE matches SET score_b = score_b + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?"

	getMatchQuery            = "SELECT * FROM matches WHERE id = ?"
	listMatchesByOwnerQuery  = "SELECT * FROM matches WHERE owner_id = ? ORDER BY created_at DESC"
	listFinishedByOwnerQuery = "SELECT * FROM matches WHERE owner_id = ? AND status = 'finished' ORDER BY created_at ASC"

	createEventQuery = `
		INSERT INTO events (id, match_id, player_id, kind, minute, created_at)
		VALUES (:id, :match_id, :player_id, :kind, :minute, :created_at)
	`
	listEventsByMatchesQuery = "SELECT * FROM events WHERE match_id IN (?) ORDER BY minute ASC, created_at ASC"
	listEventsByOwnerQuery   = `
		SELECT e.* FROM events e
		JOIN matches m ON m.id = e.match_id
		WHERE m.owner_id = ?
		ORDER BY e.created_at ASC
	`
)

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) CreateMatch(ctx context.Context, tx *sqlx.Tx, match *football.Match) error {
	_, err := tx.NamedExecContext(ctx, createMatchQuery, match)
	return err
}

func (s *MatchStore) UpdateMatchState(ctx context.Context, tx *sqlx.Tx, match *football.Match) error {
	_, err := tx.NamedExecContext(ctx, updateMatchStateQuery, match)
	return err
}

// IncrementScore adds one goal to the given side of the match.
func (s *MatchStore) IncrementScore(ctx context.Context, tx *sqlx.Tx, matchID uuid.UUID, side football.Side) error {
	var query string
	switch side {
	case football.SideA:
		query = incrementScoreAQuery
	case football.SideB:
		query = incrementScoreBQuery
	default:
		return fmt.Errorf("unknown side %d", side)
	}
	_, err := tx.ExecContext(ctx, query, matchID)
	return err
}

func (s *MatchStore) GetMatch(ctx context.Context, id uuid.UUID) (*football.Match, error) {
	return getMatch(ctx, s.db, id)
}

func (s *MatchStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*football.Match, error) {
	return getMatch(ctx, tx, id)
}

func getMatch(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*football.Match, error) {
	var match football.Match
	if err := sqlx.GetContext(ctx, q, &match, getMatchQuery, id); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MatchStore) GetMatchesByOwner(ctx context.Context, ownerID uuid.UUID) ([]football.Match, error) {
	matches := []football.Match{}
	err := s.db.SelectContext(ctx, &matches, listMatchesByOwnerQuery, ownerID)
	return matches, err
}

func (s *MatchStore) GetFinishedMatchesByOwner(ctx context.Context, ownerID uuid.UUID) ([]football.Match, error) {
	matches := []football.Match{}
	err := s.db.SelectContext(ctx, &matches, listFinishedByOwnerQuery, ownerID)
	return matches, err
}

func (s *MatchStore) CreateEvent(ctx context.Context, tx *sqlx.Tx, event *football.Event) error {
	_, err := tx.NamedExecContext(ctx, createEventQuery, event)
	return err
}

// GetEvents returns the events of the given matches ordered by minute.
func (s *MatchStore) GetEvents(ctx context.Context, matchIDs ...uuid.UUID) ([]football.Event, error) {
	events := []football.Event{}
	if len(matchIDs) == 0 {
		return events, nil
	}
	query, args, err := sqlx.In(listEventsByMatchesQuery, matchIDs)
	if err != nil {
		return nil, err
	}
	err = s.db.SelectContext(ctx, &events, s.db.Rebind(query), args...)
	return events, err
}

func (s *MatchStore) GetEventsByOwner(ctx context.Context, ownerID uuid.UUID) ([]football.Event, error) {
	events := []football.Event{}
	err := s.db.SelectContext(ctx, &events, listEventsByOwnerQuery, ownerID)
	return events, err
}
