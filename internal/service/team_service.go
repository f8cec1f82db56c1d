package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamService struct {
	db      *sqlx.DB
	store   *store.TeamStore
	players *store.PlayerStore
}

func NewTeamService(db *sqlx.DB, store *store.TeamStore, players *store.PlayerStore) *TeamService {
	return &TeamService{db: db, store: store, players: players}
}

func (s *TeamService) CreateTeam(ctx context.Context, in TeamInput) (*football.Team, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	status := in.Status
	if status == "" {
		status = football.StatusActive
	}

	now := time.Now().UTC()
	team := &football.Team{
		ID:        uuid.New(),
		OwnerID:   userID,
		Name:      name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.checkNameFree(ctx, tx, userID, name, uuid.Nil); err != nil {
		return nil, err
	}
	if _, err := loadOwnedPlayers(ctx, tx, s.players, userID, in.PlayerIDs); err != nil {
		return nil, err
	}
	if err := s.store.CreateTeam(ctx, tx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	if err := s.players.AssignToTeam(ctx, tx, team.ID, in.PlayerIDs); err != nil {
		return nil, fmt.Errorf("failed to assign players: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := s.withRosters(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*football.Team, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	team, err := s.store.GetTeam(ctx, id)
	if err != nil {
		return nil, notFound(err, "team", id)
	}
	if err := assertOwnership(team, userID); err != nil {
		return nil, err
	}
	if err := s.withRosters(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]football.Team, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.store.GetTeamsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	ptrs := make([]*football.Team, len(teams))
	for i := range teams {
		ptrs[i] = &teams[i]
	}
	if err := s.withRosters(ctx, ptrs...); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uuid.UUID, in TeamUpdate) (*football.Team, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	team, err := s.store.GetTeamTx(ctx, tx, id)
	if err != nil {
		return nil, notFound(err, "team", id)
	}
	if err := assertOwnership(team, userID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		if err := s.checkNameFree(ctx, tx, userID, name, team.ID); err != nil {
			return nil, err
		}
		team.Name = name
	}
	if in.Status != nil {
		team.Status = *in.Status
	}
	team.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTeam(ctx, tx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	if in.PlayerIDs != nil {
		if _, err := loadOwnedPlayers(ctx, tx, s.players, userID, *in.PlayerIDs); err != nil {
			return nil, err
		}
		if err := s.players.ClearTeam(ctx, tx, team.ID); err != nil {
			return nil, fmt.Errorf("failed to clear roster: %w", err)
		}
		if err := s.players.AssignToTeam(ctx, tx, team.ID, *in.PlayerIDs); err != nil {
			return nil, fmt.Errorf("failed to assign players: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if err := s.withRosters(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// GenerateTeams proposes balanced teams from the given players. Nothing is saved.
func (s *TeamService) GenerateTeams(ctx context.Context, in GenerateTeamsInput) ([]football.TeamProposal, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	taken, err := s.store.GetTeamNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team names: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	players, err := loadOwnedPlayers(ctx, tx, s.players, userID, in.PlayerIDs)
	if err != nil {
		return nil, err
	}
	return BalanceTeams(players, in.TeamCount, in.PlayersPerTeam, taken)
}

func (s *TeamService) checkNameFree(ctx context.Context, tx *sqlx.Tx, ownerID uuid.UUID, name string, exceptID uuid.UUID) error {
	taken, err := s.store.IsNameTaken(ctx, tx, ownerID, name, exceptID)
	if err != nil {
		return fmt.Errorf("failed to check team name: %w", err)
	}
	if taken {
		return invalidInput("team name %q is already in use", name)
	}
	return nil
}

// withRosters fills players and average rating of the given teams.
func (s *TeamService) withRosters(ctx context.Context, teams ...*football.Team) error {
	return attachRosters(ctx, s.players, teams...)
}

func attachRosters(ctx context.Context, players *store.PlayerStore, teams ...*football.Team) error {
	ids := make([]uuid.UUID, 0, len(teams))
	for _, t := range teams {
		if t != nil {
			ids = append(ids, t.ID)
		}
	}
	roster, err := players.GetPlayersByTeams(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load rosters: %w", err)
	}

	byTeam := make(map[uuid.UUID][]football.Player, len(teams))
	for _, p := range roster {
		byTeam[*p.TeamID] = append(byTeam[*p.TeamID], p)
	}
	for _, t := range teams {
		if t == nil {
			continue
		}
		t.Players = byTeam[t.ID]
		if t.Players == nil {
			t.Players = []football.Player{}
		}
		t.AverageRating = football.AverageRating(t.Players)
	}
	return nil
}

// loadOwnedPlayers resolves ids to players, in the order given. Every id must
// exist, be owned by userID and appear once.
func loadOwnedPlayers(ctx context.Context, tx *sqlx.Tx, players *store.PlayerStore, userID uuid.UUID, ids []uuid.UUID) ([]football.Player, error) {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, invalidInput("player %s is listed more than once", id)
		}
		seen[id] = true
	}

	found, err := players.GetPlayersByIDs(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	byID := make(map[uuid.UUID]football.Player, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	ordered := make([]football.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: player %s", football.ErrNotFound, id)
		}
		if err := assertOwnership(&p, userID); err != nil {
			return nil, err
		}
		ordered = append(ordered, p)
	}
	return ordered, nil
}
