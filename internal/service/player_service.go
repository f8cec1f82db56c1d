package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type PlayerService struct {
	db    *sqlx.DB
	store *store.PlayerStore
}

func NewPlayerService(db *sqlx.DB, store *store.PlayerStore) *PlayerService {
	return &PlayerService{db: db, store: store}
}

func checkRating(rating float64) error {
	if !football.ValidRating(rating) {
		return invalidInput("rating must be between %.1f and %.1f in steps of %.1f", football.MinRating, football.MaxRating, football.RatingStep)
	}
	return nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, in PlayerInput) (*football.Player, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	if !in.Position.Valid() {
		return nil, invalidInput("unknown position %q", in.Position)
	}
	if err := checkRating(in.Rating); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = football.StatusActive
	}

	now := time.Now().UTC()
	player := &football.Player{
		ID:        uuid.New(),
		OwnerID:   userID,
		Name:      name,
		Position:  in.Position,
		Rating:    in.Rating,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreatePlayer(ctx, tx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, tx.Commit()
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uuid.UUID) (*football.Player, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	player, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		return nil, notFound(err, "player", id)
	}
	if err := assertOwnership(player, userID); err != nil {
		return nil, err
	}
	return player, nil
}

// ListPlayers returns the caller's players by name. A non-empty query keeps
// only fuzzy name matches, best match first.
func (s *PlayerService) ListPlayers(ctx context.Context, query string) ([]football.Player, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.store.GetPlayersByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return players, nil
	}
	return searchPlayers(players, query), nil
}

func searchPlayers(players []football.Player, query string) []football.Player {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	found := make([]football.Player, 0, len(ranks))
	for _, rank := range ranks {
		found = append(found, players[rank.OriginalIndex])
	}
	return found
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id uuid.UUID, in PlayerUpdate) (*football.Player, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	player, err := s.store.GetPlayerTx(ctx, tx, id)
	if err != nil {
		return nil, notFound(err, "player", id)
	}
	if err := assertOwnership(player, userID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		player.Name = name
	}
	if in.Position != nil {
		if !in.Position.Valid() {
			return nil, invalidInput("unknown position %q", *in.Position)
		}
		player.Position = *in.Position
	}
	if in.Rating != nil {
		if err := checkRating(*in.Rating); err != nil {
			return nil, err
		}
		player.Rating = *in.Rating
	}
	if in.Status != nil {
		player.Status = *in.Status
	}
	player.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePlayer(ctx, tx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, tx.Commit()
}

// DeletePlayer removes a player that no match event refers to. Players with
// history should be set inactive instead.
func (s *PlayerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	player, err := s.store.GetPlayerTx(ctx, tx, id)
	if err != nil {
		return notFound(err, "player", id)
	}
	if err := assertOwnership(player, userID); err != nil {
		return err
	}

	events, err := s.store.CountEvents(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("failed to count player events: %w", err)
	}
	if events > 0 {
		return invalidState("player %s appears in %d match events, mark it inactive instead", id, events)
	}

	if err := s.store.DeletePlayer(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return tx.Commit()
}
