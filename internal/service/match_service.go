package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	"github.com/AdamBeresnev/matchmaker/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

type MatchService struct {
	db       *sqlx.DB
	store    *store.MatchStore
	teams    *store.TeamStore
	players  *store.PlayerStore
	notifier MatchNotifier
}

func NewMatchService(db *sqlx.DB, store *store.MatchStore, teams *store.TeamStore, players *store.PlayerStore, notifier MatchNotifier) *MatchService {
	if notifier == nil {
		notifier = MatchNotifiers{}
	}
	return &MatchService{db: db, store: store, teams: teams, players: players, notifier: notifier}
}

func (s *MatchService) CreateMatch(ctx context.Context, in CreateMatchInput) (*football.Match, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if in.TeamAID == in.TeamBID {
		return nil, invalidInput("a match needs two different teams")
	}
	status := utils.OrDefault(in.Status, football.MatchInProgress)
	if status != football.MatchScheduled && status != football.MatchInProgress {
		return nil, invalidInput("a match must start as %s or %s", football.MatchScheduled, football.MatchInProgress)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, teamID := range []uuid.UUID{in.TeamAID, in.TeamBID} {
		team, err := s.teams.GetTeamTx(ctx, tx, teamID)
		if err != nil {
			return nil, notFound(err, "team", teamID)
		}
		if err := assertOwnership(team, userID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	match := &football.Match{
		ID:        uuid.New(),
		OwnerID:   userID,
		TeamAID:   in.TeamAID,
		TeamBID:   in.TeamBID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetMatch(ctx, match.ID)
}

// GetMatch returns the match with both teams, their rosters and its events.
func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*football.Match, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	match, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return nil, notFound(err, "match", id)
	}
	if err := assertOwnership(match, userID); err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, userID, match); err != nil {
		return nil, err
	}
	return match, nil
}

// ListMatches returns the caller's matches, newest first, with teams and events.
func (s *MatchService) ListMatches(ctx context.Context) ([]football.Match, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.GetMatchesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	ptrs := make([]*football.Match, len(matches))
	for i := range matches {
		ptrs[i] = &matches[i]
	}
	if err := s.hydrate(ctx, userID, ptrs...); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *MatchService) hydrate(ctx context.Context, userID uuid.UUID, matches ...*football.Match) error {
	if len(matches) == 0 {
		return nil
	}

	teams, err := s.teams.GetTeamsByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	teamPtrs := make([]*football.Team, len(teams))
	teamByID := make(map[uuid.UUID]*football.Team, len(teams))
	for i := range teams {
		teamPtrs[i] = &teams[i]
		teamByID[teams[i].ID] = &teams[i]
	}
	if err := attachRosters(ctx, s.players, teamPtrs...); err != nil {
		return err
	}

	players, err := s.players.GetPlayersByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load players: %w", err)
	}
	playerByID := make(map[uuid.UUID]*football.Player, len(players))
	for i := range players {
		playerByID[players[i].ID] = &players[i]
	}

	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	events, err := s.store.GetEvents(ctx, ids...)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	eventsByMatch := make(map[uuid.UUID][]football.Event, len(matches))
	for _, e := range events {
		e.Player = playerByID[e.PlayerID]
		eventsByMatch[e.MatchID] = append(eventsByMatch[e.MatchID], e)
	}

	for _, m := range matches {
		m.TeamA = teamByID[m.TeamAID]
		m.TeamB = teamByID[m.TeamBID]
		m.Events = eventsByMatch[m.ID]
		if m.Events == nil {
			m.Events = []football.Event{}
		}
	}
	return nil
}

// SetMatchState moves the match through its lifecycle and records the
// caller's clock. Scores are only accepted when they match the ledger.
func (s *MatchService) SetMatchState(ctx context.Context, id uuid.UUID, in UpdateMatchInput) (*football.Match, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, id)
	if err != nil {
		return nil, notFound(err, "match", id)
	}
	if err := assertOwnership(match, userID); err != nil {
		return nil, err
	}
	if match.IsFinished() {
		return nil, invalidState("match %s is finished", id)
	}

	status := utils.OrDefault(in.Status, match.Status)
	if !match.Status.CanTransition(status) {
		return nil, invalidState("match cannot go from %s to %s", match.Status, status)
	}
	if in.ScoreA != nil && *in.ScoreA != match.ScoreA || in.ScoreB != nil && *in.ScoreB != match.ScoreB {
		return nil, invalidInput("score is %d-%d and only changes through goal events", match.ScoreA, match.ScoreB)
	}
	elapsed := utils.OrDefault(in.ElapsedSeconds, match.DurationSeconds)
	if elapsed < 0 {
		return nil, invalidInput("elapsed seconds must not be negative")
	}

	match.Status = status
	match.DurationSeconds = elapsed
	match.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateMatchState(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyMatch(ctx, football.MatchUpdate{Type: football.UpdateStateChanged, Match: *updated})
	return updated, nil
}

// AppendEvent records an event on the match. A goal increments the score of
// the scorer's side in the same transaction as the event insert.
func (s *MatchService) AppendEvent(ctx context.Context, matchID uuid.UUID, in EventInput) (*football.Event, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if !in.Kind.Valid() {
		return nil, invalidInput("unknown event kind %q", in.Kind)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, notFound(err, "match", matchID)
	}
	if err := assertOwnership(match, userID); err != nil {
		return nil, err
	}
	if match.IsFinished() {
		return nil, invalidState("match %s is finished", matchID)
	}

	player, err := s.players.GetPlayerTx(ctx, tx, in.PlayerID)
	if err != nil {
		return nil, notFound(err, "player", in.PlayerID)
	}
	if err := assertOwnership(player, userID); err != nil {
		return nil, err
	}

	elapsed := utils.OrDefault(in.ElapsedSeconds, match.DurationSeconds)
	if elapsed < 0 {
		return nil, invalidInput("elapsed seconds must not be negative")
	}

	var side football.Side
	if in.Kind == football.EventGoal {
		var ok bool
		if side, ok = match.SideOf(player); !ok {
			return nil, invalidInput("player %s plays for neither team of match %s", player.ID, match.ID)
		}
	}

	event := &football.Event{
		ID:        uuid.New(),
		MatchID:   match.ID,
		PlayerID:  player.ID,
		Kind:      in.Kind,
		Minute:    football.MinuteAt(elapsed),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateEvent(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if in.Kind == football.EventGoal {
		if err := s.store.IncrementScore(ctx, tx, match.ID, side); err != nil {
			return nil, fmt.Errorf("failed to update score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	event.Player = player

	updated, err := s.GetMatch(ctx, match.ID)
	if err != nil {
		log.WithError(err).WithField("match_id", match.ID).Warn("event stored but match reload failed")
		return event, nil
	}
	s.notifier.NotifyMatch(ctx, football.MatchUpdate{Type: football.UpdateEventAppended, Match: *updated, Event: event})
	return event, nil
}
