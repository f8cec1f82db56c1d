package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	"github.com/google/uuid"
)

type StatsService struct {
	players *store.PlayerStore
	teams   *store.TeamStore
	matches *store.MatchStore
}

func NewStatsService(players *store.PlayerStore, teams *store.TeamStore, matches *store.MatchStore) *StatsService {
	return &StatsService{players: players, teams: teams, matches: matches}
}

func (s *StatsService) PlayerStats(ctx context.Context) ([]football.PlayerStat, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.players.GetPlayersByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	events, err := s.matches.GetEventsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return aggregatePlayerStats(players, events), nil
}

func (s *StatsService) TeamStats(ctx context.Context) ([]football.TeamStat, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.GetTeamsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	matches, err := s.matches.GetFinishedMatchesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return aggregateTeamStats(teams, matches), nil
}

// aggregatePlayerStats counts each player's events. Games played is the
// number of distinct matches with at least one event by the player.
// Ordered by goals desc, assists desc, games played asc, then name.
func aggregatePlayerStats(players []football.Player, events []football.Event) []football.PlayerStat {
	stats := make([]football.PlayerStat, len(players))
	index := make(map[uuid.UUID]int, len(players))
	games := make([]map[uuid.UUID]struct{}, len(players))
	for i, p := range players {
		stats[i] = football.PlayerStat{PlayerID: p.ID, Name: p.Name}
		index[p.ID] = i
		games[i] = map[uuid.UUID]struct{}{}
	}

	for _, e := range events {
		i, ok := index[e.PlayerID]
		if !ok {
			continue
		}
		switch e.Kind {
		case football.EventGoal:
			stats[i].Goals++
		case football.EventAssist:
			stats[i].Assists++
		case football.EventYellowCard:
			stats[i].YellowCards++
		case football.EventRedCard:
			stats[i].RedCards++
		}
		games[i][e.MatchID] = struct{}{}
	}
	for i := range stats {
		stats[i].GamesPlayed = len(games[i])
	}

	slices.SortStableFunc(stats, func(a, b football.PlayerStat) int {
		return cmp.Or(
			cmp.Compare(b.Goals, a.Goals),
			cmp.Compare(b.Assists, a.Assists),
			cmp.Compare(a.GamesPlayed, b.GamesPlayed),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return stats
}

// aggregateTeamStats builds a table from finished matches only. Teams that
// have not finished a match are left out.
// Ordered by points, goal difference and goals for (all desc), then name.
func aggregateTeamStats(teams []football.Team, matches []football.Match) []football.TeamStat {
	stats := make([]football.TeamStat, 0, len(teams))
	for _, t := range teams {
		row := football.TeamStat{TeamID: t.ID, Name: t.Name}
		for i := range matches {
			m := &matches[i]
			if !m.IsFinished() {
				continue
			}
			goalsFor, goalsAgainst, ok := m.Result(t.ID)
			if !ok {
				continue
			}
			row.Played++
			row.GoalsFor += goalsFor
			row.GoalsAgainst += goalsAgainst
			switch {
			case goalsFor > goalsAgainst:
				row.Wins++
			case goalsFor == goalsAgainst:
				row.Draws++
			default:
				row.Losses++
			}
		}
		if row.Played == 0 {
			continue
		}
		row.Points = 3*row.Wins + row.Draws
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		stats = append(stats, row)
	}

	slices.SortStableFunc(stats, func(a, b football.TeamStat) int {
		return cmp.Or(
			cmp.Compare(b.Points, a.Points),
			cmp.Compare(b.GoalDifference, a.GoalDifference),
			cmp.Compare(b.GoalsFor, a.GoalsFor),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return stats
}
