package service

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AdamBeresnev/matchmaker/internal/football"
)

// BalanceTeams splits players into teamCount teams with a serpentine draft.
// Players are ranked by rating (stable for equal ratings) and dealt in rounds
// of teamCount: even rounds go left to right, odd rounds right to left.
// Team names skip any name in takenNames.
func BalanceTeams(players []football.Player, teamCount int, playersPerTeam *int, takenNames []string) ([]football.TeamProposal, error) {
	if teamCount < 1 {
		return nil, invalidInput("team count must be at least 1")
	}
	if len(players) < teamCount {
		return nil, invalidInput("not enough players: %d players for %d teams", len(players), teamCount)
	}
	if playersPerTeam != nil {
		if *playersPerTeam < 1 {
			return nil, invalidInput("players per team must be at least 1")
		}
		if len(players) != teamCount*(*playersPerTeam) {
			return nil, invalidInput("%d players cannot form %d teams of %d", len(players), teamCount, *playersPerTeam)
		}
	}

	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, func(a, b football.Player) int {
		return cmp.Compare(b.Rating, a.Rating)
	})

	rosters := make([][]football.Player, teamCount)
	for i, p := range ranked {
		round, slot := i/teamCount, i%teamCount
		if round%2 == 1 {
			slot = teamCount - 1 - slot
		}
		rosters[slot] = append(rosters[slot], p)
	}

	names := teamNames(teamCount, takenNames)
	proposals := make([]football.TeamProposal, teamCount)
	for i, roster := range rosters {
		proposals[i] = football.TeamProposal{
			Name:          names[i],
			Players:       roster,
			AverageRating: football.AverageRating(roster),
		}
	}
	return proposals, nil
}

// teamNames yields "Team A" to "Team Z", then "Team 1", "Team 2" and so on.
func teamNames(n int, taken []string) []string {
	used := make(map[string]bool, len(taken))
	for _, name := range taken {
		used[name] = true
	}

	names := make([]string, 0, n)
	for c := 'A'; c <= 'Z' && len(names) < n; c++ {
		name := "Team " + string(c)
		if !used[name] {
			names = append(names, name)
		}
	}
	for i := 1; len(names) < n; i++ {
		name := fmt.Sprintf("Team %d", i)
		if !used[name] {
			names = append(names, name)
		}
	}
	return names
}
