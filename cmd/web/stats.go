package main

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/matchmaker/internal/httputil"
	log "github.com/sirupsen/logrus"
)

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

func writeCSV(w http.ResponseWriter, filename string, header []string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(w)
	writer.Write(header)
	writer.WriteAll(rows)
	if err := writer.Error(); err != nil {
		log.WithError(err).Warn("failed to write CSV export")
	}
}

func (app *application) playerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := app.stats.PlayerStats(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if !wantsCSV(r) {
		httputil.WriteJSON(w, http.StatusOK, stats)
		return
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.PlayerID.String(),
			s.Name,
			strconv.Itoa(s.Goals),
			strconv.Itoa(s.Assists),
			strconv.Itoa(s.YellowCards),
			strconv.Itoa(s.RedCards),
			strconv.Itoa(s.GamesPlayed),
		})
	}
	writeCSV(w, "player-stats.csv",
		[]string{"player_id", "name", "goals", "assists", "yellow_cards", "red_cards", "games_played"}, rows)
}

func (app *application) teamStats(w http.ResponseWriter, r *http.Request) {
	stats, err := app.stats.TeamStats(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if !wantsCSV(r) {
		httputil.WriteJSON(w, http.StatusOK, stats)
		return
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.TeamID.String(),
			s.Name,
			strconv.Itoa(s.Played),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.GoalsFor),
			strconv.Itoa(s.GoalsAgainst),
			strconv.Itoa(s.GoalDifference),
			strconv.Itoa(s.Points),
		})
	}
	writeCSV(w, "team-stats.csv",
		[]string{"team_id", "name", "played", "wins", "draws", "losses", "goals_for", "goals_against", "goal_difference", "points"}, rows)
}
