package football

import "github.com/google/uuid"

type PlayerStat struct {
	PlayerID    uuid.UUID `json:"playerId"`
	Name        string    `json:"name"`
	Goals       int       `json:"goals"`
	Assists     int       `json:"assists"`
	YellowCards int       `json:"yellowCards"`
	RedCards    int       `json:"redCards"`
	GamesPlayed int       `json:"gamesPlayed"`
}

type TeamStat struct {
	TeamID         uuid.UUID `json:"teamId"`
	Name           string    `json:"name"`
	Played         int       `json:"played"`
	Wins           int       `json:"wins"`
	Draws          int       `json:"draws"`
	Losses         int       `json:"losses"`
	GoalsFor       int       `json:"goalsFor"`
	GoalsAgainst   int       `json:"goalsAgainst"`
	GoalDifference int       `json:"goalDifference"`
	Points         int       `json:"points"`
}
