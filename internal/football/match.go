package football

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchPaused     MatchStatus = "paused"
	MatchFinished   MatchStatus = "finished"
)

var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchScheduled:  {MatchInProgress, MatchFinished},
	MatchInProgress: {MatchPaused, MatchFinished},
	MatchPaused:     {MatchInProgress, MatchFinished},
}

// CanTransition reports whether a match in status from may move to status to.
// Writing the current status again is allowed unless the match is finished.
func (from MatchStatus) CanTransition(to MatchStatus) bool {
	if from == MatchFinished {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range matchTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Side int

const (
	SideA Side = iota + 1
	SideB
)

type Match struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	OwnerID         uuid.UUID   `db:"owner_id" json:"-"`
	TeamAID         uuid.UUID   `db:"team_a_id" json:"teamAId"`
	TeamBID         uuid.UUID   `db:"team_b_id" json:"teamBId"`
	ScoreA          int         `db:"score_a" json:"scoreA"`
	ScoreB          int         `db:"score_b" json:"scoreB"`
	Status          MatchStatus `db:"status" json:"status"`
	DurationSeconds int         `db:"duration_seconds" json:"durationSeconds"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updatedAt"`

	TeamA  *Team   `db:"-" json:"teamA"`
	TeamB  *Team   `db:"-" json:"teamB"`
	Events []Event `db:"-" json:"events"`
}

func (m *Match) Owner() uuid.UUID {
	return m.OwnerID
}

func (m *Match) IsFinished() bool {
	return m.Status == MatchFinished
}

// SideOf returns the side the player currently plays for, or false when the
// player is on neither roster.
func (m *Match) SideOf(p *Player) (Side, bool) {
	switch {
	case p.OnTeam(m.TeamAID):
		return SideA, true
	case p.OnTeam(m.TeamBID):
		return SideB, true
	}
	return 0, false
}

// Result returns goals for and against from the given team's point of view.
func (m *Match) Result(teamID uuid.UUID) (goalsFor, goalsAgainst int, ok bool) {
	switch teamID {
	case m.TeamAID:
		return m.ScoreA, m.ScoreB, true
	case m.TeamBID:
		return m.ScoreB, m.ScoreA, true
	}
	return 0, 0, false
}
