package football

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to MatchStatus
		want     bool
	}{
		{MatchScheduled, MatchInProgress, true},
		{MatchScheduled, MatchFinished, true},
		{MatchScheduled, MatchPaused, false},
		{MatchInProgress, MatchPaused, true},
		{MatchInProgress, MatchInProgress, true},
		{MatchInProgress, MatchScheduled, false},
		{MatchPaused, MatchInProgress, true},
		{MatchPaused, MatchFinished, true},
		{MatchFinished, MatchFinished, false},
		{MatchFinished, MatchInProgress, false},
		{MatchInProgress, MatchStatus("halftime"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestValidRating(t *testing.T) {
	for _, r := range []float64{1, 1.5, 3, 4.5, 5} {
		assert.True(t, ValidRating(r), "%v", r)
	}
	for _, r := range []float64{0, 0.5, 2.25, 5.5, -1} {
		assert.False(t, ValidRating(r), "%v", r)
	}
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 3.5, AverageRating([]Player{{Rating: 5}, {Rating: 2}}))
	assert.Equal(t, 3.33, AverageRating([]Player{{Rating: 4}, {Rating: 3}, {Rating: 3}}))
}

func TestMatchSides(t *testing.T) {
	teamA, teamB, other := uuid.New(), uuid.New(), uuid.New()
	m := &Match{TeamAID: teamA, TeamBID: teamB, ScoreA: 3, ScoreB: 1}

	side, ok := m.SideOf(&Player{TeamID: &teamB})
	assert.True(t, ok)
	assert.Equal(t, SideB, side)

	_, ok = m.SideOf(&Player{TeamID: &other})
	assert.False(t, ok)
	_, ok = m.SideOf(&Player{})
	assert.False(t, ok)

	gf, ga, ok := m.Result(teamA)
	assert.True(t, ok)
	assert.Equal(t, []int{3, 1}, []int{gf, ga})

	gf, ga, ok = m.Result(teamB)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 3}, []int{gf, ga})

	_, _, ok = m.Result(other)
	assert.False(t, ok)
}

func TestMinuteAt(t *testing.T) {
	assert.Equal(t, 0, MinuteAt(59))
	assert.Equal(t, 1, MinuteAt(60))
	assert.Equal(t, 45, MinuteAt(2730))
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, EventRedCard.Valid())
	assert.False(t, EventKind("corner").Valid())
	assert.True(t, Goalkeeper.Valid())
	assert.False(t, Position("libero").Valid())
}
