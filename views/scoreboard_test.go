package views

import (
	"context"
	"strings"
	"testing"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreboard(t *testing.T) {
	match := &football.Match{
		ID:              uuid.New(),
		TeamA:           &football.Team{Name: "Reds <script>"},
		TeamB:           &football.Team{Name: "Blues"},
		ScoreA:          2,
		ScoreB:          1,
		Status:          football.MatchInProgress,
		DurationSeconds: 1830,
		Events: []football.Event{
			{Kind: football.EventGoal, Minute: 3, Player: &football.Player{Name: "Marta"}},
			{Kind: football.EventYellowCard, Minute: 17},
		},
	}

	var b strings.Builder
	require.NoError(t, Scoreboard(match).Render(context.Background(), &b))
	html := b.String()

	assert.Contains(t, html, `<span class="goals">2 - 1</span>`)
	assert.Contains(t, html, "Reds &lt;script&gt;")
	assert.NotContains(t, html, "Reds <script>")
	assert.Contains(t, html, "In progress &middot; 30'")
	assert.Contains(t, html, "3'</span> Goal: Marta")
	assert.Contains(t, html, "Yellow card: Unknown player")
	assert.Contains(t, html, "new WebSocket")

	match.Status = football.MatchFinished
	match.Events = nil
	b.Reset()
	require.NoError(t, Scoreboard(match).Render(context.Background(), &b))
	assert.Contains(t, b.String(), "Full time")
	assert.Contains(t, b.String(), "No events yet.")
	assert.NotContains(t, b.String(), "new WebSocket")
}
