package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/a-h/templ"
)

var eventLabels = map[football.EventKind]string{
	football.EventGoal:       "Goal",
	football.EventAssist:     "Assist",
	football.EventYellowCard: "Yellow card",
	football.EventRedCard:    "Red card",
}

var statusLabels = map[football.MatchStatus]string{
	football.MatchScheduled:  "Scheduled",
	football.MatchInProgress: "In progress",
	football.MatchPaused:     "Paused",
	football.MatchFinished:   "Full time",
}

// Scoreboard renders a standalone page for a match. The page reconnects to
// the live endpoint and reloads on every update.
func Scoreboard(match *football.Match) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildScoreboardHTML(ctx, match))
		return err
	})
}

func teamName(t *football.Team) string {
	if t == nil {
		return "Unknown team"
	}
	return t.Name
}

func buildScoreboardHTML(ctx context.Context, match *football.Match) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
	b.WriteString(templ.EscapeString(fmt.Sprintf("%s %d - %d %s", teamName(match.TeamA), match.ScoreA, match.ScoreB, teamName(match.TeamB))))
	b.WriteString(`</title></head><body>`)

	if user := GetUser(ctx); user != nil {
		fmt.Fprintf(&b, `<header class="user">%s</header>`, templ.EscapeString(user.Username))
	}

	fmt.Fprintf(&b, `<main id="scoreboard" data-match-id="%s" data-status="%s">`, match.ID, match.Status)
	fmt.Fprintf(&b, `<div class="status">%s &middot; %d'</div>`, templ.EscapeString(statusLabels[match.Status]), football.MinuteAt(match.DurationSeconds))
	fmt.Fprintf(&b, `<div class="score"><span class="team">%s</span> <span class="goals">%d - %d</span> <span class="team">%s</span></div>`,
		templ.EscapeString(teamName(match.TeamA)), match.ScoreA, match.ScoreB, templ.EscapeString(teamName(match.TeamB)))

	if len(match.Events) == 0 {
		b.WriteString(`<p class="empty">No events yet.</p>`)
	} else {
		b.WriteString(`<ol class="events">`)
		for _, e := range match.Events {
			player := "Unknown player"
			if e.Player != nil {
				player = e.Player.Name
			}
			fmt.Fprintf(&b, `<li class="event %s"><span class="minute">%d'</span> %s: %s</li>`,
				e.Kind, e.Minute, templ.EscapeString(eventLabels[e.Kind]), templ.EscapeString(player))
		}
		b.WriteString(`</ol>`)
	}
	b.WriteString(`</main>`)

	if !match.IsFinished() {
		b.WriteString(`<script>(function(){var p=location.protocol==="https:"?"wss://":"ws://";` +
			`var ws=new WebSocket(p+location.host+location.pathname.replace(/scoreboard$/,"live"));` +
			`ws.onmessage=function(){location.reload()};})();</script>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}
