package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matchID, err := uuid.Parse(r.URL.Query().Get("match"))
		if err != nil {
			http.Error(w, "bad match", http.StatusBadRequest)
			return
		}
		hub.ServeMatch(w, r, matchID)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, matchID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?match=" + matchID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversToMatchSubscribers(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	srv := newTestServer(t, hub)

	watched, other := uuid.New(), uuid.New()
	fan := dial(t, srv, watched)
	bystander := dial(t, srv, other)

	require.Eventually(t, func() bool {
		return hub.Subscribers(watched) == 1 && hub.Subscribers(other) == 1
	}, time.Second, 10*time.Millisecond)

	hub.NotifyMatch(context.Background(), football.MatchUpdate{
		Type:  football.UpdateEventAppended,
		Match: football.Match{ID: watched, ScoreA: 1},
		Event: &football.Event{Kind: football.EventGoal, Minute: 12},
	})

	fan.SetReadDeadline(time.Now().Add(time.Second))
	var got football.MatchUpdate
	require.NoError(t, fan.ReadJSON(&got))
	assert.Equal(t, football.UpdateEventAppended, got.Type)
	assert.Equal(t, watched, got.Match.ID)
	assert.Equal(t, 1, got.Match.ScoreA)
	require.NotNil(t, got.Event)
	assert.Equal(t, 12, got.Event.Minute)

	bystander.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := bystander.ReadMessage()
	assert.Error(t, err, "updates stay within their match")
}

func TestHubForgetsClosedClients(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	srv := newTestServer(t, hub)

	matchID := uuid.New()
	conn := dial(t, srv, matchID)
	require.Eventually(t, func() bool { return hub.Subscribers(matchID) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers(matchID) == 0 }, time.Second, 10*time.Millisecond)

	hub.NotifyMatch(context.Background(), football.MatchUpdate{Match: football.Match{ID: matchID}})
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example"})

	req := httptest.NewRequest(http.MethodGet, "http://api.example/live", nil)
	assert.True(t, check(req), "non-browser clients send no origin")

	req.Header.Set("Origin", "https://app.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	req.Header.Set("Origin", "http://api.example")
	assert.True(t, check(req), "same host is allowed")

	assert.True(t, originChecker([]string{"*"})(req))
}
