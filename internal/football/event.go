package football

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventGoal       EventKind = "goal"
	EventAssist     EventKind = "assist"
	EventYellowCard EventKind = "yellow_card"
	EventRedCard    EventKind = "red_card"
)

func (k EventKind) Valid() bool {
	switch k {
	case EventGoal, EventAssist, EventYellowCard, EventRedCard:
		return true
	}
	return false
}

type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	MatchID   uuid.UUID `db:"match_id" json:"matchId"`
	PlayerID  uuid.UUID `db:"player_id" json:"playerId"`
	Kind      EventKind `db:"kind" json:"kind"`
	Minute    int       `db:"minute" json:"minute"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Player *Player `db:"-" json:"player,omitempty"`
}

// MinuteAt converts an elapsed match clock in seconds to the event minute.
func MinuteAt(elapsedSeconds int) int {
	return elapsedSeconds / 60
}

type UpdateType string

const (
	UpdateEventAppended UpdateType = "event_appended"
	UpdateStateChanged  UpdateType = "state_changed"
)

// MatchUpdate is pushed to live subscribers after a committed write.
type MatchUpdate struct {
	Type  UpdateType `json:"type"`
	Match Match      `json:"match"`
	Event *Event     `json:"event,omitempty"`
}
