package football

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Position string

const (
	Goalkeeper Position = "goalkeeper"
	Defense    Position = "defense"
	Midfield   Position = "midfield"
	Attack     Position = "attack"
)

func (p Position) Valid() bool {
	switch p {
	case Goalkeeper, Defense, Midfield, Attack:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

const (
	MinRating  = 1.0
	MaxRating  = 5.0
	RatingStep = 0.5
)

// ValidRating reports whether r lies in [MinRating, MaxRating] on a RatingStep grid.
func ValidRating(r float64) bool {
	if r < MinRating || r > MaxRating {
		return false
	}
	return decimal.NewFromFloat(r).Mod(decimal.NewFromFloat(RatingStep)).IsZero()
}

type Player struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	OwnerID   uuid.UUID  `db:"owner_id" json:"-"`
	TeamID    *uuid.UUID `db:"team_id" json:"teamId"`
	Name      string     `db:"name" json:"name"`
	Position  Position   `db:"position" json:"position"`
	Rating    float64    `db:"rating" json:"rating"`
	Status    Status     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

func (p *Player) Owner() uuid.UUID {
	return p.OwnerID
}

func (p *Player) OnTeam(teamID uuid.UUID) bool {
	return p.TeamID != nil && *p.TeamID == teamID
}
