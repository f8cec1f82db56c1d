package football

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Team struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Filled by the service, never stored
	Players       []Player `db:"-" json:"players"`
	AverageRating float64  `db:"-" json:"averageRating"`
}

func (t *Team) Owner() uuid.UUID {
	return t.OwnerID
}

// TeamProposal is an unsaved team produced by the balancer.
type TeamProposal struct {
	Name          string   `json:"name"`
	Players       []Player `json:"players"`
	AverageRating float64  `json:"averageRating"`
}

// AverageRating returns the mean rating of the players rounded to two decimals,
// or 0 when there are none.
func AverageRating(players []Player) float64 {
	if len(players) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, p := range players {
		sum = sum.Add(decimal.NewFromFloat(p.Rating))
	}
	return sum.Div(decimal.NewFromInt(int64(len(players)))).Round(2).InexactFloat64()
}
