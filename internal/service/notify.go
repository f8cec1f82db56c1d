package service

import (
	"context"

	"github.com/AdamBeresnev/matchmaker/internal/football"
)

// MatchNotifier receives committed match changes. Implementations must not
// block and must not fail the caller.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, update football.MatchUpdate)
}

// MatchNotifiers fans an update out to every notifier.
type MatchNotifiers []MatchNotifier

func (n MatchNotifiers) NotifyMatch(ctx context.Context, update football.MatchUpdate) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.NotifyMatch(ctx, update)
		}
	}
}
