package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/middleware"
	"github.com/google/uuid"
)

type ownedResource interface {
	Owner() uuid.UUID
}

// currentUserID returns the caller resolved by the auth middleware.
func currentUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, football.ErrUnauthenticated
	}
	return userID, nil
}

// assertOwnership is the single authorization check every operation goes through.
func assertOwnership(resource ownedResource, userID uuid.UUID) error {
	if resource.Owner() != userID {
		return fmt.Errorf("%w: resource belongs to another user", football.ErrForbidden)
	}
	return nil
}

func notFound(err error, what string, id uuid.UUID) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %s", football.ErrNotFound, what, id)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", football.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", football.ErrInvalidState, fmt.Sprintf(format, args...))
}
