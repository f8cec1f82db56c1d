package views

import (
	"context"

	"github.com/AdamBeresnev/matchmaker/internal/middleware"
	users "github.com/AdamBeresnev/matchmaker/internal/user"
)

func GetUser(ctx context.Context) *users.User {
	return middleware.GetAuthenticatedUser(ctx)
}
