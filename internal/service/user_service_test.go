package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/utils"
	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, RegisterInput{Name: "Marta", Email: " Marta@Example.com ", Password: "golazo10"})
	require.NoError(t, err)
	assert.Equal(t, "marta@example.com", user.Email)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "golazo10", *user.PasswordHash)

	_, err = env.users.Register(ctx, RegisterInput{Name: "Copy", Email: "MARTA@example.com", Password: "another1"})
	assert.ErrorIs(t, err, football.ErrInvalidInput)

	_, err = env.users.Register(ctx, RegisterInput{Name: "Short", Email: "short@example.com", Password: "abc"})
	assert.ErrorIs(t, err, football.ErrInvalidInput)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "marta@example.com", "golazo10", nil},
		{"email case ignored", "MARTA@EXAMPLE.COM", "golazo10", nil},
		{"wrong password", "marta@example.com", "golazo11", football.ErrUnauthenticated},
		{"unknown email", "nobody@example.com", "golazo10", football.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.users.Login(ctx, LoginInput{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestRegisterLosesRaceForEmail(t *testing.T) {
	env := newTestEnv(t)

	// A concurrent registration claims the email between lookup and insert.
	_, err := env.db.Exec(`CREATE TRIGGER concurrent_signup BEFORE INSERT ON users
		WHEN NEW.username = 'Late'
		BEGIN INSERT INTO users (id, email, username) VALUES ('early', NEW.email, 'Early'); END`)
	require.NoError(t, err)

	_, err = env.users.Register(context.Background(), RegisterInput{Name: "Late", Email: "race@example.com", Password: "golazo10"})
	assert.ErrorIs(t, err, football.ErrInvalidInput)
	assert.Contains(t, err.Error(), "already registered")
}

func TestFindOrCreateUserByProvider(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	gothUser := goth.User{
		Provider:  "discord",
		UserID:    "42",
		Email:     "pele@example.com",
		NickName:  "pele",
		AvatarURL: "https://cdn.example/1.png",
	}
	created, err := env.users.FindOrCreateUserByProvider(ctx, gothUser)
	require.NoError(t, err)
	assert.Equal(t, "pele", created.Username)
	assert.Equal(t, "discord", utils.OrZero(created.Provider))

	gothUser.NickName = "rei"
	gothUser.AvatarURL = "https://cdn.example/2.png"
	again, err := env.users.FindOrCreateUserByProvider(ctx, gothUser)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	stored, err := env.users.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rei", stored.Username)
	assert.Equal(t, "https://cdn.example/2.png", utils.OrZero(stored.AvatarURL))

	t.Run("provider accounts have no password login", func(t *testing.T) {
		_, err := env.users.Login(ctx, LoginInput{Email: "pele@example.com", Password: "anything"})
		assert.ErrorIs(t, err, football.ErrUnauthenticated)
	})

	t.Run("missing email gets a placeholder", func(t *testing.T) {
		u, err := env.users.FindOrCreateUserByProvider(ctx, goth.User{Provider: "google", UserID: "7", Name: "Garrincha"})
		require.NoError(t, err)
		assert.Equal(t, "google-7@users.noreply", u.Email)
		assert.Nil(t, u.AvatarURL)
	})
}
