package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/config"
	"github.com/AdamBeresnev/matchmaker/internal/httputil"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	users "github.com/AdamBeresnev/matchmaker/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/discord"
	"github.com/markbates/goth/providers/google"
	log "github.com/sirupsen/logrus"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

// SessionUserKey is the session entry holding the signed in user id.
const SessionUserKey = "userID"

const tokenUserClaim = "user_id"

// InitAuth registers the OAuth providers that have credentials and returns
// their names.
func InitAuth(cfg config.OAuth) []string {
	var providers []goth.Provider
	if cfg.DiscordKey != "" {
		providers = append(providers, discord.New(cfg.DiscordKey, cfg.DiscordSecret, cfg.DiscordCallbackURL, discord.ScopeIdentify, discord.ScopeEmail))
	}
	if cfg.GoogleKey != "" {
		providers = append(providers, google.New(cfg.GoogleKey, cfg.GoogleSecret, cfg.GoogleCallbackURL, "email", "profile"))
	}
	goth.UseProviders(providers...)

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	log.WithField("providers", names).Info("OAuth providers registered")
	return names
}

// IssueToken signs a bearer token for the user that expires after ttl.
func IssueToken(tokenAuth *jwtauth.JWTAuth, userID uuid.UUID, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{tokenUserClaim: userID.String()}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, ttl)
	_, tokenString, err := tokenAuth.Encode(claims)
	return tokenString, err
}

// LoadAuthenticatedUser resolves the caller from a verified bearer token or,
// failing that, from the session cookie. It never rejects a request; use
// RequireAuth for that. Must run after jwtauth.Verifier and LoadAndSave.
func LoadAuthenticatedUser(sessionManager *scs.SessionManager, userStore *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userIDStr := ""
			if token, claims, err := jwtauth.FromContext(ctx); err == nil && token != nil {
				userIDStr, _ = claims[tokenUserClaim].(string)
			}
			if userIDStr == "" {
				userIDStr = sessionManager.GetString(ctx, SessionUserKey)
			}
			if userIDStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				sessionManager.Remove(ctx, SessionUserKey)
				next.ServeHTTP(w, r)
				return
			}

			// A deleted user keeps a valid token or cookie until it expires
			user, err := userStore.GetUser(ctx, userID)
			if err != nil {
				log.WithError(err).WithField("user_id", userID).Debug("authenticated user not found")
				next.ServeHTTP(w, r)
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, user.ID)
			ctx = context.WithValue(ctx, users.UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without an authenticated user with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			httputil.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(UserIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}

func GetAuthenticatedUser(ctx context.Context) *users.User {
	val := ctx.Value(users.UserKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*users.User)
	if !ok {
		return nil
	}
	return user
}
