package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/AdamBeresnev/matchmaker/internal/store"
	users "github.com/AdamBeresnev/matchmaker/internal/user"
	"github.com/AdamBeresnev/matchmaker/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

var errBadCredentials = fmt.Errorf("%w: invalid email or password", football.ErrUnauthenticated)

type UserService struct {
	db    *sqlx.DB
	store *store.UserStore
}

func NewUserService(db *sqlx.DB, store *store.UserStore) *UserService {
	return &UserService{db: db, store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*users.User, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, invalidInput("name and email are required")
	}
	if len(in.Password) < 6 {
		return nil, invalidInput("password must be at least 6 characters")
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, invalidInput("email %s is already registered", email)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     name,
		PasswordHash: utils.Ptr(string(hash)),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, invalidInput("email %s is already registered", email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks a password login. Unknown emails and wrong passwords fail the
// same way.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*users.User, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == nil {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errBadCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

// FindOrCreateUserByProvider signs in an OAuth user. A known provider account
// refreshes its name and avatar, a known email is reused, anything else
// becomes a new user.
func (s *UserService) FindOrCreateUserByProvider(ctx context.Context, gothUser goth.User) (*users.User, error) {
	name := gothUser.NickName
	if name == "" {
		name = gothUser.Name
	}
	avatar := utils.StringOrNil(gothUser.AvatarURL)

	user, err := s.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)
	if err == nil {
		if utils.OrZero(user.AvatarURL) != utils.OrZero(avatar) || (name != "" && user.Username != name) {
			if name != "" {
				user.Username = name
			}
			user.AvatarURL = avatar
			if err := s.store.UpdateUserNameAndAvatar(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to refresh user profile: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	email := normalizeEmail(gothUser.Email)
	if email == "" {
		email = fmt.Sprintf("%s-%s@users.noreply", gothUser.Provider, gothUser.UserID)
	}
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if name == "" {
		name = email
	}
	newUser := &users.User{
		ID:         uuid.New(),
		Email:      email,
		Username:   name,
		CreatedAt:  time.Now().UTC(),
		Provider:   utils.Ptr(gothUser.Provider),
		ProviderID: utils.Ptr(gothUser.UserID),
		AvatarURL:  avatar,
	}
	if err := s.store.CreateUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return newUser, nil
}
