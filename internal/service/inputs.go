package service

import (
	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/google/uuid"
)

type PlayerInput struct {
	Name     string            `json:"name" validate:"required,max=100"`
	Position football.Position `json:"position" validate:"required,oneof=goalkeeper defense midfield attack"`
	Rating   float64           `json:"rating" validate:"required,gte=1,lte=5"`
	Status   football.Status   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// PlayerUpdate changes only the fields that are set.
type PlayerUpdate struct {
	Name     *string            `json:"name" validate:"omitempty,min=1,max=100"`
	Position *football.Position `json:"position" validate:"omitempty,oneof=goalkeeper defense midfield attack"`
	Rating   *float64           `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Status   *football.Status   `json:"status" validate:"omitempty,oneof=active inactive"`
}

type TeamInput struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Status    football.Status `json:"status" validate:"omitempty,oneof=active inactive"`
	PlayerIDs []uuid.UUID     `json:"playerIds"`
}

// TeamUpdate replaces the roster only when PlayerIDs is present.
type TeamUpdate struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Status    *football.Status `json:"status" validate:"omitempty,oneof=active inactive"`
	PlayerIDs *[]uuid.UUID     `json:"playerIds"`
}

type GenerateTeamsInput struct {
	PlayerIDs      []uuid.UUID `json:"playerIds" validate:"required,min=1"`
	TeamCount      int         `json:"teamCount" validate:"required,min=1"`
	PlayersPerTeam *int        `json:"playersPerTeam" validate:"omitempty,min=1"`
}

type CreateMatchInput struct {
	TeamAID uuid.UUID             `json:"teamAId" validate:"required"`
	TeamBID uuid.UUID             `json:"teamBId" validate:"required"`
	Status  *football.MatchStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress"`
}

type UpdateMatchInput struct {
	Status         *football.MatchStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress paused finished"`
	ElapsedSeconds *int                  `json:"elapsedSeconds" validate:"omitempty,min=0"`
	ScoreA         *int                  `json:"scoreA"`
	ScoreB         *int                  `json:"scoreB"`
}

type EventInput struct {
	Kind           football.EventKind `json:"kind" validate:"required,oneof=goal assist yellow_card red_card"`
	PlayerID       uuid.UUID          `json:"playerId" validate:"required"`
	ElapsedSeconds *int               `json:"elapsedSeconds" validate:"omitempty,min=0"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
