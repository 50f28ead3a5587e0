package models

import (
	"time"

	"github.com/google/uuid"
)

// Turn roles as stored in conversation history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// User represents a user in the database.
type User struct {
	ID             uuid.UUID   `db:"id"`
	Email          string      `db:"email"`
	FirstName      string      `db:"first_name"`
	LastName       string      `db:"last_name"`
	HashedPassword string      `db:"hashed_password"`
	Preferences    Preferences `db:"preferences"` // Stored as JSONB
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

// Turn is one role-tagged message unit in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation holds the full ordered history for one user (1:1 by user id).
// The first two turns are always the persona/acknowledgment seed pair and are
// never exposed through the API.
type Conversation struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	History   []Turn    `db:"history"` // Stored as JSONB
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
