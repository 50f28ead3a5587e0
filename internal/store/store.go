package store

import (
	"context"
	"errors"

	"companion-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when a user insert hits the unique email
// index. The index, not a pre-check, is the authority on uniqueness.
var ErrDuplicateEmail = errors.New("email already registered")

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserPreferences(ctx context.Context, userID uuid.UUID, prefs models.Preferences) error

	// Conversation operations. Conversations are keyed 1:1 by user id; the
	// adapter owns all history reads and writes.
	GetConversationByUserID(ctx context.Context, userID uuid.UUID) (*models.Conversation, error)
	// CreateConversation inserts a seeded conversation. If one already exists
	// for the user the insert is a no-op and the stored row wins; the caller
	// re-reads to observe it.
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	// AppendTurns atomically appends exactly two turns (user, then model) and
	// bumps the updated_at timestamp. No partial write is ever visible.
	AppendTurns(ctx context.Context, userID uuid.UUID, userTurn, modelTurn models.Turn) error
	// DeleteConversation removes the conversation document entirely and
	// reports how many rows were deleted. Deleting an absent conversation
	// returns 0, not an error.
	DeleteConversation(ctx context.Context, userID uuid.UUID) (int64, error)
}
