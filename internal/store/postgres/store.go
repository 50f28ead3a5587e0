package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"companion-backend/internal/models"
	"companion-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetUserByEmail retrieves a user by their email address.
// Emails are matched case-sensitively, exactly as stored.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, hashed_password, preferences, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &models.User{}
	var prefsRaw []byte
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.HashedPassword,
		&prefsRaw,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByEmail: failed to query/scan user: %v", err)
		return nil, fmt.Errorf("database error fetching user by email: %w", err)
	}

	if len(prefsRaw) > 0 {
		if err := json.Unmarshal(prefsRaw, &user.Preferences); err != nil {
			return nil, fmt.Errorf("failed to parse user preferences: %w", err)
		}
	}

	return user, nil
}

// CreateUser inserts a new user record into the database.
// A unique-index violation on email maps to store.ErrDuplicateEmail.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	prefsJSON, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal user preferences: %w", err)
	}

	query := `
		INSERT INTO users (id, email, first_name, last_name, hashed_password, preferences)
		VALUES ($1, $2, $3, $4, $5, $6)`
	// created_at and updated_at have database defaults (NOW())

	_, err = s.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.HashedPassword,
		prefsJSON,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return store.ErrDuplicateEmail
		}
		log.Printf("ERROR [PostgresStore] CreateUser: failed to execute insert for email %s: %v", user.Email, err)
		return fmt.Errorf("database error creating user: %w", err)
	}

	return nil
}

// UpdateUserPreferences replaces the preferences JSONB for a user.
func (s *PostgresStore) UpdateUserPreferences(ctx context.Context, userID uuid.UUID, prefs models.Preferences) error {
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal user preferences: %w", err)
	}

	query := `
		UPDATE users
		SET preferences = $1, updated_at = NOW()
		WHERE id = $2`

	tag, err := s.db.Exec(ctx, query, prefsJSON, userID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] UpdateUserPreferences: failed to update user %s: %v", userID, err)
		return fmt.Errorf("database error updating preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
