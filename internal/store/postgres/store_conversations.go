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
)

// GetConversationByUserID retrieves the single conversation owned by a user.
// Returns store.ErrNotFound if none exists yet.
func (s *PostgresStore) GetConversationByUserID(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	query := `
		SELECT id, user_id, history, created_at, updated_at
		FROM conversations
		WHERE user_id = $1`

	conv := &models.Conversation{}
	var historyRaw []byte
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&conv.ID,
		&conv.UserID,
		&historyRaw,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetConversationByUserID: failed to query/scan conversation for user %s: %v", userID, err)
		return nil, fmt.Errorf("database error fetching conversation: %w", err)
	}

	if err := json.Unmarshal(historyRaw, &conv.History); err != nil {
		return nil, fmt.Errorf("failed to parse conversation history: %w", err)
	}

	return conv, nil
}

// CreateConversation inserts a new seeded conversation for a user.
// Concurrent first-chats can race on the create; ON CONFLICT DO NOTHING lets
// the first insert win, and callers re-read to observe the stored row.
func (s *PostgresStore) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	historyJSON, err := json.Marshal(conv.History)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation history: %w", err)
	}

	query := `
		INSERT INTO conversations (id, user_id, history)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING`

	_, err = s.db.Exec(ctx, query, conv.ID, conv.UserID, historyJSON)
	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateConversation: failed to insert conversation for user %s: %v", conv.UserID, err)
		return fmt.Errorf("database error creating conversation: %w", err)
	}

	return nil
}

// AppendTurns appends the user/model turn pair to the history JSONB in a
// single UPDATE, so readers never observe a half-written exchange.
func (s *PostgresStore) AppendTurns(ctx context.Context, userID uuid.UUID, userTurn, modelTurn models.Turn) error {
	pairJSON, err := json.Marshal([]models.Turn{userTurn, modelTurn})
	if err != nil {
		return fmt.Errorf("failed to marshal turn pair: %w", err)
	}

	query := `
		UPDATE conversations
		SET history = history || $1::jsonb, updated_at = NOW()
		WHERE user_id = $2`

	tag, err := s.db.Exec(ctx, query, pairJSON, userID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] AppendTurns: failed to append turns for user %s: %v", userID, err)
		return fmt.Errorf("database error appending turns: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// DeleteConversation removes a user's conversation wholesale. Idempotent:
// deleting an absent conversation reports zero rows, not an error.
func (s *PostgresStore) DeleteConversation(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM conversations WHERE user_id = $1`

	tag, err := s.db.Exec(ctx, query, userID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteConversation: failed to delete conversation for user %s: %v", userID, err)
		return 0, fmt.Errorf("database error deleting conversation: %w", err)
	}

	return tag.RowsAffected(), nil
}
