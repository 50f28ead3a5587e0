package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"companion-backend/internal/llm"
	"companion-backend/internal/models"
	"companion-backend/internal/prompt"
	"companion-backend/internal/store"

	"github.com/google/uuid"
)

// FallbackReply is returned whenever the model call or the follow-up
// persistence fails. A failed exchange is never persisted.
const FallbackReply = "Oops! I'm having a little trouble connecting right now. Maybe try again in a moment? 😊"

// ChatService orchestrates a chat exchange: load or create the conversation,
// assemble the enhanced message, call the model, and persist the clean turn
// pair.
type ChatService struct {
	store store.Store
	llm   llm.Client
}

// NewChatService creates a new ChatService.
func NewChatService(s store.Store, client llm.Client) *ChatService {
	return &ChatService{
		store: s,
		llm:   client,
	}
}

// loadOrCreateConversation returns the user's conversation, creating a
// seeded one on first contact. Concurrent first-calls both attempt the
// create; the store keeps exactly one row and the loser re-reads it.
func (s *ChatService) loadOrCreateConversation(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.store.GetConversationByUserID(ctx, userID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	fresh := &models.Conversation{
		ID:      uuid.New(),
		UserID:  userID,
		History: prompt.SeedTurns(),
	}
	if err := s.store.CreateConversation(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	// Re-read so the caller sees the stored row, whichever create won.
	conv, err = s.store.GetConversationByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload conversation: %w", err)
	}
	return conv, nil
}

// SendMessage runs one chat exchange and returns the reply text. The model
// receives the enhanced (context- and preference-decorated) message; storage
// receives only the original message and the raw reply, appended as a pair.
// Model or persistence failures yield the fixed fallback reply and leave the
// stored history untouched. Empty input is rejected at the HTTP boundary and
// never reaches this method.
func (s *ChatService) SendMessage(ctx context.Context, user *models.User, message string) (string, error) {
	conv, err := s.loadOrCreateConversation(ctx, user.ID)
	if err != nil {
		return "", err
	}

	enhanced := prompt.BuildEnhancedMessage(conv.History, user.Preferences, message)

	reply, err := s.llm.Complete(ctx, conv.History, enhanced)
	if err != nil {
		log.Printf("WARN [ChatService] model call failed for user %s: %v", user.ID, err)
		return FallbackReply, nil
	}

	userTurn := models.Turn{Role: models.RoleUser, Content: message}
	modelTurn := models.Turn{Role: models.RoleModel, Content: reply}
	if err := s.store.AppendTurns(ctx, user.ID, userTurn, modelTurn); err != nil {
		log.Printf("WARN [ChatService] failed to persist exchange for user %s: %v", user.ID, err)
		return FallbackReply, nil
	}

	return reply, nil
}

// History returns the user-visible conversation history, seed pair excluded.
// Viewing history creates the conversation if it does not exist yet.
func (s *ChatService) History(ctx context.Context, user *models.User) ([]models.HistoryMessage, error) {
	conv, err := s.loadOrCreateConversation(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	visible := prompt.VisibleHistory(conv.History)
	messages := make([]models.HistoryMessage, 0, len(visible))
	for _, turn := range visible {
		messages = append(messages, models.HistoryMessage{Role: turn.Role, Content: turn.Content})
	}
	return messages, nil
}

// ClearHistory deletes the user's conversation wholesale. Clearing an absent
// conversation is a zero-effect success.
func (s *ChatService) ClearHistory(ctx context.Context, user *models.User) (int64, error) {
	deleted, err := s.store.DeleteConversation(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return deleted, nil
}

// Summary reports conversation statistics: completed user/model pairs
// excluding the seed, plus timestamps. An absent conversation summarizes to
// zero messages with nil timestamps.
func (s *ChatService) Summary(ctx context.Context, user *models.User) (*models.SummaryResponse, error) {
	conv, err := s.store.GetConversationByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &models.SummaryResponse{MessageCount: 0}, nil
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	count := len(conv.History) - 2
	if count < 0 {
		count = 0
	}
	created := conv.CreatedAt
	updated := conv.UpdatedAt
	return &models.SummaryResponse{
		MessageCount: count / 2,
		CreatedAt:    &created,
		UpdatedAt:    &updated,
	}, nil
}
