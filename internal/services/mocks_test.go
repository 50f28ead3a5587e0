package services

import (
	"context"
	"errors"
	"time"

	"companion-backend/internal/models"
	"companion-backend/internal/store"

	"github.com/google/uuid"
)

// mockStore is an in-memory store.Store used by the service tests.
type mockStore struct {
	usersByEmail  map[string]*models.User
	conversations map[uuid.UUID]*models.Conversation

	createUserErr error
	appendErr     error
	createConvs   int // number of CreateConversation calls
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		usersByEmail:  make(map[string]*models.User),
		conversations: make(map[uuid.UUID]*models.Conversation),
	}
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.usersByEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *mockStore) CreateUser(ctx context.Context, user *models.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	if _, exists := m.usersByEmail[user.Email]; exists {
		return store.ErrDuplicateEmail
	}
	cp := *user
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.usersByEmail[user.Email] = &cp
	return nil
}

func (m *mockStore) UpdateUserPreferences(ctx context.Context, userID uuid.UUID, prefs models.Preferences) error {
	for _, u := range m.usersByEmail {
		if u.ID == userID {
			u.Preferences = prefs
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *mockStore) GetConversationByUserID(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	conv, ok := m.conversations[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *conv
	cp.History = append([]models.Turn(nil), conv.History...)
	return &cp, nil
}

func (m *mockStore) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	m.createConvs++
	if _, exists := m.conversations[conv.UserID]; exists {
		return nil // first insert wins, mirror of ON CONFLICT DO NOTHING
	}
	cp := *conv
	cp.History = append([]models.Turn(nil), conv.History...)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.conversations[conv.UserID] = &cp
	return nil
}

func (m *mockStore) AppendTurns(ctx context.Context, userID uuid.UUID, userTurn, modelTurn models.Turn) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	conv, ok := m.conversations[userID]
	if !ok {
		return store.ErrNotFound
	}
	conv.History = append(conv.History, userTurn, modelTurn)
	conv.UpdatedAt = time.Now()
	return nil
}

func (m *mockStore) DeleteConversation(ctx context.Context, userID uuid.UUID) (int64, error) {
	if _, ok := m.conversations[userID]; !ok {
		return 0, nil
	}
	delete(m.conversations, userID)
	return 1, nil
}

// fakeLLM records what it was called with and returns a canned reply or a
// fixed error.
type fakeLLM struct {
	reply string
	err   error

	calls       int
	lastHistory []models.Turn
	lastMessage string
}

func (f *fakeLLM) Complete(ctx context.Context, history []models.Turn, message string) (string, error) {
	f.calls++
	f.lastHistory = append([]models.Turn(nil), history...)
	f.lastMessage = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var errUpstream = errors.New("upstream unavailable")
