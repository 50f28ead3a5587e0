package services

import (
	"context"
	"strings"
	"testing"

	"companion-backend/internal/models"
	"companion-backend/internal/prompt"

	"github.com/google/uuid"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "asha@example.com",
	}
}

func TestSendMessage_FirstExchange(t *testing.T) {
	ms := newMockStore()
	fake := &fakeLLM{reply: "Hey! Great to meet you 😊"}
	svc := NewChatService(ms, fake)
	user := testUser()
	ctx := context.Background()

	reply, err := svc.SendMessage(ctx, user, "Hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if reply != "Hey! Great to meet you 😊" {
		t.Errorf("reply = %q, want the model's raw text", reply)
	}

	// The model saw the seeded history plus the enhanced message.
	if len(fake.lastHistory) != 2 {
		t.Errorf("model should receive the 2-turn seed history, got %d turns", len(fake.lastHistory))
	}
	if fake.lastMessage != "Current message: Hello" {
		t.Errorf("first exchange has no context or prefs; enhanced message = %q", fake.lastMessage)
	}

	// Storage received the ORIGINAL message, never the enhanced one.
	conv := ms.conversations[user.ID]
	if conv == nil {
		t.Fatal("conversation was not created")
	}
	if len(conv.History) != 4 {
		t.Fatalf("expected seed pair + one exchange, got %d turns", len(conv.History))
	}
	if conv.History[0].Content != prompt.Persona || conv.History[1].Content != prompt.PersonaAck {
		t.Error("conversation must begin with the seed pair")
	}
	if conv.History[2].Role != models.RoleUser || conv.History[2].Content != "Hello" {
		t.Errorf("persisted user turn = %+v, want the raw message", conv.History[2])
	}
	if conv.History[3].Role != models.RoleModel || conv.History[3].Content != reply {
		t.Errorf("persisted model turn = %+v, want the raw reply", conv.History[3])
	}
}

func TestSendMessage_EnhancedPromptCarriesContextAndPrefs(t *testing.T) {
	ms := newMockStore()
	fake := &fakeLLM{reply: "ok"}
	svc := NewChatService(ms, fake)
	user := testUser()
	user.Preferences = models.Preferences{FavoriteFood: "dosa"}
	ctx := context.Background()

	if _, err := svc.SendMessage(ctx, user, "first"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := svc.SendMessage(ctx, user, "second"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if !strings.Contains(fake.lastMessage, "--- Recent Conversation Context ---") {
		t.Errorf("second exchange should carry a context block:\n%s", fake.lastMessage)
	}
	if !strings.Contains(fake.lastMessage, "User loves: dosa") {
		t.Errorf("preferences block missing:\n%s", fake.lastMessage)
	}
	if !strings.HasSuffix(fake.lastMessage, "Current message: second") {
		t.Errorf("enhanced message should end with the current raw message:\n%s", fake.lastMessage)
	}

	// The enhanced text must never leak into storage.
	for _, turn := range ms.conversations[user.ID].History {
		if strings.Contains(turn.Content, "--- Recent Conversation Context ---") {
			t.Errorf("enhanced prompt was persisted: %q", turn.Content)
		}
	}
}

func TestSendMessage_ModelFailureFallsBack(t *testing.T) {
	ms := newMockStore()
	fake := &fakeLLM{err: errUpstream}
	svc := NewChatService(ms, fake)
	user := testUser()
	ctx := context.Background()

	reply, err := svc.SendMessage(ctx, user, "Hello")
	if err != nil {
		t.Fatalf("fallback path must not surface an error, got %v", err)
	}
	if reply != FallbackReply {
		t.Errorf("reply = %q, want the fixed fallback", reply)
	}

	// A failed exchange is never persisted: seed pair only.
	conv := ms.conversations[user.ID]
	if conv == nil {
		t.Fatal("conversation should still have been created before the call")
	}
	if len(conv.History) != 2 {
		t.Errorf("history length = %d, want 2 (no turns appended on failure)", len(conv.History))
	}
}

func TestSendMessage_PersistFailureFallsBack(t *testing.T) {
	ms := newMockStore()
	ms.appendErr = errUpstream
	fake := &fakeLLM{reply: "fine reply"}
	svc := NewChatService(ms, fake)
	user := testUser()

	reply, err := svc.SendMessage(context.Background(), user, "Hello")
	if err != nil {
		t.Fatalf("fallback path must not surface an error, got %v", err)
	}
	if reply != FallbackReply {
		t.Errorf("reply = %q, want the fixed fallback when persistence fails", reply)
	}
	if len(ms.conversations[user.ID].History) != 2 {
		t.Error("no partial exchange may be persisted")
	}
}

func TestHistory_ExcludesSeedPair(t *testing.T) {
	ms := newMockStore()
	fake := &fakeLLM{reply: "reply"}
	svc := NewChatService(ms, fake)
	user := testUser()
	ctx := context.Background()

	// Fresh conversation: history is created lazily and comes back empty.
	history, err := svc.History(ctx, user)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("fresh history should be empty, got %v", history)
	}

	if _, err := svc.SendMessage(ctx, user, "Hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	history, err = svc.History(ctx, user)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected one visible exchange, got %d messages", len(history))
	}
	if history[0].Role != models.RoleUser || history[0].Content != "Hello" {
		t.Errorf("unexpected first visible message: %+v", history[0])
	}
	if history[1].Role != models.RoleModel || history[1].Content != "reply" {
		t.Errorf("unexpected second visible message: %+v", history[1])
	}
	for _, msg := range history {
		if msg.Content == prompt.Persona || msg.Content == prompt.PersonaAck {
			t.Error("seed turns must never be returned")
		}
	}
}

func TestLoadOrCreate_Idempotent(t *testing.T) {
	ms := newMockStore()
	svc := NewChatService(ms, &fakeLLM{reply: "r"})
	user := testUser()
	ctx := context.Background()

	first, err := svc.loadOrCreateConversation(ctx, user.ID)
	if err != nil {
		t.Fatalf("loadOrCreateConversation failed: %v", err)
	}
	second, err := svc.loadOrCreateConversation(ctx, user.ID)
	if err != nil {
		t.Fatalf("loadOrCreateConversation failed: %v", err)
	}

	if first.ID != second.ID {
		t.Error("repeated loads must return the same persisted conversation")
	}
	if len(first.History) != 2 || len(second.History) != 2 {
		t.Error("both loads must see exactly the seed pair")
	}
	if ms.createConvs != 1 {
		t.Errorf("expected exactly one create attempt, got %d", ms.createConvs)
	}
}

func TestSummary(t *testing.T) {
	ms := newMockStore()
	fake := &fakeLLM{reply: "r"}
	svc := NewChatService(ms, fake)
	user := testUser()
	ctx := context.Background()

	// No conversation at all.
	summary, err := svc.Summary(ctx, user)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.MessageCount != 0 || summary.CreatedAt != nil {
		t.Errorf("absent conversation should summarize to zero, got %+v", summary)
	}

	// Seed-only conversation.
	if _, err := svc.History(ctx, user); err != nil {
		t.Fatalf("History failed: %v", err)
	}
	summary, err = svc.Summary(ctx, user)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.MessageCount != 0 {
		t.Errorf("seed-only conversation counts 0 messages, got %d", summary.MessageCount)
	}
	if summary.CreatedAt == nil || summary.UpdatedAt == nil {
		t.Error("existing conversation should report timestamps")
	}

	// N exchanges count N.
	for i := 0; i < 3; i++ {
		if _, err := svc.SendMessage(ctx, user, "hi"); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}
	summary, err = svc.Summary(ctx, user)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.MessageCount != 3 {
		t.Errorf("expected 3 completed exchanges, got %d", summary.MessageCount)
	}
}

func TestClearHistory_Idempotent(t *testing.T) {
	ms := newMockStore()
	svc := NewChatService(ms, &fakeLLM{reply: "r"})
	user := testUser()
	ctx := context.Background()

	// Clearing with no conversation is a zero-effect success.
	deleted, err := svc.ClearHistory(ctx, user)
	if err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted, got %d", deleted)
	}

	if _, err := svc.SendMessage(ctx, user, "Hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	deleted, err = svc.ClearHistory(ctx, user)
	if err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	history, err := svc.History(ctx, user)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history should be empty after clear, got %v", history)
	}
}
