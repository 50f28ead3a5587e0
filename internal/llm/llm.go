package llm

import (
	"context"

	"companion-backend/internal/models"
)

// Client is the text-completion capability the orchestrator depends on.
// Complete sends the prior history plus a new user message and returns the
// model's reply text. Failures carry no structured taxonomy; callers treat
// any error as an upstream failure and fall back.
type Client interface {
	Complete(ctx context.Context, history []models.Turn, message string) (string, error)
}
