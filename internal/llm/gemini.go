package llm

import (
	"context"
	"fmt"
	"log"

	"companion-backend/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Compile-time check to ensure GeminiClient implements Client
var _ Client = (*GeminiClient)(nil)

// GeminiClient calls the Gemini chat API through the official SDK.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed completion client. A missing API
// key is a configuration error surfaced here so startup can fail fast.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Printf("Gemini client initialized (model: %s)", model)
	return &GeminiClient{client: client, model: model}, nil
}

// Complete starts a chat session seeded with the stored history and sends
// the (already enhanced) message as the newest user entry. The sent entry is
// transient; persistence is the caller's concern.
func (g *GeminiClient) Complete(ctx context.Context, history []models.Turn, message string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	session := model.StartChat()

	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	session.History = contents

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var reply string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply += string(text)
		}
	}
	if reply == "" {
		return "", fmt.Errorf("gemini candidate contained no text parts")
	}

	return reply, nil
}

// Close releases the underlying SDK connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}
