package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"companion-backend/internal/auth"
	"companion-backend/internal/models"
	"companion-backend/pkg/httputil"
)

// ChatService defines the interface expected from the chat service.
type ChatService interface {
	SendMessage(ctx context.Context, user *models.User, message string) (string, error)
	History(ctx context.Context, user *models.User) ([]models.HistoryMessage, error)
	ClearHistory(ctx context.Context, user *models.User) (int64, error)
	Summary(ctx context.Context, user *models.User) (*models.SummaryResponse, error)
}

// ChatHandlers handles HTTP requests related to chat.
type ChatHandlers struct {
	chatService ChatService
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(chatSvc ChatService) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatSvc,
	}
}

// HandleSendMessage handles POST /v1/chat. Empty input is rejected here,
// before any storage or model work happens.
func (h *ChatHandlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Content == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Message content cannot be empty")
		return
	}

	reply, err := h.chatService.SendMessage(r.Context(), user, req.Content)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.ChatResponse{Content: reply})
}

// HandleGetHistory handles GET /v1/chat/history. The seed pair is never
// returned.
func (h *ChatHandlers) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	history, err := h.chatService.History(r.Context(), user)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, history)
}

// HandleClearHistory handles DELETE /v1/chat/history. Idempotent.
func (h *ChatHandlers) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := h.chatService.ClearHistory(r.Context(), user); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.StatusResponse{Message: "Chat history cleared successfully"})
}

// HandleGetSummary handles GET /v1/chat/summary.
func (h *ChatHandlers) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.chatService.Summary(r.Context(), user)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to load summary")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}
