package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChatRequest defines the body for sending a chat message.
type ChatRequest struct {
	Content string `json:"content"`
}

// UpdatePreferencesRequest defines the body for replacing user preferences.
type UpdatePreferencesRequest struct {
	Preferences Preferences `json:"preferences"`
}

// --- Response Structs ---

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ChatResponse carries the model's reply text.
type ChatResponse struct {
	Content string `json:"content"`
}

// HistoryMessage is one user-visible turn of stored history.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SummaryResponse reports conversation statistics, excluding the seed pair.
type SummaryResponse struct {
	MessageCount int        `json:"message_count"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// PreferencesResponse wraps the stored preferences.
type PreferencesResponse struct {
	Preferences Preferences `json:"preferences"`
}

// StatusResponse is a generic human-readable status message.
type StatusResponse struct {
	Message string `json:"message"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
