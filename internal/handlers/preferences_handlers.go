package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"companion-backend/internal/auth"
	"companion-backend/internal/models"
	"companion-backend/pkg/httputil"
)

// PreferencesService defines the interface expected from the preferences
// service.
type PreferencesService interface {
	Get(user *models.User) models.Preferences
	Update(ctx context.Context, user *models.User, prefs models.Preferences) (models.Preferences, error)
}

type PreferencesHandler struct {
	prefsService PreferencesService
}

func NewPreferencesHandler(prefsSvc PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		prefsService: prefsSvc,
	}
}

// HandleGetPreferences handles GET /v1/me/preferences.
func (h *PreferencesHandler) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	prefs := h.prefsService.Get(user)
	httputil.RespondJSON(w, http.StatusOK, models.PreferencesResponse{Preferences: prefs})
}

// HandleUpdatePreferences handles PUT /v1/me/preferences.
func (h *PreferencesHandler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := h.prefsService.Update(r.Context(), user, req.Preferences)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.PreferencesResponse{Preferences: updated})
}
