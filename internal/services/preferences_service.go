package services

import (
	"context"
	"fmt"
	"log"

	"companion-backend/internal/models"
	"companion-backend/internal/store"
)

// PreferencesService manages the personalization fields rendered into each
// enhanced prompt.
type PreferencesService struct {
	store store.Store
}

func NewPreferencesService(s store.Store) *PreferencesService {
	return &PreferencesService{store: s}
}

// Get returns the stored preferences for a user. The middleware reloads the
// user on every request, so the attached preferences are current.
func (s *PreferencesService) Get(user *models.User) models.Preferences {
	return user.Preferences
}

// Update replaces a user's preferences wholesale. Unrecognized keys survive
// in the extension map.
func (s *PreferencesService) Update(ctx context.Context, user *models.User, prefs models.Preferences) (models.Preferences, error) {
	if err := s.store.UpdateUserPreferences(ctx, user.ID, prefs); err != nil {
		log.Printf("Error updating preferences for user %s: %v", user.ID, err)
		return models.Preferences{}, fmt.Errorf("failed to update preferences: %w", err)
	}
	return prefs, nil
}
