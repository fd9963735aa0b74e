package store

import (
	"errors"
	"fmt"
)

// UserSettings is where a user's digests are delivered.
type UserSettings struct {
	ZapierWebhookURL string `json:"zapier_webhook_url"`
	Email            string `json:"email"`
}

// SaveSettings upserts the settings of userID.
func (s *Store) SaveSettings(userID string, settings UserSettings) error {
	if err := s.put(settingsPrefix+userID, settings); err != nil {
		return fmt.Errorf("put settings for %s failed: %w", userID, err)
	}

	return nil
}

// Settings returns the settings of userID or ErrNotFound.
func (s *Store) Settings(userID string) (*UserSettings, error) {
	settings := &UserSettings{}
	if err := s.get(settingsPrefix+userID, settings); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get settings for %s failed: %w", userID, err)
	}

	return settings, nil
}
