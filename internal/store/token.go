package store

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// SaveToken stores the Google OAuth token of userID.
func (s *Store) SaveToken(userID string, tok *oauth2.Token) error {
	if err := s.put(tokenPrefix+userID, tok); err != nil {
		return fmt.Errorf("put token for %s failed: %w", userID, err)
	}

	return nil
}

// Token returns the Google OAuth token of userID or ErrNotFound.
func (s *Store) Token(userID string) (*oauth2.Token, error) {
	tok := &oauth2.Token{}
	if err := s.get(tokenPrefix+userID, tok); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get token for %s failed: %w", userID, err)
	}

	return tok, nil
}
