package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const stateTTL = 5 * time.Minute

// Flow drives the Google OAuth2 authorization code flow.
type Flow struct {
	mu         sync.Mutex
	cfg        *oauth2.Config
	stateStore map[string]time.Time
}

// NewFlow creates a code flow for cfg.
func NewFlow(cfg *oauth2.Config) *Flow {
	return &Flow{
		cfg:        cfg,
		stateStore: make(map[string]time.Time),
	}
}

// RedirectURL generates the consent URL with a single-use random state.
func (f *Flow) RedirectURL() (string, error) {
	state, err := f.generateState()
	if err != nil {
		return "", fmt.Errorf("generateState failed: %w", err)
	}

	return f.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

func (f *Flow) generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	f.stateStore[state] = now.Add(stateTTL)

	for s, exp := range f.stateStore {
		if exp.Before(now) {
			delete(f.stateStore, s)
		}
	}

	return state, nil
}

func (f *Flow) validateState(state string) bool {
	if state == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	expiry, exists := f.stateStore[state]
	if !exists {
		return false
	}

	delete(f.stateStore, state)

	return !time.Now().After(expiry)
}

// AuthorizeCode exchanges an authorization code for a token after validating state.
func (f *Flow) AuthorizeCode(ctx context.Context, code string, state string) (*oauth2.Token, error) {
	if !f.validateState(state) {
		return nil, errors.New("invalid or expired state parameter")
	}

	tok, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("cfg.Exchange failed: %w", err)
	}

	return tok, nil
}
