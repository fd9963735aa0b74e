package auth_test

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/hal9000y/exec-assistant/internal/auth"
)

type inspectorMock struct {
	InspectFunc func(ctx context.Context, accessToken string) (*auth.Identity, error)
}

func (m *inspectorMock) Inspect(ctx context.Context, accessToken string) (*auth.Identity, error) {
	return m.InspectFunc(ctx, accessToken)
}

type tokenStoreMock struct {
	mu     sync.Mutex
	tokens map[string]*oauth2.Token
}

func newTokenStoreMock() *tokenStoreMock {
	return &tokenStoreMock{tokens: make(map[string]*oauth2.Token)}
}

func (m *tokenStoreMock) Token(userID string) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, ok := m.tokens[userID]
	if !ok {
		return nil, auth.ErrCredentialMissing
	}
	return tok, nil
}

func (m *tokenStoreMock) SaveToken(userID string, tok *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[userID] = tok
	return nil
}

type codeFlowMock struct {
	RedirectURLFunc   func() (string, error)
	AuthorizeCodeFunc func(ctx context.Context, code, state string) (*oauth2.Token, error)
}

func (m *codeFlowMock) RedirectURL() (string, error) {
	return m.RedirectURLFunc()
}

func (m *codeFlowMock) AuthorizeCode(ctx context.Context, code, state string) (*oauth2.Token, error) {
	return m.AuthorizeCodeFunc(ctx, code, state)
}
