package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
	"golang.org/x/oauth2"
)

// Identity describes the Google account behind an access token.
type Identity struct {
	UserID string
	Email  string
	Scopes []string
	Expiry time.Time
}

type inspector interface {
	Inspect(ctx context.Context, accessToken string) (*Identity, error)
}

type tokenStore interface {
	Token(userID string) (*oauth2.Token, error)
	SaveToken(userID string, tok *oauth2.Token) error
}

type sessionParser interface {
	Parse(token string) (*SessionClaims, error)
}

// NewPassthroughVerifier accepts Google access tokens as bearer credentials.
func NewPassthroughVerifier(insp inspector) mcpauth.TokenVerifier {
	return func(ctx context.Context, token string, _ *http.Request) (*mcpauth.TokenInfo, error) {
		id, err := insp.Inspect(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("%w: insp.Inspect failed: %v", mcpauth.ErrInvalidToken, err)
		}

		c := &Credential{
			UserID: id.UserID,
			Email:  id.Email,
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: token,
				TokenType:   "Bearer",
				Expiry:      id.Expiry,
			}),
		}

		return NewTokenInfo(c, id.Scopes, id.Expiry), nil
	}
}

// NewSessionVerifier accepts session tokens and resolves them to the stored Google token.
func NewSessionVerifier(sessions sessionParser, tokens tokenStore, cfg *oauth2.Config) mcpauth.TokenVerifier {
	return func(ctx context.Context, token string, _ *http.Request) (*mcpauth.TokenInfo, error) {
		claims, err := sessions.Parse(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mcpauth.ErrInvalidToken, err)
		}

		tok, err := tokens.Token(claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("%w: tokens.Token failed: %v", mcpauth.ErrInvalidToken, err)
		}

		c := &Credential{
			UserID: claims.Subject,
			Email:  claims.Email,
			Source: &persistingSource{
				src:    cfg.TokenSource(ctx, tok),
				tokens: tokens,
				userID: claims.Subject,
				last:   tok.AccessToken,
			},
		}

		return NewTokenInfo(c, nil, claims.ExpiresAt.Time), nil
	}
}

// persistingSource saves refreshed tokens back to the store.
type persistingSource struct {
	mu     sync.Mutex
	src    oauth2.TokenSource
	tokens tokenStore
	userID string
	last   string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccessToken != s.last {
		if err := s.tokens.SaveToken(s.userID, tok); err != nil {
			return nil, fmt.Errorf("tokens.SaveToken failed: %w", err)
		}
		s.last = tok.AccessToken
	}

	return tok, nil
}
