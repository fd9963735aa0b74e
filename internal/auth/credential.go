// Package auth resolves bearer credentials into Google OAuth token sources.
package auth

import (
	"context"
	"errors"
	"time"

	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
	"golang.org/x/oauth2"
)

// ErrCredentialMissing indicates the context carries no verified credential.
var ErrCredentialMissing = errors.New("no credential in context")

const credentialExtraKey = "credential"

// Credential is a verified caller and the Google token source acting on their behalf.
type Credential struct {
	UserID string
	Email  string
	Source oauth2.TokenSource
}

type credentialKey struct{}

// WithCredential returns a copy of ctx carrying c.
func WithCredential(ctx context.Context, c *Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, c)
}

// CredentialFromContext returns the credential set by WithCredential or by the bearer middleware.
func CredentialFromContext(ctx context.Context) (*Credential, error) {
	if c, ok := ctx.Value(credentialKey{}).(*Credential); ok && c != nil {
		return c, nil
	}

	if c := CredentialFromTokenInfo(mcpauth.TokenInfoFromContext(ctx)); c != nil {
		return c, nil
	}

	return nil, ErrCredentialMissing
}

// CredentialFromTokenInfo extracts the credential a verifier attached to ti.
func CredentialFromTokenInfo(ti *mcpauth.TokenInfo) *Credential {
	if ti == nil {
		return nil
	}
	c, _ := ti.Extra[credentialExtraKey].(*Credential)

	return c
}

// NewTokenInfo wraps c for the bearer middleware.
func NewTokenInfo(c *Credential, scopes []string, exp time.Time) *mcpauth.TokenInfo {
	return &mcpauth.TokenInfo{
		Scopes:     scopes,
		Expiration: exp,
		Extra:      map[string]any{credentialExtraKey: c},
	}
}
