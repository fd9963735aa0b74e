package gservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/hal9000y/exec-assistant/internal/auth"
)

// TokenInspector identifies the Google account behind an access token.
type TokenInspector struct {
	svc *goauth2.Service
}

// NewTokenInspector creates an inspector calling the tokeninfo endpoint.
func NewTokenInspector(ctx context.Context, opts ...option.ClientOption) (*TokenInspector, error) {
	opts = append([]option.ClientOption{option.WithoutAuthentication()}, opts...)

	svc, err := goauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("oauth2.NewService failed: %w", err)
	}

	return &TokenInspector{svc: svc}, nil
}

// Inspect returns the identity, scopes and expiry of accessToken.
func (i *TokenInspector) Inspect(ctx context.Context, accessToken string) (*auth.Identity, error) {
	info, err := i.svc.Tokeninfo().AccessToken(accessToken).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("tokeninfo failed: %w", err)
	}

	return &auth.Identity{
		UserID: info.UserId,
		Email:  info.Email,
		Scopes: strings.Fields(info.Scope),
		Expiry: time.Now().Add(time.Duration(info.ExpiresIn) * time.Second),
	}, nil
}
