// Package gservice wraps the Google APIs called on behalf of the authenticated user.
package gservice

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/hal9000y/exec-assistant/internal/auth"
)

// clientOptions builds API client options from the credential carried by ctx.
// Extra options come last so they can override the endpoint.
func clientOptions(ctx context.Context, extra []option.ClientOption) ([]option.ClientOption, error) {
	c, err := auth.CredentialFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.CredentialFromContext failed: %w", err)
	}

	opts := make([]option.ClientOption, 0, len(extra)+1)
	opts = append(opts, option.WithHTTPClient(oauth2.NewClient(ctx, c.Source)))

	return append(opts, extra...), nil
}
