package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/hal9000y/exec-assistant/internal/auth"
)

func TestPassthroughVerifier(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)
	verify := auth.NewPassthroughVerifier(&inspectorMock{
		InspectFunc: func(_ context.Context, accessToken string) (*auth.Identity, error) {
			if accessToken != "good" {
				return nil, errors.New("invalid_token")
			}
			return &auth.Identity{UserID: "u-1", Email: "one@example.com", Scopes: []string{"s1"}, Expiry: expiry}, nil
		},
	})

	ti, err := verify(context.Background(), "good", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ti.Scopes)
	assert.Equal(t, expiry, ti.Expiration)

	c := auth.CredentialFromTokenInfo(ti)
	require.NotNil(t, c)
	assert.Equal(t, "u-1", c.UserID)

	tok, err := c.Source.Token()
	require.NoError(t, err)
	assert.Equal(t, "good", tok.AccessToken)

	_, err = verify(context.Background(), "bad", nil)
	require.ErrorIs(t, err, mcpauth.ErrInvalidToken)
}

func TestSessionVerifier(t *testing.T) {
	sessions := auth.NewSessions("0123456789abcdef0123456789abcdef", time.Hour)
	tokens := newTokenStoreMock()
	require.NoError(t, tokens.SaveToken("u-1", &oauth2.Token{
		AccessToken: "google-access",
		Expiry:      time.Now().Add(time.Hour),
	}))

	verify := auth.NewSessionVerifier(sessions, tokens, &oauth2.Config{})

	session, _, err := sessions.Issue("u-1", "one@example.com")
	require.NoError(t, err)

	ti, err := verify(context.Background(), session, nil)
	require.NoError(t, err)

	c := auth.CredentialFromTokenInfo(ti)
	require.NotNil(t, c)
	assert.Equal(t, "one@example.com", c.Email)

	tok, err := c.Source.Token()
	require.NoError(t, err)
	assert.Equal(t, "google-access", tok.AccessToken)

	unknown, _, err := sessions.Issue("u-2", "")
	require.NoError(t, err)
	_, err = verify(context.Background(), unknown, nil)
	require.ErrorIs(t, err, mcpauth.ErrInvalidToken)

	_, err = verify(context.Background(), "google-access", nil)
	require.ErrorIs(t, err, mcpauth.ErrInvalidToken)
}

func TestCredentialFromContextThroughMiddleware(t *testing.T) {
	verify := auth.NewPassthroughVerifier(&inspectorMock{
		InspectFunc: func(context.Context, string) (*auth.Identity, error) {
			return &auth.Identity{UserID: "u-1", Expiry: time.Now().Add(time.Hour)}, nil
		},
	})

	var got *auth.Credential
	h := mcpauth.RequireBearerToken(verify, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = auth.CredentialFromContext(r.Context())
		require.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.UserID)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err := auth.CredentialFromContext(context.Background())
	require.ErrorIs(t, err, auth.ErrCredentialMissing)
}
