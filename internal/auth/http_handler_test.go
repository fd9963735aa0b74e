package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/hal9000y/exec-assistant/internal/auth"
)

func newCodeFlow() *codeFlowMock {
	return &codeFlowMock{
		RedirectURLFunc: func() (string, error) {
			return "https://accounts.example.com/auth?state=s1", nil
		},
		AuthorizeCodeFunc: func(_ context.Context, code, state string) (*oauth2.Token, error) {
			if code != "good-code" || state != "s1" {
				return nil, errors.New("invalid or expired state parameter")
			}
			return &oauth2.Token{AccessToken: "google-access", Expiry: time.Now().Add(time.Hour)}, nil
		},
	}
}

func newIdentityInspector() *inspectorMock {
	return &inspectorMock{
		InspectFunc: func(_ context.Context, accessToken string) (*auth.Identity, error) {
			return &auth.Identity{UserID: "u-" + accessToken, Email: "one@example.com"}, nil
		},
	}
}

func TestHTTPHandler(t *testing.T) {
	sessions := auth.NewSessions("0123456789abcdef0123456789abcdef", time.Hour)

	cases := []struct {
		name         string
		query        string
		withSessions bool
		expectedCode int
		expectedLoc  string
	}{
		{name: "redirect to consent", query: "", expectedCode: http.StatusFound, expectedLoc: "https://accounts.example.com/auth?state=s1"},
		{name: "bad state", query: "?code=good-code&state=forged", expectedCode: http.StatusBadRequest},
		{name: "passthrough login", query: "?code=good-code&state=s1", expectedCode: http.StatusOK},
		{name: "session login", query: "?code=good-code&state=s1", withSessions: true, expectedCode: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := newTokenStoreMock()

			var h *auth.HTTPHandler
			if tc.withSessions {
				h = auth.NewHTTPHandler(newCodeFlow(), newIdentityInspector(), tokens, sessions, zap.NewNop())
			} else {
				h = auth.NewHTTPHandler(newCodeFlow(), newIdentityInspector(), tokens, nil, zap.NewNop())
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oauth"+tc.query, nil))

			require.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedLoc != "" {
				assert.Equal(t, tc.expectedLoc, rec.Header().Get("Location"))
			}
			if tc.expectedCode != http.StatusOK {
				return
			}

			var resp auth.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "one@example.com", resp.Email)

			stored, err := tokens.Token("u-google-access")
			require.NoError(t, err)
			assert.Equal(t, "google-access", stored.AccessToken)

			if !tc.withSessions {
				assert.Equal(t, "google-access", resp.Token)
				return
			}

			claims, err := sessions.Parse(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "u-google-access", claims.Subject)
		})
	}
}
