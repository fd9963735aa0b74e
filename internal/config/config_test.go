package config_test

import (
	"testing"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/exec-assistant/internal/config"
)

func TestFromEnvSet_Defaults(t *testing.T) {
	cfg, err := config.FromEnvSet(env.EnvSet{})
	require.NoError(t, err)

	assert.Equal(t, "localhost:3001", cfg.HTTPAddr)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "http://localhost:3001/api", cfg.APIBase())
	assert.True(t, cfg.Development())
	assert.False(t, cfg.GeminiEnabled())
	assert.False(t, cfg.OAuthEnabled())
	assert.False(t, cfg.SessionsEnabled())
}

func TestFromEnvSet(t *testing.T) {
	cases := []struct {
		name        string
		es          env.EnvSet
		expectedErr bool
		check       func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "full",
			es: env.EnvSet{
				"HTTP_ADDR":                  "0.0.0.0:8080",
				"APP_ENV":                    "production",
				"API_BASE_URL":               "https://assistant.example.com/api/",
				"GEMINI_API_KEY":             "key",
				"OAUTH_GOOGLE_CLIENT_ID":     "id",
				"OAUTH_GOOGLE_CLIENT_SECRET": "secret",
				"SESSION_SECRET":             "0123456789abcdef0123456789abcdef",
				"SESSION_TTL":                "2h",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "https://assistant.example.com/api", cfg.APIBase())
				assert.False(t, cfg.Development())
				assert.True(t, cfg.GeminiEnabled())
				assert.True(t, cfg.OAuthEnabled())
				assert.True(t, cfg.SessionsEnabled())
				assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
			},
		},
		{name: "bad env", es: env.EnvSet{"APP_ENV": "staging"}, expectedErr: true},
		{name: "bad log level", es: env.EnvSet{"LOG_LEVEL": "loud"}, expectedErr: true},
		{name: "short session secret", es: env.EnvSet{"SESSION_SECRET": "short"}, expectedErr: true},
		{name: "client id without secret", es: env.EnvSet{"OAUTH_GOOGLE_CLIENT_ID": "id"}, expectedErr: true},
		{name: "bad duration", es: env.EnvSet{"SESSION_TTL": "forever"}, expectedErr: true},
		{name: "bad addr", es: env.EnvSet{"HTTP_ADDR": "nope"}, expectedErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := config.FromEnvSet(c.es)
			if c.expectedErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			c.check(t, cfg)
		})
	}
}
