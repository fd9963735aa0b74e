// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR,default=localhost:3001" validate:"required,hostname_port"`
	Env         string `env:"APP_ENV,default=development" validate:"oneof=development production test"`
	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:8080" validate:"required,url"`
	APIBaseURL  string `env:"API_BASE_URL" validate:"omitempty,url"`
	LogLevel    string `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL,default=gemini-2.0-flash" validate:"required"`

	OAuthClientID     string `env:"OAUTH_GOOGLE_CLIENT_ID"`
	OAuthClientSecret string `env:"OAUTH_GOOGLE_CLIENT_SECRET" validate:"required_with=OAuthClientID"`
	OAuthRedirectURL  string `env:"OAUTH_REDIRECT_URL" validate:"omitempty,url"`

	SessionSecret string        `env:"SESSION_SECRET" validate:"omitempty,min=32"`
	SessionTTL    time.Duration `env:"SESSION_TTL,default=24h" validate:"gt=0"`

	BadgerPath string `env:"BADGER_PATH,default=./data/badger"`
}

var validate = validator.New()

// Load reads envFile (if any) into the process environment and unmarshals Config from it.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("godotenv.Load failed: %w", err)
		}
	}

	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, fmt.Errorf("env.EnvironToEnvSet failed: %w", err)
	}

	return FromEnvSet(es)
}

// FromEnvSet builds a validated Config from an explicit set of variables.
func FromEnvSet(es env.EnvSet) (*Config, error) {
	cfg := &Config{}
	if err := env.Unmarshal(es, cfg); err != nil {
		return nil, fmt.Errorf("env.Unmarshal failed: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// APIBase returns the base URL the server uses to call its own API.
func (c *Config) APIBase() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}

	return "http://" + c.HTTPAddr + "/api"
}

// GeminiEnabled reports whether a language-model backend is configured.
func (c *Config) GeminiEnabled() bool {
	return c.GeminiAPIKey != ""
}

// OAuthEnabled reports whether the Google OAuth code flow can be served.
func (c *Config) OAuthEnabled() bool {
	return c.OAuthClientID != "" && c.OAuthClientSecret != ""
}

// SessionsEnabled reports whether bearer credentials are session tokens issued by this server.
// Otherwise callers send Google access tokens directly.
func (c *Config) SessionsEnabled() bool {
	return c.SessionSecret != ""
}

// Development reports whether the server runs in development mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}
