package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/tasks/v1"
	"google.golang.org/genai"

	"github.com/hal9000y/exec-assistant/internal/api"
	"github.com/hal9000y/exec-assistant/internal/apiclient"
	"github.com/hal9000y/exec-assistant/internal/auth"
	"github.com/hal9000y/exec-assistant/internal/command"
	"github.com/hal9000y/exec-assistant/internal/config"
	"github.com/hal9000y/exec-assistant/internal/digest"
	"github.com/hal9000y/exec-assistant/internal/gservice"
	"github.com/hal9000y/exec-assistant/internal/logging"
	"github.com/hal9000y/exec-assistant/internal/store"
	"github.com/hal9000y/exec-assistant/internal/tool"
)

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and MCP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return fmt.Errorf("config.Load failed: %w", err)
			}

			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		return fmt.Errorf("logging.New failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	st, err := store.Open(cfg.BadgerPath, logger)
	if err != nil {
		return fmt.Errorf("store.Open failed: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("st.Close failed", zap.Error(err))
		}
	}()

	insp, err := gservice.NewTokenInspector(ctx)
	if err != nil {
		return fmt.Errorf("gservice.NewTokenInspector failed: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("net.Listen failed: %w", err)
	}

	oauthCfg := newOAuthConfig(cfg, ln.Addr().String())

	verifier, oauthHTTP, err := newAuth(cfg, oauthCfg, insp, st, logger)
	if err != nil {
		_ = ln.Close()
		return err
	}

	var classifier command.Generator
	if cfg.GeminiEnabled() {
		gemini, err := gservice.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, genai.HTTPOptions{})
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("gservice.NewGemini failed: %w", err)
		}
		classifier = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, commands will be rejected")
	}

	apiClient := apiclient.New(cfg.APIBase(), nil)
	dispatcher := command.NewDispatcher(classifier, command.NewSummarizer(classifier), apiClient, logger)

	cal := gservice.NewCalendar()
	mail := gservice.NewGmail()
	ts := gservice.NewTasks()

	jobs := digest.NewHTTPHandler(digest.NewJobs(apiClient, apiClient, st, logger), logger)

	mcpServer := tool.NewServer(dispatcher, cal, mail, ts)
	mcpHTTP := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return mcpServer }, nil)

	handler := api.NewRouter(api.Handlers{
		Calendar:      api.NewCalendar(cal, logger),
		Email:         api.NewEmail(mail, logger),
		Tasks:         api.NewTasks(ts, logger),
		Settings:      api.NewSettings(st, logger),
		Command:       command.NewHTTPHandler(dispatcher, logger),
		MorningBrief:  jobs.MorningBrief,
		EndOfDayRecap: jobs.EndOfDayRecap,
		OAuth:         oauthHTTP,
		MCP:           mcpHTTP,
		Metrics:       promhttp.Handler(),
	}, api.RouterConfig{
		Verifier:    verifier,
		FrontendURL: cfg.FrontendURL,
		Development: cfg.Development(),
	}, logger)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGTERM, syscall.SIGINT)

	stopHTTP, errHTTPCh := serveHTTP(srv, ln, logger)
	defer stopHTTP()

	select {
	case err := <-errHTTPCh:
		return err
	case <-shutdown:
		logger.Info("Shutdown signal received")
	}

	return nil
}

// newAuth picks the bearer verifier for the configured credential mode.
func newAuth(
	cfg *config.Config,
	oauthCfg *oauth2.Config,
	insp *gservice.TokenInspector,
	st *store.Store,
	logger *zap.Logger,
) (mcpauth.TokenVerifier, http.Handler, error) {
	if !cfg.SessionsEnabled() {
		var oauthHTTP http.Handler
		if oauthCfg != nil {
			oauthHTTP = auth.NewHTTPHandler(auth.NewFlow(oauthCfg), insp, st, nil, logger)
		}
		logger.Info("Accepting Google access tokens as bearer credentials")

		return auth.NewPassthroughVerifier(insp), oauthHTTP, nil
	}

	if oauthCfg == nil {
		return nil, nil, errors.New("SESSION_SECRET requires OAUTH_GOOGLE_CLIENT_ID and OAUTH_GOOGLE_CLIENT_SECRET")
	}

	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	logger.Info("Accepting session tokens as bearer credentials")

	return auth.NewSessionVerifier(sessions, st, oauthCfg),
		auth.NewHTTPHandler(auth.NewFlow(oauthCfg), insp, st, sessions, logger),
		nil
}

func newOAuthConfig(cfg *config.Config, lnAddr string) *oauth2.Config {
	if !cfg.OAuthEnabled() {
		return nil
	}

	redirectURL := cfg.OAuthRedirectURL
	if redirectURL == "" {
		redirectURL = fmt.Sprintf("http://%s/oauth", lnAddr)
	}

	return &oauth2.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			goauth2.UserinfoEmailScope,
			calendar.CalendarScope,
			tasks.TasksScope,
			gmail.GmailReadonlyScope,
			gmail.GmailComposeScope,
		},
		Endpoint: google.Endpoint,
	}
}

func serveHTTP(srv *http.Server, ln net.Listener, logger *zap.Logger) (func(), <-chan error) {
	errHTTPCh := make(chan error, 1)
	go func() {
		defer close(errHTTPCh)

		logger.Info("Starting http server", zap.String("addr", ln.Addr().String()))

		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("srv.Serve failed: %w", err)
			logger.Error("HTTP server failed", zap.Error(err))
			errHTTPCh <- err
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("srv.Shutdown failed", zap.Error(err))
		}

		<-errHTTPCh
		logger.Info("HTTP server stopped")
	}, errHTTPCh
}
