// Package api serves the assistant's JSON HTTP API.
package api

import (
	"net/http"

	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
	"go.uber.org/zap"

	"github.com/hal9000y/exec-assistant/internal/respond"
)

// Handlers are the endpoint implementations mounted by NewRouter.
type Handlers struct {
	Calendar *Calendar
	Email    *Email
	Tasks    *Tasks
	Settings *Settings

	Command       http.Handler
	MorningBrief  http.HandlerFunc
	EndOfDayRecap http.HandlerFunc

	// OAuth, MCP and Metrics are optional.
	OAuth   http.Handler
	MCP     http.Handler
	Metrics http.Handler
}

// RouterConfig holds cross-cutting router settings.
type RouterConfig struct {
	Verifier    mcpauth.TokenVerifier
	FrontendURL string
	Development bool
}

// NewRouter mounts every route. All /api routes and /mcp require a bearer token.
func NewRouter(h Handlers, cfg RouterConfig, logger *zap.Logger) http.Handler {
	requireAuth := mcpauth.RequireBearerToken(cfg.Verifier, nil)

	mux := http.NewServeMux()
	protect := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, requireAuth(handler))
	}

	mux.HandleFunc("GET /health", Health)

	protect("GET /api/calendar/events", http.HandlerFunc(h.Calendar.ListEvents))
	protect("POST /api/calendar/events", http.HandlerFunc(h.Calendar.CreateEvent))

	protect("GET /api/email/summary", http.HandlerFunc(h.Email.Summary))
	protect("POST /api/email/draft", http.HandlerFunc(h.Email.Draft))

	protect("GET /api/tasks", http.HandlerFunc(h.Tasks.List))
	protect("POST /api/tasks/add", http.HandlerFunc(h.Tasks.Add))
	protect("PATCH /api/tasks/{taskId}/complete", http.HandlerFunc(h.Tasks.Complete))

	protect("POST /api/command", h.Command)

	protect("POST /api/jobs/morning-brief", h.MorningBrief)
	protect("POST /api/jobs/end-of-day-recap", h.EndOfDayRecap)

	protect("GET /api/user-settings", http.HandlerFunc(h.Settings.Get))
	protect("POST /api/user-settings", http.HandlerFunc(h.Settings.Save))

	if h.OAuth != nil {
		mux.Handle("GET /oauth", h.OAuth)
	}
	if h.MCP != nil {
		protect("/mcp", h.MCP)
	}
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	var handler http.Handler = mux
	handler = withRecovery(logger, cfg.Development, handler)
	handler = withCORS(cfg.FrontendURL, handler)
	handler = withRequestID(logger, handler)

	return handler
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "OK", "message": "Backend is running"})
}
