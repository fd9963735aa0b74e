package digest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hal9000y/exec-assistant/internal/auth"
	"github.com/hal9000y/exec-assistant/internal/respond"
)

// JobRequest is the optional body of a job trigger.
type JobRequest struct {
	ZapierWebhookURL string `json:"zapierWebhookUrl" validate:"omitempty,url"`
	Email            string `json:"email" validate:"omitempty,email"`
}

type HTTPHandler struct {
	jobs     *Jobs
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHTTPHandler(jobs *Jobs, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{jobs: jobs, validate: validator.New(), logger: logger}
}

// MorningBrief handles POST /api/jobs/morning-brief.
func (h *HTTPHandler) MorningBrief(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "Morning Brief", h.jobs.MorningBrief)
}

// EndOfDayRecap handles POST /api/jobs/end-of-day-recap.
func (h *HTTPHandler) EndOfDayRecap(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "End-of-Day Recap", h.jobs.EndOfDayRecap)
}

func (h *HTTPHandler) run(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	build func(ctx context.Context, authorization string) (string, error),
) {
	cred, err := auth.CredentialFromContext(r.Context())
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid zapierWebhookUrl or email")
		return
	}

	target, err := h.jobs.Resolve(cred.UserID, cred.Email, Target{WebhookURL: req.ZapierWebhookURL, Email: req.Email})
	if errors.Is(err, ErrNoWebhook) {
		respond.Error(w, http.StatusBadRequest, "zapierWebhookUrl is required")
		return
	}
	if err != nil {
		h.fail(w, name, err)
		return
	}

	message, err := build(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		h.fail(w, name, err)
		return
	}

	if err := h.jobs.Deliver(r.Context(), target, message); err != nil {
		h.fail(w, name, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": name + " job processed and sent to Zapier."})
}

func (h *HTTPHandler) fail(w http.ResponseWriter, name string, err error) {
	h.logger.Error("digest job failed", zap.String("job", name), zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, "Failed to process "+name+" job")
}
