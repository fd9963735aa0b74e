package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/exec-assistant/internal/inbox"
	"github.com/hal9000y/exec-assistant/internal/respond"
)

type mailSvc interface {
	ListMessages(ctx context.Context, q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
	CreateDraft(ctx context.Context, raw string) (*gmail.Draft, error)
}

type Email struct {
	svc      mailSvc
	validate *validator.Validate
	logger   *zap.Logger
}

func NewEmail(svc mailSvc, logger *zap.Logger) *Email {
	return &Email{svc: svc, validate: validator.New(), logger: logger}
}

// Summary handles GET /api/email/summary.
func (h *Email) Summary(w http.ResponseWriter, r *http.Request) {
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("pageSize"), 10, 64)

	s, err := inbox.Unread(r.Context(), h.svc, pageSize, r.URL.Query().Get("pageToken"))
	if err != nil {
		h.logger.Error("email summary failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch email summary")
		return
	}

	respond.JSON(w, http.StatusOK, s)
}

// Draft handles POST /api/email/draft.
func (h *Email) Draft(w http.ResponseWriter, r *http.Request) {
	var d inbox.Draft
	if err := decodeBody(r, &d); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(d); err != nil {
		respond.Error(w, http.StatusBadRequest, "Missing to, subject, or body")
		return
	}

	draft, err := h.svc.CreateDraft(r.Context(), d.Raw())
	if err != nil {
		h.logger.Error("create draft failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to create draft")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{"draft": draft})
}
