package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hal9000y/exec-assistant/internal/auth"
	"github.com/hal9000y/exec-assistant/internal/respond"
	"github.com/hal9000y/exec-assistant/internal/store"
)

type settingsStore interface {
	SaveSettings(userID string, s store.UserSettings) error
	Settings(userID string) (*store.UserSettings, error)
}

// SettingsRequest is the body of POST /api/user-settings.
type SettingsRequest struct {
	ZapierWebhookURL string `json:"zapierWebhookUrl" validate:"required"`
	Email            string `json:"email" validate:"required"`
}

type Settings struct {
	store    settingsStore
	validate *validator.Validate
	logger   *zap.Logger
}

func NewSettings(s settingsStore, logger *zap.Logger) *Settings {
	return &Settings{store: s, validate: validator.New(), logger: logger}
}

// Save handles POST /api/user-settings.
func (h *Settings) Save(w http.ResponseWriter, r *http.Request) {
	cred, ok := credential(w, r)
	if !ok {
		return
	}

	var req SettingsRequest
	if err := decodeBody(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "zapierWebhookUrl and email are required")
		return
	}

	if err := h.store.SaveSettings(cred.UserID, store.UserSettings{ZapierWebhookURL: req.ZapierWebhookURL, Email: req.Email}); err != nil {
		h.logger.Error("save settings failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Settings saved"})
}

// Get handles GET /api/user-settings.
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	cred, ok := credential(w, r)
	if !ok {
		return
	}

	s, err := h.store.Settings(cred.UserID)
	if errors.Is(err, store.ErrNotFound) {
		respond.JSON(w, http.StatusOK, map[string]string{})
		return
	}
	if err != nil {
		h.logger.Error("fetch settings failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	respond.JSON(w, http.StatusOK, s)
}

func credential(w http.ResponseWriter, r *http.Request) (*auth.Credential, bool) {
	cred, err := auth.CredentialFromContext(r.Context())
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	return cred, true
}
