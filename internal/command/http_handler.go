package command

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hal9000y/exec-assistant/internal/respond"
)

// Request is the body of POST /api/command.
type Request struct {
	Command string `json:"command"`
}

type HTTPHandler struct {
	d      *Dispatcher
	logger *zap.Logger
}

func NewHTTPHandler(d *Dispatcher, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{d: d, logger: logger}
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("command body not decoded", zap.Error(err))
	}

	out, err := h.d.Dispatch(r.Context(), req.Command, r.Header.Get("Authorization"))
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	respond.JSON(w, http.StatusOK, out)
}

// WriteError maps a Dispatch error onto the response.
func WriteError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		respond.JSON(w, statusErr.Status, statusErr.Body)
		return
	}

	var passErr *PassthroughError
	if errors.As(err, &passErr) {
		respond.Raw(w, passErr.Status, passErr.Body)
		return
	}

	logger.Error("command processing failed", zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, "Failed to process command using AI")
}
