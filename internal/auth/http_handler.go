package auth

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/hal9000y/exec-assistant/internal/respond"
)

type codeFlow interface {
	RedirectURL() (string, error)
	AuthorizeCode(ctx context.Context, code, state string) (*oauth2.Token, error)
}

type sessionMinter interface {
	Issue(userID, email string) (string, time.Time, error)
}

// LoginResponse is returned once the code flow completes.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Email     string    `json:"email"`
}

// HTTPHandler serves the OAuth2 consent redirect and callback.
type HTTPHandler struct {
	flow     codeFlow
	insp     inspector
	tokens   tokenStore
	sessions sessionMinter
	logger   *zap.Logger
}

// NewHTTPHandler creates the login handler. Without sessions the callback hands the
// Google access token itself back to the caller.
func NewHTTPHandler(flow codeFlow, insp inspector, tokens tokenStore, sessions sessionMinter, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		flow:     flow,
		insp:     insp,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		url, err := h.flow.RedirectURL()
		if err != nil {
			h.logger.Error("flow.RedirectURL failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "Unable to start authorization")
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	tok, err := h.flow.AuthorizeCode(r.Context(), code, r.URL.Query().Get("state"))
	if err != nil {
		h.logger.Warn("flow.AuthorizeCode failed", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, "Unable to authorize provided code")
		return
	}

	id, err := h.insp.Inspect(r.Context(), tok.AccessToken)
	if err != nil {
		h.logger.Error("insp.Inspect failed", zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "Unable to identify Google account")
		return
	}

	if err := h.tokens.SaveToken(id.UserID, tok); err != nil {
		h.logger.Error("tokens.SaveToken failed", zap.Error(err), zap.String("user_id", id.UserID))
		respond.Error(w, http.StatusInternalServerError, "Unable to store token")
		return
	}

	resp := LoginResponse{Token: tok.AccessToken, ExpiresAt: tok.Expiry, Email: id.Email}
	if h.sessions != nil {
		resp.Token, resp.ExpiresAt, err = h.sessions.Issue(id.UserID, id.Email)
		if err != nil {
			h.logger.Error("sessions.Issue failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "Unable to issue session")
			return
		}
	}

	h.logger.Info("user authorized", zap.String("user_id", id.UserID))
	respond.JSON(w, http.StatusOK, resp)
}
