// Package digest builds the morning brief and end-of-day recap and posts them to a webhook.
package digest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/tasks/v1"

	"github.com/hal9000y/exec-assistant/internal/store"
)

// ErrNoWebhook is returned when neither the request nor stored settings name a webhook.
var ErrNoWebhook = errors.New("no webhook configured")

const dayLayout = "2006-01-02"

type apiClient interface {
	GetJSON(ctx context.Context, path, authorization string, v any) error
}

type webhookClient interface {
	PostJSON(ctx context.Context, url string, body any) error
}

type settingsStore interface {
	Settings(userID string) (*store.UserSettings, error)
}

// Target is where a digest goes.
type Target struct {
	WebhookURL string
	Email      string
}

// Payload is the webhook body.
type Payload struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type Jobs struct {
	api      apiClient
	hook     webhookClient
	settings settingsStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewJobs(api apiClient, hook webhookClient, settings settingsStore, logger *zap.Logger) *Jobs {
	return &Jobs{
		api:      api,
		hook:     hook,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// MorningBrief fetches today's agenda with the caller's credential and renders it.
func (j *Jobs) MorningBrief(ctx context.Context, authorization string) (string, error) {
	now := j.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	q := url.Values{}
	q.Set("timeMin", today.UTC().Format(time.RFC3339))
	q.Set("timeMax", tomorrow.UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", "15")

	var events calendar.Events
	if err := j.api.GetJSON(ctx, "/calendar/events?"+q.Encode(), authorization, &events); err != nil {
		return "", fmt.Errorf("fetch events failed: %w", err)
	}

	var email struct {
		Summary string `json:"summary"`
	}
	if err := j.api.GetJSON(ctx, "/email/summary", authorization, &email); err != nil {
		return "", fmt.Errorf("fetch email summary failed: %w", err)
	}

	var items []*tasks.Task
	if err := j.api.GetJSON(ctx, "/tasks", authorization, &items); err != nil {
		return "", fmt.Errorf("fetch tasks failed: %w", err)
	}

	return FormatMorningBrief(events.Items, email.Summary, DueOn(items, today.Format(dayLayout))), nil
}

// EndOfDayRecap lists tasks completed today and open tasks due later.
func (j *Jobs) EndOfDayRecap(ctx context.Context, authorization string) (string, error) {
	var items []*tasks.Task
	if err := j.api.GetJSON(ctx, "/tasks?showCompleted=true", authorization, &items); err != nil {
		return "", fmt.Errorf("fetch tasks failed: %w", err)
	}

	day := j.now().Format(dayLayout)

	return FormatEndOfDayRecap(CompletedOn(items, day), PendingAfter(items, day)), nil
}

// Resolve fills the blanks of requested from the stored settings of userID.
// fallbackEmail is used when no email is known at all.
func (j *Jobs) Resolve(userID, fallbackEmail string, requested Target) (Target, error) {
	t := requested
	if t.WebhookURL == "" || t.Email == "" {
		s, err := j.settings.Settings(userID)
		switch {
		case err == nil:
			if t.WebhookURL == "" {
				t.WebhookURL = s.ZapierWebhookURL
			}
			if t.Email == "" {
				t.Email = s.Email
			}
		case errors.Is(err, store.ErrNotFound):
		default:
			return Target{}, fmt.Errorf("settings.Settings failed: %w", err)
		}
	}

	if t.WebhookURL == "" {
		return Target{}, ErrNoWebhook
	}
	if t.Email == "" {
		t.Email = fallbackEmail
	}

	return t, nil
}

// Deliver posts message to the target webhook.
func (j *Jobs) Deliver(ctx context.Context, t Target, message string) error {
	if err := j.hook.PostJSON(ctx, t.WebhookURL, Payload{Message: message, Email: t.Email}); err != nil {
		return fmt.Errorf("hook.PostJSON failed: %w", err)
	}

	j.logger.Info("digest delivered", zap.String("email", t.Email))

	return nil
}

// WithClock overrides the clock used for day boundaries.
func (j *Jobs) WithClock(now func() time.Time) *Jobs {
	j.now = now
	return j
}
