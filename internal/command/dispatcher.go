// Package command turns free-text commands into calls against the assistant API.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hal9000y/exec-assistant/internal/apiclient"
	"github.com/hal9000y/exec-assistant/internal/metrics"
)

// Downstream calls the assistant's own API with the caller's credential.
type Downstream interface {
	Do(ctx context.Context, method, path, authorization string, body any) (*apiclient.Response, error)
}

// Dispatcher classifies commands and routes them to one API operation each.
type Dispatcher struct {
	classifier Generator
	summarizer Summarizer
	api        Downstream
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the time used for the prompt date.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher creates a dispatcher. A nil classifier disables command processing;
// a nil summarizer falls back to Identity.
func NewDispatcher(classifier Generator, summarizer Summarizer, api Downstream, logger *zap.Logger, opts ...Option) *Dispatcher {
	if summarizer == nil {
		summarizer = Identity{}
	}

	d := &Dispatcher{
		classifier: classifier,
		summarizer: summarizer,
		api:        api,
		logger:     logger,
		now:        time.Now,
	}
	for _, o := range opts {
		o(d)
	}

	return d
}

// Dispatch runs one command and returns the success envelope.
// Client-facing failures are *StatusError or *PassthroughError; anything else is internal.
func (d *Dispatcher) Dispatch(ctx context.Context, command, authorization string) (map[string]any, error) {
	if command == "" {
		return nil, badRequest(errorBody("Command is required"), nil)
	}

	if d.classifier == nil {
		d.logger.Warn("command received without a language model configured")
		metrics.IncCommand("", "unavailable")
		return nil, &StatusError{
			Status: http.StatusServiceUnavailable,
			Body: map[string]any{
				"message": "Processing command (Gemini unavailable)",
				"details": fmt.Sprintf("Received command: %s. Gemini integration is disabled.", command),
			},
		}
	}

	text, err := d.classify(ctx, command)
	if err != nil {
		metrics.IncCommand("", "error")
		return nil, err
	}

	c, err := Classify(text)
	if err != nil {
		d.logger.Warn("model response is not valid JSON", zap.String("raw", text), zap.Error(err))
		metrics.IncCommand("", "invalid_json")
		return nil, badRequest(map[string]any{"error": "Gemini did not return valid JSON", "geminiRaw": text}, err)
	}

	d.logger.Info("command classified", zap.String("intent", string(c.Intent)), zap.Any("details", c.Details))

	out, err := d.route(ctx, c, authorization)
	metrics.IncCommand(string(c.Intent), outcome(err))

	return out, err
}

func (d *Dispatcher) classify(ctx context.Context, command string) (string, error) {
	start := time.Now()
	text, err := d.classifier.Generate(ctx, BuildPrompt(command, d.now()))
	if err != nil {
		metrics.RecordLLMCall("classify", "error", time.Since(start))
		return "", fmt.Errorf("classifier.Generate failed: %w", err)
	}
	metrics.RecordLLMCall("classify", "ok", time.Since(start))

	return text, nil
}

func (d *Dispatcher) route(ctx context.Context, c Classification, authorization string) (map[string]any, error) {
	r, ok := routes[c.Intent]
	if !ok {
		return nil, badRequest(unknownIntent(c), nil)
	}

	path, err := r.target(c.Details)
	if err != nil {
		return nil, err
	}

	var body any
	if r.sendDetails {
		body = c.Details
	}

	resp, err := d.api.Do(ctx, r.method, path, authorization, body)
	if err != nil {
		return nil, fmt.Errorf("api.Do failed: %w", err)
	}

	if !resp.OK() {
		d.logger.Info("downstream call failed", zap.String("path", path), zap.Int("status", resp.Status))
		return nil, &PassthroughError{Path: path, Status: resp.Status, Body: resp.Body}
	}

	var data any
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("json.Unmarshal %s failed: %w", path, err)
	}

	summary, err := d.summarizer.Summarize(ctx, r.pick(data), r.instruction)
	if err != nil {
		return nil, fmt.Errorf("summarizer.Summarize failed: %w", err)
	}

	out := map[string]any{"result": summary}
	if v, ok := r.wrap(data); ok {
		out[r.key] = v
	}

	return out, nil
}

// unknownIntent echoes intent and details only when the model output carried them.
func unknownIntent(c Classification) map[string]any {
	body := map[string]any{"error": "Unknown intent"}
	for _, k := range []string{"intent", "details"} {
		if v, ok := c.Object[k]; ok {
			body[k] = v
		}
	}

	return body
}

func outcome(err error) string {
	var statusErr *StatusError
	var passErr *PassthroughError

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "rejected"
	case errors.As(err, &passErr):
		return "downstream_error"
	default:
		return "error"
	}
}
