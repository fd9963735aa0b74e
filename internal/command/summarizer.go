package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hal9000y/exec-assistant/internal/metrics"
)

// DefaultInstruction is used when Summarize receives no instruction.
const DefaultInstruction = "Summarize the following in a short even if you dont have enough data summarize with what you have, user-friendly paragraph:"

// Generator produces one text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer compresses a payload into a short paragraph.
type Summarizer interface {
	Summarize(ctx context.Context, payload any, instruction string) (any, error)
}

// NewSummarizer returns a model-backed summarizer, or Identity when gen is nil.
func NewSummarizer(gen Generator) Summarizer {
	if gen == nil {
		return Identity{}
	}

	return &ModelSummarizer{gen: gen}
}

// Identity returns the payload unchanged.
type Identity struct{}

func (Identity) Summarize(_ context.Context, payload any, _ string) (any, error) {
	return payload, nil
}

type ModelSummarizer struct {
	gen Generator
}

func (s *ModelSummarizer) Summarize(ctx context.Context, payload any, instruction string) (any, error) {
	if instruction == "" {
		instruction = DefaultInstruction
	}

	text, err := serialize(payload)
	if err != nil {
		return nil, err
	}

	prompt := instruction + "\n\nContext:\n" + text + "\n\nSummary:"

	start := time.Now()
	out, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		metrics.RecordLLMCall("summarize", "error", time.Since(start))
		return nil, fmt.Errorf("gen.Generate failed: %w", err)
	}
	metrics.RecordLLMCall("summarize", "ok", time.Since(start))

	return strings.TrimSpace(out), nil
}

func serialize(payload any) (string, error) {
	if s, ok := payload.(string); ok {
		return s, nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("json.Marshal failed: %w", err)
	}

	return string(b), nil
}
