package command_test

import (
	"context"
	"sync"
	"testing"

	"github.com/hal9000y/exec-assistant/internal/apiclient"
)

type generatorMock struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *generatorMock) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	return m.GenerateFunc(ctx, prompt)
}

func (m *generatorMock) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.prompts...)
}

func reply(text string) *generatorMock {
	return &generatorMock{
		GenerateFunc: func(context.Context, string) (string, error) { return text, nil },
	}
}

type downstreamMock struct {
	DoFunc func(ctx context.Context, method, path, authorization string, body any) (*apiclient.Response, error)

	calls int
}

func (m *downstreamMock) Do(ctx context.Context, method, path, authorization string, body any) (*apiclient.Response, error) {
	m.calls++
	return m.DoFunc(ctx, method, path, authorization, body)
}

func noDownstream(t *testing.T) *downstreamMock {
	return &downstreamMock{
		DoFunc: func(context.Context, string, string, string, any) (*apiclient.Response, error) {
			t.Fatal("unexpected downstream call")
			return nil, nil
		},
	}
}

type summarizerMock struct {
	SummarizeFunc func(ctx context.Context, payload any, instruction string) (any, error)
}

func (m *summarizerMock) Summarize(ctx context.Context, payload any, instruction string) (any, error) {
	return m.SummarizeFunc(ctx, payload, instruction)
}
