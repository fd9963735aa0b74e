package command_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hal9000y/exec-assistant/internal/apiclient"
	"github.com/hal9000y/exec-assistant/internal/command"
)

func TestHTTPHandler(t *testing.T) {
	okAPI := &downstreamMock{
		DoFunc: func(_ context.Context, _, _, authorization string, _ any) (*apiclient.Response, error) {
			assert.Equal(t, bearer, authorization)
			return &apiclient.Response{Status: http.StatusCreated, Body: []byte(`{"id":"t1","title":"Report"}`)}, nil
		},
	}
	failAPI := &downstreamMock{
		DoFunc: func(context.Context, string, string, string, any) (*apiclient.Response, error) {
			return &apiclient.Response{Status: http.StatusNotFound, Body: []byte(`{"error":"not found"}`)}, nil
		},
	}
	failing := &generatorMock{
		GenerateFunc: func(context.Context, string) (string, error) { return "", context.DeadlineExceeded },
	}
	taskReply := reply(`{"intent":"create_task","details":{"title":"Report"}}`)

	cases := []struct {
		name           string
		d              *command.Dispatcher
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			d:              command.NewDispatcher(taskReply, nil, okAPI, zap.NewNop()),
			body:           `{"command":"add a task to write the report"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"result":{"id":"t1","title":"Report"},"task":{"id":"t1","title":"Report"}}`,
		},
		{
			name:           "missing command",
			d:              command.NewDispatcher(taskReply, nil, okAPI, zap.NewNop()),
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Command is required"}`,
		},
		{
			name:           "unreadable body",
			d:              command.NewDispatcher(taskReply, nil, okAPI, zap.NewNop()),
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Command is required"}`,
		},
		{
			name:           "unavailable",
			d:              command.NewDispatcher(nil, nil, okAPI, zap.NewNop()),
			body:           `{"command":"hi"}`,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"message":"Processing command (Gemini unavailable)","details":"Received command: hi. Gemini integration is disabled."}`,
		},
		{
			name:           "passthrough",
			d:              command.NewDispatcher(taskReply, nil, failAPI, zap.NewNop()),
			body:           `{"command":"add"}`,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"not found"}`,
		},
		{
			name:           "internal",
			d:              command.NewDispatcher(failing, nil, okAPI, zap.NewNop()),
			body:           `{"command":"add"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to process command using AI"}`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/command", strings.NewReader(c.body))
			req.Header.Set("Authorization", bearer)
			rec := httptest.NewRecorder()

			command.NewHTTPHandler(c.d, zap.NewNop()).ServeHTTP(rec, req)

			assert.Equal(t, c.expectedStatus, rec.Code)
			assert.JSONEq(t, c.expectedBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
