package api_test

import (
	"context"
	"net/http"
	"time"

	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/tasks/v1"

	"github.com/hal9000y/exec-assistant/internal/auth"
	"github.com/hal9000y/exec-assistant/internal/gservice"
	"github.com/hal9000y/exec-assistant/internal/store"
)

type calendarSvcMock struct {
	ListEventsFunc  func(ctx context.Context, q gservice.EventsQuery) ([]*calendar.Event, error)
	InsertEventFunc func(ctx context.Context, ev *calendar.Event) (*calendar.Event, error)
}

func (m *calendarSvcMock) ListEvents(ctx context.Context, q gservice.EventsQuery) ([]*calendar.Event, error) {
	return m.ListEventsFunc(ctx, q)
}

func (m *calendarSvcMock) InsertEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	return m.InsertEventFunc(ctx, ev)
}

type mailSvcMock struct {
	ListMessagesFunc       func(ctx context.Context, q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadataFunc func(ctx context.Context, msgID string) (*gmail.Message, error)
	CreateDraftFunc        func(ctx context.Context, raw string) (*gmail.Draft, error)
}

func (m *mailSvcMock) ListMessages(ctx context.Context, q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	return m.ListMessagesFunc(ctx, q, pageToken, maxResults)
}

func (m *mailSvcMock) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageMetadataFunc(ctx, msgID)
}

func (m *mailSvcMock) CreateDraft(ctx context.Context, raw string) (*gmail.Draft, error) {
	return m.CreateDraftFunc(ctx, raw)
}

type tasksSvcMock struct {
	ListTasksFunc    func(ctx context.Context, q gservice.TasksQuery) ([]*tasks.Task, error)
	InsertTaskFunc   func(ctx context.Context, task *tasks.Task) (*tasks.Task, error)
	CompleteTaskFunc func(ctx context.Context, taskID string) (*tasks.Task, error)
}

func (m *tasksSvcMock) ListTasks(ctx context.Context, q gservice.TasksQuery) ([]*tasks.Task, error) {
	return m.ListTasksFunc(ctx, q)
}

func (m *tasksSvcMock) InsertTask(ctx context.Context, task *tasks.Task) (*tasks.Task, error) {
	return m.InsertTaskFunc(ctx, task)
}

func (m *tasksSvcMock) CompleteTask(ctx context.Context, taskID string) (*tasks.Task, error) {
	return m.CompleteTaskFunc(ctx, taskID)
}

type settingsStoreMock struct {
	SaveSettingsFunc func(userID string, s store.UserSettings) error
	SettingsFunc     func(userID string) (*store.UserSettings, error)
}

func (m *settingsStoreMock) SaveSettings(userID string, s store.UserSettings) error {
	return m.SaveSettingsFunc(userID, s)
}

func (m *settingsStoreMock) Settings(userID string) (*store.UserSettings, error) {
	return m.SettingsFunc(userID)
}

var testCred = &auth.Credential{
	UserID: "u1",
	Email:  "me@example.com",
	Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "google"}),
}

func withCred(r *http.Request) *http.Request {
	return r.WithContext(auth.WithCredential(r.Context(), testCred))
}

// acceptGood accepts only the bearer token "good".
func acceptGood(_ context.Context, token string, _ *http.Request) (*mcpauth.TokenInfo, error) {
	if token != "good" {
		return nil, mcpauth.ErrInvalidToken
	}
	return auth.NewTokenInfo(testCred, nil, time.Now().Add(time.Hour)), nil
}
