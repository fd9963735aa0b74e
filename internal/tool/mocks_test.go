package tool_test

import (
	"context"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/tasks/v1"

	"github.com/hal9000y/exec-assistant/internal/gservice"
)

type dispatcherMock struct {
	DispatchFunc func(ctx context.Context, command, authorization string) (map[string]any, error)
}

func (m *dispatcherMock) Dispatch(ctx context.Context, command, authorization string) (map[string]any, error) {
	return m.DispatchFunc(ctx, command, authorization)
}

type calendarSvcMock struct {
	ListEventsFunc func(ctx context.Context, q gservice.EventsQuery) ([]*calendar.Event, error)
}

func (m *calendarSvcMock) ListEvents(ctx context.Context, q gservice.EventsQuery) ([]*calendar.Event, error) {
	return m.ListEventsFunc(ctx, q)
}

type mailSvcMock struct {
	ListMessagesFunc       func(ctx context.Context, q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadataFunc func(ctx context.Context, msgID string) (*gmail.Message, error)
}

func (m *mailSvcMock) ListMessages(ctx context.Context, q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	return m.ListMessagesFunc(ctx, q, pageToken, maxResults)
}

func (m *mailSvcMock) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageMetadataFunc(ctx, msgID)
}

type tasksSvcMock struct {
	ListTasksFunc func(ctx context.Context, q gservice.TasksQuery) ([]*tasks.Task, error)
}

func (m *tasksSvcMock) ListTasks(ctx context.Context, q gservice.TasksQuery) ([]*tasks.Task, error) {
	return m.ListTasksFunc(ctx, q)
}
