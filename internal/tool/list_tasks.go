package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"
	"google.golang.org/api/tasks/v1"

	"github.com/hal9000y/exec-assistant/internal/gservice"
)

type ListTasksRequest struct {
	ShowCompleted bool `json:"show_completed,omitempty" jsonschema:"include completed tasks"`
}

type ListTasksResponse struct {
	Tasks []TaskSummary `json:"tasks" jsonschema:"tasks of the default list"`
}

type tasksSvc interface {
	ListTasks(ctx context.Context, q gservice.TasksQuery) ([]*tasks.Task, error)
}

func NewListTasks(svc tasksSvc) *ListTasks {
	return &ListTasks{svc: svc}
}

type ListTasks struct {
	svc tasksSvc
}

func (t *ListTasks) ListTasks(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListTasksRequest,
) (*mcp.CallToolResult, ListTasksResponse, error) {
	ctx = callerContext(ctx, req)

	items, err := t.svc.ListTasks(ctx, gservice.TasksQuery{ShowCompleted: input.ShowCompleted, MaxResults: 20})
	if err != nil && !errors.Is(err, gservice.ErrNoTaskList) {
		return nil, ListTasksResponse{}, fmt.Errorf("svc.ListTasks failed: %w", err)
	}

	return nil, ListTasksResponse{Tasks: lo.Map(items, func(task *tasks.Task, _ int) TaskSummary {
		return TaskSummary{
			ID:        task.Id,
			Title:     task.Title,
			Notes:     task.Notes,
			Due:       task.Due,
			Status:    task.Status,
			Completed: lo.FromPtr(task.Completed),
		}
	})}, nil
}
