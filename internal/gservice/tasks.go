package gservice

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// ErrNoTaskList indicates the user has no task list.
var ErrNoTaskList = errors.New("no task list found")

const statusCompleted = "completed"

// TasksQuery narrows a task listing.
type TasksQuery struct {
	ShowCompleted bool
	MaxResults    int64
}

// Tasks operates on the user's default (first) task list.
type Tasks struct {
	opts []option.ClientOption
}

// NewTasks creates a Tasks client factory.
func NewTasks(opts ...option.ClientOption) *Tasks {
	return &Tasks{opts: opts}
}

// ListTasks lists tasks of the default list.
func (t *Tasks) ListTasks(ctx context.Context, q TasksQuery) ([]*tasks.Task, error) {
	svc, listID, err := t.defaultList(ctx)
	if err != nil {
		return nil, err
	}

	// Completed tasks are hidden unless explicitly requested.
	result, err := svc.Tasks.List(listID).
		ShowCompleted(q.ShowCompleted).
		ShowHidden(q.ShowCompleted).
		MaxResults(q.MaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("tasks.List failed: %w", err)
	}

	return result.Items, nil
}

// InsertTask adds task to the default list.
func (t *Tasks) InsertTask(ctx context.Context, task *tasks.Task) (*tasks.Task, error) {
	svc, listID, err := t.defaultList(ctx)
	if err != nil {
		return nil, err
	}

	created, err := svc.Tasks.Insert(listID, task).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("tasks.Insert failed: %w", err)
	}

	return created, nil
}

// CompleteTask marks taskID of the default list as completed.
func (t *Tasks) CompleteTask(ctx context.Context, taskID string) (*tasks.Task, error) {
	svc, listID, err := t.defaultList(ctx)
	if err != nil {
		return nil, err
	}

	patched, err := svc.Tasks.Patch(listID, taskID, &tasks.Task{Status: statusCompleted}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("tasks.Patch failed: %w", err)
	}

	return patched, nil
}

func (t *Tasks) defaultList(ctx context.Context) (*tasks.Service, string, error) {
	svc, err := t.newSvc(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("newSvc failed: %w", err)
	}

	lists, err := svc.Tasklists.List().MaxResults(1).Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("tasklists.List failed: %w", err)
	}
	if len(lists.Items) == 0 {
		return nil, "", ErrNoTaskList
	}

	return svc, lists.Items[0].Id, nil
}

func (t *Tasks) newSvc(ctx context.Context) (*tasks.Service, error) {
	opts, err := clientOptions(ctx, t.opts)
	if err != nil {
		return nil, err
	}

	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("tasks.NewService failed: %w", err)
	}

	return svc, nil
}
