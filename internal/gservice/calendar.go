package gservice

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const primaryCalendar = "primary"

// EventsQuery narrows an event listing.
type EventsQuery struct {
	TimeMin      string
	TimeMax      string
	SingleEvents bool
	OrderBy      string
	MaxResults   int64
}

// Calendar reads and writes the user's primary calendar.
type Calendar struct {
	opts []option.ClientOption
}

// NewCalendar creates a Calendar client factory.
func NewCalendar(opts ...option.ClientOption) *Calendar {
	return &Calendar{opts: opts}
}

// ListEvents lists primary calendar events matching q.
func (c *Calendar) ListEvents(ctx context.Context, q EventsQuery) ([]*calendar.Event, error) {
	svc, err := c.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	call := svc.Events.List(primaryCalendar).
		SingleEvents(q.SingleEvents).
		OrderBy(q.OrderBy).
		MaxResults(q.MaxResults)
	if q.TimeMin != "" {
		call = call.TimeMin(q.TimeMin)
	}
	if q.TimeMax != "" {
		call = call.TimeMax(q.TimeMax)
	}

	result, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("events.List failed: %w", err)
	}

	return result.Items, nil
}

// InsertEvent creates ev in the primary calendar.
func (c *Calendar) InsertEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	svc, err := c.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	created, err := svc.Events.Insert(primaryCalendar, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("events.Insert failed: %w", err)
	}

	return created, nil
}

func (c *Calendar) newSvc(ctx context.Context) (*calendar.Service, error) {
	opts, err := clientOptions(ctx, c.opts)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar.NewService failed: %w", err)
	}

	return svc, nil
}
