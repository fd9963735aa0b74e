package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"
	"google.golang.org/api/calendar/v3"

	"github.com/hal9000y/exec-assistant/internal/gservice"
)

type ListEventsRequest struct {
	TimeMin    string `json:"time_min,omitempty" jsonschema:"RFC3339 lower bound, defaults to now"`
	TimeMax    string `json:"time_max,omitempty" jsonschema:"RFC3339 upper bound, defaults to 24 hours after time_min"`
	MaxResults int64  `json:"max_results,omitempty" jsonschema:"max events, default 15"`
}

type ListEventsResponse struct {
	Events []EventSummary `json:"events" jsonschema:"upcoming events ordered by start time"`
}

type calendarSvc interface {
	ListEvents(ctx context.Context, q gservice.EventsQuery) ([]*calendar.Event, error)
}

func NewListEvents(svc calendarSvc) *ListEvents {
	return &ListEvents{svc: svc, now: time.Now}
}

type ListEvents struct {
	svc calendarSvc
	now func() time.Time
}

func (t *ListEvents) ListEvents(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListEventsRequest,
) (*mcp.CallToolResult, ListEventsResponse, error) {
	ctx = callerContext(ctx, req)

	q, err := t.query(input)
	if err != nil {
		return nil, ListEventsResponse{}, err
	}

	items, err := t.svc.ListEvents(ctx, q)
	if err != nil {
		return nil, ListEventsResponse{}, fmt.Errorf("svc.ListEvents failed: %w", err)
	}

	return nil, ListEventsResponse{Events: lo.Map(items, func(e *calendar.Event, _ int) EventSummary {
		return summarizeEvent(e)
	})}, nil
}

func (t *ListEvents) query(input ListEventsRequest) (gservice.EventsQuery, error) {
	start := t.now().UTC()
	if input.TimeMin != "" {
		parsed, err := time.Parse(time.RFC3339, input.TimeMin)
		if err != nil {
			return gservice.EventsQuery{}, fmt.Errorf("time_min must be RFC3339: %w", err)
		}
		start = parsed
	}

	timeMax := input.TimeMax
	if timeMax == "" {
		timeMax = start.Add(24 * time.Hour).Format(time.RFC3339)
	}

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = 15
	}

	return gservice.EventsQuery{
		TimeMin:      start.Format(time.RFC3339),
		TimeMax:      timeMax,
		SingleEvents: true,
		OrderBy:      "startTime",
		MaxResults:   maxResults,
	}, nil
}

func summarizeEvent(e *calendar.Event) EventSummary {
	return EventSummary{
		ID:       e.Id,
		Summary:  e.Summary,
		Start:    eventTime(e.Start),
		End:      eventTime(e.End),
		Location: e.Location,
		Attendees: lo.FilterMap(e.Attendees, func(a *calendar.EventAttendee, _ int) (string, bool) {
			return a.Email, a.Email != ""
		}),
	}
}

func eventTime(t *calendar.EventDateTime) string {
	if t == nil {
		return ""
	}
	return lo.CoalesceOrEmpty(t.DateTime, t.Date)
}
