package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/hal9000y/exec-assistant/internal/gservice"
	"github.com/hal9000y/exec-assistant/internal/respond"
)

const (
	defaultEventsOrder = "startTime"
	defaultEventsMax   = 15
	eventTimeLayout    = "2006-01-02T15:04:05.000Z"
)

var (
	dateOnly  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateMilli = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)
)

type calendarSvc interface {
	ListEvents(ctx context.Context, q gservice.EventsQuery) ([]*calendar.Event, error)
	InsertEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error)
}

// EventRequest is the body of POST /api/calendar/events.
type EventRequest struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Attendees   any    `json:"attendees"`
	Location    string `json:"location"`
}

type Calendar struct {
	svc    calendarSvc
	logger *zap.Logger
}

func NewCalendar(svc calendarSvc, logger *zap.Logger) *Calendar {
	return &Calendar{svc: svc, logger: logger}
}

// ListEvents handles GET /api/calendar/events.
func (h *Calendar) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxResults, err := strconv.ParseInt(q.Get("maxResults"), 10, 64)
	if err != nil || maxResults <= 0 {
		maxResults = defaultEventsMax
	}

	items, err := h.svc.ListEvents(r.Context(), gservice.EventsQuery{
		TimeMin:      q.Get("timeMin"),
		TimeMax:      q.Get("timeMax"),
		SingleEvents: q.Get("singleEvents") == "true",
		OrderBy:      lo.CoalesceOrEmpty(q.Get("orderBy"), defaultEventsOrder),
		MaxResults:   maxResults,
	})
	if err != nil {
		h.logger.Error("list events failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch calendar events")
		return
	}

	if items == nil {
		items = []*calendar.Event{}
	}

	respond.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// CreateEvent handles POST /api/calendar/events.
func (h *Calendar) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := decodeBody(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ev, err := BuildEvent(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.InsertEvent(r.Context(), ev)
	if err != nil {
		h.logger.Error("insert event failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to schedule meeting")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{"event": created})
}

// InvalidEventError is a client-facing validation failure.
type InvalidEventError struct {
	Message string
}

func (e *InvalidEventError) Error() string {
	return e.Message
}

// BuildEvent validates req and converts it to a calendar event.
// A start without an end lasts one hour.
func BuildEvent(req EventRequest) (*calendar.Event, error) {
	start, err := normalizeEventTime(req.Start, "Start", "2025-04-27T15:00:00.000Z")
	if err != nil {
		return nil, err
	}
	end, err := normalizeEventTime(req.End, "End", "2025-04-27T16:00:00.000Z")
	if err != nil {
		return nil, err
	}

	if end == "" && start != "" {
		t, err := time.Parse(eventTimeLayout, start)
		if err != nil {
			return nil, &InvalidEventError{Message: "Start time is not a valid date: " + start}
		}
		end = t.Add(time.Hour).Format(eventTimeLayout)
	}

	ev := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Attendees:   attendees(req.Attendees),
	}
	if start != "" {
		ev.Start = &calendar.EventDateTime{DateTime: start}
	}
	if end != "" {
		ev.End = &calendar.EventDateTime{DateTime: end}
	}

	return ev, nil
}

func normalizeEventTime(v, field, example string) (string, error) {
	switch {
	case v == "":
		return "", nil
	case dateOnly.MatchString(v):
		return v + "T00:00:00.000Z", nil
	case dateMilli.MatchString(v):
		return v, nil
	default:
		return "", &InvalidEventError{
			Message: fmt.Sprintf("%s time must be in YYYY-MM-DD or RFC3339 format (e.g., %s)", field, example),
		}
	}
}

// attendees keeps address strings containing "@" and objects with an email.
func attendees(v any) []*calendar.EventAttendee {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	out := lo.FilterMap(list, func(a any, _ int) (*calendar.EventAttendee, bool) {
		switch t := a.(type) {
		case string:
			return &calendar.EventAttendee{Email: t}, strings.Contains(t, "@")
		case map[string]any:
			email, _ := t["email"].(string)
			if email == "" {
				return nil, false
			}
			att := &calendar.EventAttendee{}
			b, _ := json.Marshal(t)
			if err := json.Unmarshal(b, att); err != nil {
				return &calendar.EventAttendee{Email: email}, true
			}
			return att, true
		default:
			return nil, false
		}
	})
	if len(out) == 0 {
		return nil
	}

	return out
}
