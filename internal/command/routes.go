package command

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

var errMissingTaskID = errors.New("missing taskId")

type route struct {
	method      string
	target      func(details any) (string, error)
	sendDetails bool
	instruction string
	// pick selects the value handed to the summarizer.
	pick func(data any) any
	// key names the envelope field next to "result"; wrap fills it.
	key  string
	wrap func(data any) (any, bool)
}

var routes = map[Intent]route{
	IntentScheduleMeeting: {
		method:      http.MethodPost,
		target:      fixed("/calendar/events"),
		sendDetails: true,
		instruction: "Summarize the following meeting details in a short, user-friendly paragraph:",
		pick:        fieldOr("event"),
		key:         "event",
		wrap:        field("event"),
	},
	IntentCreateTask: {
		method:      http.MethodPost,
		target:      fixed("/tasks/add"),
		sendDetails: true,
		instruction: "Summarize the following task in a short, user-friendly paragraph:",
		pick:        whole,
		key:         "task",
		wrap:        present,
	},
	IntentCompleteTask: {
		method:      http.MethodPatch,
		target:      completeTaskPath,
		instruction: "Summarize the following completed task in a short, user-friendly paragraph:",
		pick:        whole,
		key:         "task",
		wrap:        present,
	},
	IntentSummarizeEmail: {
		method:      http.MethodGet,
		target:      emailSummaryPath,
		instruction: "Summarize the following email summary in a short, user-friendly paragraph:",
		pick: func(data any) any {
			v, _ := field("summary")(data)
			return v
		},
		key:  "emails",
		wrap: field("emails"),
	},
	IntentDraftEmail: {
		method:      http.MethodPost,
		target:      fixed("/email/draft"),
		sendDetails: true,
		instruction: "Summarize the following email draft in a short, user-friendly paragraph:",
		pick:        fieldOr("draft"),
		key:         "draft",
		wrap:        field("draft"),
	},
}

func fixed(path string) func(any) (string, error) {
	return func(any) (string, error) { return path, nil }
}

func completeTaskPath(details any) (string, error) {
	m, _ := details.(map[string]any)
	id := m["taskId"]
	if !truthy(id) {
		return "", badRequest(errorBody("Missing taskId for complete_task"), errMissingTaskID)
	}

	return "/tasks/" + url.PathEscape(scalar(id)) + "/complete", nil
}

func emailSummaryPath(details any) (string, error) {
	m, _ := details.(map[string]any)

	q := url.Values{}
	for _, k := range []string{"pageSize", "pageToken"} {
		if v, ok := m[k]; ok && truthy(v) {
			q.Set(k, scalar(v))
		}
	}

	if len(q) == 0 {
		return "/email/summary", nil
	}

	return "/email/summary?" + q.Encode(), nil
}

func whole(data any) any { return data }

func present(data any) (any, bool) { return data, true }

func field(name string) func(any) (any, bool) {
	return func(data any) (any, bool) {
		m, ok := data.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[name]
		return v, ok
	}
}

// fieldOr picks data[name] when it is set, else data itself.
func fieldOr(name string) func(any) any {
	get := field(name)
	return func(data any) any {
		if v, ok := get(data); ok && truthy(v) {
			return v
		}
		return data
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
