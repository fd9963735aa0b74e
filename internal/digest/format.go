package digest

import (
	"strings"

	"github.com/samber/lo"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/tasks/v1"
)

// FormatMorningBrief renders today's events, the inbox summary and tasks due today.
func FormatMorningBrief(events []*calendar.Event, emailSummary string, dueToday []*tasks.Task) string {
	var sb strings.Builder

	sb.WriteString("Good morning!\n\nToday's Calendar:\n")
	sb.WriteString(strings.Join(lo.Map(events, func(e *calendar.Event, _ int) string {
		return "- " + eventTime(e) + ": " + eventTitle(e)
	}), "\n"))

	sb.WriteString("\n\nEmail Summary:\n")
	sb.WriteString(emailSummary)

	sb.WriteString("\n\nTop Tasks:\n")
	sb.WriteString(strings.Join(lo.Map(dueToday, func(t *tasks.Task, _ int) string {
		return "- " + t.Title + " (" + lo.CoalesceOrEmpty(t.Due, "No Due Date") + ")"
	}), "\n"))

	return sb.String()
}

// FormatEndOfDayRecap renders task titles completed today and those still pending.
func FormatEndOfDayRecap(completed, pending []string) string {
	bullet := func(s string, _ int) string { return "- " + s }

	return "End of Day Recap:\n\nCompleted Tasks/Meetings:\n" +
		strings.Join(lo.Map(completed, bullet), "\n") +
		"\n\nPending for Tomorrow:\n" +
		strings.Join(lo.Map(pending, bullet), "\n")
}

func eventTime(e *calendar.Event) string {
	if e.Start == nil {
		return "All Day"
	}

	return lo.CoalesceOrEmpty(e.Start.DateTime, e.Start.Date, "All Day")
}

func eventTitle(e *calendar.Event) string {
	return lo.CoalesceOrEmpty(e.Summary, e.Description, "(No Title)")
}

// DueOn keeps open or closed tasks whose due date is day (YYYY-MM-DD).
func DueOn(items []*tasks.Task, day string) []*tasks.Task {
	return lo.Filter(items, func(t *tasks.Task, _ int) bool {
		return t.Due != "" && strings.HasPrefix(t.Due, day)
	})
}

// CompletedOn returns titles of tasks completed on day.
func CompletedOn(items []*tasks.Task, day string) []string {
	return lo.FilterMap(items, func(t *tasks.Task, _ int) (string, bool) {
		return t.Title, t.Status == "completed" && t.Completed != nil && strings.HasPrefix(*t.Completed, day)
	})
}

// PendingAfter returns titles of open tasks due after day.
func PendingAfter(items []*tasks.Task, day string) []string {
	return lo.FilterMap(items, func(t *tasks.Task, _ int) (string, bool) {
		return t.Title, t.Status != "completed" && len(t.Due) >= len(day) && t.Due[:len(day)] > day
	})
}
