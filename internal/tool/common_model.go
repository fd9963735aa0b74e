package tool

// EmailAddress represents an email address with optional display name.
type EmailAddress struct {
	Name  string `json:"name,omitempty" jsonschema:"the display name"`
	Email string `json:"email" jsonschema:"the email address"`
}

// MessageSummary contains essential message metadata.
type MessageSummary struct {
	ID        string         `json:"id" jsonschema:"message ID"`
	ThreadID  string         `json:"thread_id" jsonschema:"thread ID"`
	Timestamp string         `json:"timestamp" jsonschema:"message timestamp"`
	From      EmailAddress   `json:"from" jsonschema:"sender information"`
	Subject   string         `json:"subject" jsonschema:"email subject"`
	Snippet   string         `json:"snippet,omitempty" jsonschema:"message preview"`
	To        []EmailAddress `json:"to,omitempty" jsonschema:"recipients"`
}

// EventSummary is a calendar event reduced to what an assistant needs.
type EventSummary struct {
	ID        string   `json:"id" jsonschema:"event ID"`
	Summary   string   `json:"summary" jsonschema:"event title"`
	Start     string   `json:"start" jsonschema:"start time or date"`
	End       string   `json:"end,omitempty" jsonschema:"end time or date"`
	Location  string   `json:"location,omitempty" jsonschema:"event location"`
	Attendees []string `json:"attendees,omitempty" jsonschema:"attendee email addresses"`
}

// TaskSummary is a task of the default list.
type TaskSummary struct {
	ID        string `json:"id" jsonschema:"task ID, usable with complete_task commands"`
	Title     string `json:"title" jsonschema:"task title"`
	Notes     string `json:"notes,omitempty" jsonschema:"task notes"`
	Due       string `json:"due,omitempty" jsonschema:"due date in RFC3339"`
	Status    string `json:"status" jsonschema:"needsAction or completed"`
	Completed string `json:"completed,omitempty" jsonschema:"completion time in RFC3339"`
}
