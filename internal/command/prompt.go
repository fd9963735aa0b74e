package command

import (
	"fmt"
	"strings"
	"time"
)

var fieldHints = map[Intent]string{
	IntentScheduleMeeting: "summary, description, start, end, attendees, location",
	IntentCreateTask:      "title, notes, due",
	IntentCompleteTask:    "taskId",
	IntentSummarizeEmail:  "pageSize, pageToken",
	IntentDraftEmail:      "to, subject, body",
}

// BuildPrompt renders the classification prompt for command as of now.
func BuildPrompt(command string, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "The current date is %s.\n", now.Format("Mon Jan 02 2006"))
	sb.WriteString("You are an AI Executive Assistant.\n\n")
	sb.WriteString("Given the following user input, identify the INTENT and the DETAILS needed.\n\n")
	sb.WriteString("You MUST select the intent from the following list ONLY:\n")
	for _, i := range Intents {
		fmt.Fprintf(&sb, "- %s\n", i)
	}

	sb.WriteString("\nFor all date/time fields (like start, end, due), always output in RFC3339 format ")
	sb.WriteString("(e.g., 2025-04-27T15:00:00.000Z). If you only know the date, use YYYY-MM-DD.\n\n")

	for _, i := range Intents {
		fmt.Fprintf(&sb, "If the intent is %q:\n- Use fields like: %s\n\n", i, fieldHints[i])
	}

	sb.WriteString("Format your output strictly as JSON:\n")
	sb.WriteString("{\n  \"intent\": \"...\",   // one of the allowed intents\n")
	sb.WriteString("  \"details\": { ... } // key information extracted from the input\n}\n\n")
	sb.WriteString("ONLY output valid JSON. Do not explain.\n\n")
	fmt.Fprintf(&sb, "Input: \"%s\"\nOutput:\n", command)

	return sb.String()
}
