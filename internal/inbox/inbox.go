// Package inbox summarizes unread mail and builds draft messages.
package inbox

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
)

const (
	unreadQuery     = "is:unread"
	DefaultPageSize = 10
)

type mailSvc interface {
	ListMessages(ctx context.Context, q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
}

// Summary is the unread-mail digest returned by GET /api/email/summary.
type Summary struct {
	Summary       string           `json:"summary"`
	Emails        []*gmail.Message `json:"emails"`
	NextPageToken *string          `json:"nextPageToken"`
}

// Unread fetches one page of unread messages with Subject, From and Date headers.
func Unread(ctx context.Context, svc mailSvc, pageSize int64, pageToken string) (*Summary, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	list, err := svc.ListMessages(ctx, unreadQuery, pageToken, pageSize)
	if err != nil {
		return nil, fmt.Errorf("svc.ListMessages failed: %w", err)
	}

	if len(list.Messages) == 0 {
		return &Summary{Summary: "No unread messages found.", Emails: []*gmail.Message{}}, nil
	}

	emails := make([]*gmail.Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		msg, err := svc.GetMessageMetadata(ctx, m.Id)
		if err != nil {
			return nil, fmt.Errorf("get message %s failed: %w", m.Id, err)
		}
		emails = append(emails, msg)
	}

	s := &Summary{Summary: Describe(emails), Emails: emails}
	if list.NextPageToken != "" {
		s.NextPageToken = &list.NextPageToken
	}

	return s, nil
}

// Describe renders a plain-text overview of emails.
func Describe(emails []*gmail.Message) string {
	if len(emails) == 1 {
		return fmt.Sprintf("You have 1 unread email: \"%s\" from %s.", subject(emails[0]), sender(emails[0]))
	}

	lines := make([]string, 0, len(emails))
	for i, e := range emails {
		lines = append(lines, fmt.Sprintf("%d. \"%s\" from %s", i+1, subject(e), sender(e)))
	}

	return fmt.Sprintf("You have %d unread emails.\n", len(emails)) + strings.Join(lines, "\n")
}

func subject(m *gmail.Message) string {
	if v := Header(m, "Subject"); v != "" {
		return v
	}
	return "(No Subject)"
}

func sender(m *gmail.Message) string {
	if v := Header(m, "From"); v != "" {
		return v
	}
	return "(Unknown Sender)"
}

// Header returns the first header called name, or "".
func Header(m *gmail.Message, name string) string {
	if m == nil || m.Payload == nil {
		return ""
	}

	for _, h := range m.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}

	return ""
}

var errRecipients = errors.New("to must be a string or a list of addresses")

// Recipients is the To header value. It decodes from a string or a list of addresses.
type Recipients string

func (r *Recipients) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*r = ""
	case string:
		*r = Recipients(t)
	case float64, bool:
		*r = Recipients(fmt.Sprint(t))
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			switch p.(type) {
			case map[string]any, []any:
				return errRecipients
			}
			if p != nil {
				parts = append(parts, fmt.Sprint(p))
			}
		}
		*r = Recipients(strings.Join(parts, ", "))
	default:
		return errRecipients
	}

	return nil
}

// Draft is the input of POST /api/email/draft.
type Draft struct {
	To      Recipients `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// Raw encodes d as an HTML message in unpadded base64url.
func (d Draft) Raw() string {
	msg := strings.Join([]string{
		"To: " + string(d.To),
		"Content-Type: text/html; charset=utf-8",
		"MIME-Version: 1.0",
		"Subject: " + d.Subject,
		"",
		d.Body,
	}, "\n")

	return base64.RawURLEncoding.EncodeToString([]byte(msg))
}
