package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/exec-assistant/internal/inbox"
)

type EmailSummaryRequest struct {
	PageSize  int64  `json:"page_size,omitempty" jsonschema:"unread messages per page, default 10, max 50"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token for pagination"`
}

type EmailSummaryResponse struct {
	Summary       string           `json:"summary" jsonschema:"plain-text overview of unread mail"`
	Messages      []MessageSummary `json:"messages" jsonschema:"unread message metadata"`
	NextPageToken string           `json:"next_page_token,omitempty" jsonschema:"token for next page"`
}

type mailSvc interface {
	ListMessages(ctx context.Context, q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
}

func NewEmailSummary(svc mailSvc) *EmailSummary {
	return &EmailSummary{
		svc: svc,
	}
}

type EmailSummary struct {
	svc mailSvc
}

func (t *EmailSummary) EmailSummary(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input EmailSummaryRequest,
) (*mcp.CallToolResult, EmailSummaryResponse, error) {
	ctx = callerContext(ctx, req)

	s, err := inbox.Unread(ctx, t.svc, normalizePageSize(input.PageSize), input.PageToken)
	if err != nil {
		return nil, EmailSummaryResponse{}, fmt.Errorf("inbox.Unread failed: %w", err)
	}

	messages := make([]MessageSummary, 0, len(s.Emails))
	for _, msg := range s.Emails {
		messages = append(messages, extractMessageSummary(msg))
	}

	resp := EmailSummaryResponse{Summary: s.Summary, Messages: messages}
	if s.NextPageToken != nil {
		resp.NextPageToken = *s.NextPageToken
	}

	return nil, resp, nil
}

func extractMessageSummary(msg *gmail.Message) MessageSummary {
	summary := MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
	}

	if msg.Payload != nil && msg.Payload.Headers != nil {
		extractHeadersToSummary(msg.Payload.Headers, &summary)
	}

	return summary
}

func normalizePageSize(pageSize int64) int64 {
	if pageSize <= 0 {
		return inbox.DefaultPageSize
	}
	if pageSize > 50 {
		return 50
	}
	return pageSize
}

func extractHeadersToSummary(headers []*gmail.MessagePartHeader, summary *MessageSummary) {
	for _, header := range headers {
		switch header.Name {
		case "From":
			summary.From = parseEmailAddress(header.Value)
		case "To":
			summary.To = parseEmailAddressList(header.Value)
		case "Subject":
			summary.Subject = header.Value
		case "Date":
			summary.Timestamp = header.Value
		}
	}
}

func parseEmailAddress(from string) EmailAddress {
	addr := EmailAddress{}

	if idx := strings.Index(from, "<"); idx != -1 {
		addr.Name = strings.TrimSpace(from[:idx])
		if endIdx := strings.Index(from[idx:], ">"); endIdx != -1 {
			addr.Email = strings.TrimSpace(from[idx+1 : idx+endIdx])
		}
	} else {
		addr.Email = strings.TrimSpace(from)
	}

	addr.Name = strings.Trim(addr.Name, "\"")

	return addr
}

func parseEmailAddressList(addresses string) []EmailAddress {
	if addresses == "" {
		return nil
	}

	parts := strings.Split(addresses, ",")
	result := make([]EmailAddress, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, parseEmailAddress(trimmed))
		}
	}

	return result
}
