package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/exec-assistant/internal/auth"
)

// NewServer creates an MCP server exposing the assistant's tools.
func NewServer(d dispatcher, cal calendarSvc, mail mailSvc, ts tasksSvc) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "exec-assistant", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_command",
		Description: "Run a free-text assistant command: schedule a meeting, create or complete a task, summarize unread email, or draft an email",
	}, NewRunCommand(d).RunCommand)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_events",
		Description: "List primary calendar events in a time range",
	}, NewListEvents(cal).ListEvents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "email_summary",
		Description: "Summarize unread Gmail messages",
	}, NewEmailSummary(mail).EmailSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks of the default Google Tasks list",
	}, NewListTasks(ts).ListTasks)

	return server
}

// callerContext attaches the credential verified by the HTTP bearer middleware.
func callerContext(ctx context.Context, req *mcp.CallToolRequest) context.Context {
	if req == nil || req.Extra == nil {
		return ctx
	}
	if c := auth.CredentialFromTokenInfo(req.Extra.TokenInfo); c != nil {
		return auth.WithCredential(ctx, c)
	}
	return ctx
}

func authorization(req *mcp.CallToolRequest) string {
	if req == nil || req.Extra == nil || req.Extra.Header == nil {
		return ""
	}
	return req.Extra.Header.Get("Authorization")
}
