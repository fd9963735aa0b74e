package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hal9000y/exec-assistant/internal/command"
)

type RunCommandRequest struct {
	Command string `json:"command" jsonschema:"free-text instruction, e.g. 'remind me to send the report on Friday'"`
}

type RunCommandResponse struct {
	Result any `json:"result" jsonschema:"short description of what was done"`
	Event  any `json:"event,omitempty" jsonschema:"created calendar event"`
	Task   any `json:"task,omitempty" jsonschema:"created or completed task"`
	Emails any `json:"emails,omitempty" jsonschema:"unread messages"`
	Draft  any `json:"draft,omitempty" jsonschema:"created draft"`
}

type dispatcher interface {
	Dispatch(ctx context.Context, command, authorization string) (map[string]any, error)
}

func NewRunCommand(d dispatcher) *RunCommand {
	return &RunCommand{d: d}
}

type RunCommand struct {
	d dispatcher
}

func (t *RunCommand) RunCommand(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input RunCommandRequest,
) (*mcp.CallToolResult, RunCommandResponse, error) {
	out, err := t.d.Dispatch(ctx, input.Command, authorization(req))
	if err != nil {
		return nil, RunCommandResponse{}, describeDispatchError(err)
	}

	var resp RunCommandResponse
	b, err := json.Marshal(out)
	if err != nil {
		return nil, RunCommandResponse{}, fmt.Errorf("json.Marshal failed: %w", err)
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, RunCommandResponse{}, fmt.Errorf("json.Unmarshal failed: %w", err)
	}

	return nil, resp, nil
}

// describeDispatchError renders client-facing failures with their status and body.
func describeDispatchError(err error) error {
	var statusErr *command.StatusError
	if errors.As(err, &statusErr) {
		b, _ := json.Marshal(statusErr.Body)
		return fmt.Errorf("command rejected (%d): %s", statusErr.Status, b)
	}

	var passErr *command.PassthroughError
	if errors.As(err, &passErr) {
		return fmt.Errorf("%s failed (%d): %s", passErr.Path, passErr.Status, passErr.Body)
	}

	return fmt.Errorf("dispatch failed: %w", err)
}
