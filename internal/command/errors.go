package command

import (
	"fmt"
	"net/http"
)

// StatusError is a failure with a fixed HTTP status and JSON body.
type StatusError struct {
	Status int
	Body   any
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status %d: %v", e.Status, e.Err)
	}

	return fmt.Sprintf("status %d: %v", e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// PassthroughError carries a failed downstream response to be relayed verbatim.
type PassthroughError struct {
	Path   string
	Status int
	Body   []byte
}

func (e *PassthroughError) Error() string {
	return fmt.Sprintf("downstream %s responded %d", e.Path, e.Status)
}

func errorBody(msg string) map[string]any {
	return map[string]any{"error": msg}
}

func badRequest(body any, err error) *StatusError {
	return &StatusError{Status: http.StatusBadRequest, Body: body, Err: err}
}
