// Package apiclient calls this server's own JSON API on behalf of a caller.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hal9000y/exec-assistant/internal/metrics"
)

// Response is a raw API response.
type Response struct {
	Status int
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// ResponseError is a non-2xx API response.
type ResponseError struct {
	Path   string
	Status int
	Body   []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s responded %d: %s", e.Path, e.Status, strings.TrimSpace(string(e.Body)))
}

// Client issues requests against an API base URL such as http://localhost:3001/api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Do sends body (if non-nil) as JSON and forwards authorization verbatim.
// Non-2xx statuses are returned as a Response, not an error.
func (c *Client) Do(ctx context.Context, method, path, authorization string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal failed: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordDownstreamCall(method, "error", time.Since(start))
		return nil, fmt.Errorf("httpClient.Do %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	metrics.RecordDownstreamCall(method, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll failed: %w", err)
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}

// GetJSON fetches path and decodes a 2xx body into v. Other statuses yield *ResponseError.
func (c *Client) GetJSON(ctx context.Context, path, authorization string, v any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, authorization, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &ResponseError{Path: path, Status: resp.Status, Body: resp.Body}
	}

	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("json.Unmarshal %s failed: %w", path, err)
	}

	return nil
}

// PostJSON sends body to an absolute URL, used for outbound webhooks.
func (c *Client) PostJSON(ctx context.Context, url string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("json.Marshal failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ResponseError{Path: url, Status: resp.StatusCode, Body: b}
	}

	return nil
}
