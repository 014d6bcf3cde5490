package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RequestIDHeader carries the correlation id between dashboard, gateway and backend.
const RequestIDHeader = "X-Request-Id"

// maxResponseBytes bounds how much of a backend response is read.
const maxResponseBytes = 8 << 20

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID attaches a correlation id that outgoing requests send in
// the X-Request-Id header.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation id attached to ctx.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Client talks to the project backend over JSON/HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path, rawQuery string, body []byte) (*http.Request, error) {
	target := c.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if IsRead(method) {
		// Reads must reach the live backend, never an intermediate cache.
		req.Header.Set("Cache-Control", "no-cache, no-store")
		req.Header.Set("Pragma", "no-cache")
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	return req, nil
}

func (c *Client) doRequest(ctx context.Context, op, method, path, rawQuery string) (*http.Response, error) {
	return c.doRequestWithBody(ctx, op, method, path, rawQuery, nil)
}

func (c *Client) doRequestWithBody(ctx context.Context, op, method, path, rawQuery string, body []byte) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, rawQuery, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	return resp, nil
}

// decodeError turns a non-success response into a *StatusError.
func decodeError(resp *http.Response, op string) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read error response: %w", err)}
	}

	se := &StatusError{Op: op, StatusCode: resp.StatusCode, Body: data}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		se.Reason = body.reason()
	}
	return se
}

// decodeJSON decodes a success body. A body that cannot be decoded is a
// malformed response and therefore a transport failure.
func decodeJSON(resp *http.Response, op string, v any) error {
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
