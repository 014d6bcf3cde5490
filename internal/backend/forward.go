package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var errMalformed = errors.New("malformed response: body is not JSON")

// Response is a backend reply captured verbatim for passthrough.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forward performs one raw call against the backend and returns its status and
// body unchanged, whatever the status. Only transport failures and a 2xx body
// that is not JSON are errors; error bodies pass through in any format.
func (c *Client) Forward(ctx context.Context, method, path, rawQuery string, body []byte) (*Response, error) {
	op := fmt.Sprintf("forward %s %s", method, path)

	resp, err := c.doRequestWithBody(ctx, op, method, path, rawQuery, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if isSuccess(resp.StatusCode) && resp.StatusCode != http.StatusNoContent && !json.Valid(data) {
		return nil, &TransportError{Op: op, Err: errMalformed}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// IsRead reports whether method is one the backend serves without side effects.
func IsRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}
