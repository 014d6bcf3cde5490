package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DocumentState fetches the document currently open in the backend.
func (c *Client) DocumentState(ctx context.Context) (*DocumentState, error) {
	const op = "get project state"

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/api/project/state", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, decodeError(resp, op)
	}

	var state DocumentState
	if err := decodeJSON(resp, op, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

// UpdateDocumentState posts an opaque state update and returns the backend's
// JSON reply untouched.
func (c *Client) UpdateDocumentState(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	const op = "update project state"

	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: body is not valid JSON", op)
	}

	resp, err := c.doRequestWithBody(ctx, op, http.MethodPost, "/api/project/state", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, decodeError(resp, op)
	}

	var reply json.RawMessage
	if err := decodeJSON(resp, op, &reply); err != nil {
		return nil, err
	}

	return reply, nil
}

// ProjectInfo fetches the project registered at the backend root. A backend
// without a project answers with a *StatusError (usually 404).
func (c *Client) ProjectInfo(ctx context.Context) (*ProjectInfo, error) {
	const op = "get project info"

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/api/project/info", "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, decodeError(resp, op)
	}

	var info ProjectInfo
	if err := decodeJSON(resp, op, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// InitProject submits the project init command. It is not idempotent and is
// never retried. A 2xx reply is returned as is, including logical failures
// (Success false); a non-2xx reply becomes a *StatusError.
func (c *Client) InitProject(ctx context.Context, req InitRequest) (*InitResponse, error) {
	const op = "init project"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode init request: %w", err)
	}

	resp, err := c.doRequestWithBody(ctx, op, http.MethodPost, "/api/project/init", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, decodeError(resp, op)
	}

	var result InitResponse
	if err := decodeJSON(resp, op, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
