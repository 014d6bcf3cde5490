package backend

import (
	"context"
	"net/http"
	"net/url"
)

// ListFiles fetches one directory level. An empty path lists the project root.
// Entries keep the order the backend returned them in.
func (c *Client) ListFiles(ctx context.Context, path string) (*Listing, error) {
	const op = "list files"

	var rawQuery string
	if path != "" {
		rawQuery = url.Values{"path": {path}}.Encode()
	}

	resp, err := c.doRequest(ctx, op, http.MethodGet, "/api/files/list", rawQuery)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, decodeError(resp, op)
	}

	var listing Listing
	if err := decodeJSON(resp, op, &listing); err != nil {
		return nil, err
	}
	if listing.Files == nil {
		listing.Files = []Entry{}
	}

	return &listing, nil
}
