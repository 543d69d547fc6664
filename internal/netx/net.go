// Package netx fetches remote documents over HTTP(S) and file:// URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/resourcehub/internal/common"
)

// maxErrorBody bounds how much of a failed response ends up in the error.
const maxErrorBody = 512

type Client struct {
	http *http.Client
}

// NewClient returns a client that also serves file:// URLs from the local
// filesystem, which is where the local object store puts uploads.
func NewClient() *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &Client{http: &http.Client{Transport: t}}
}

// NewClientWith wraps an existing http.Client.
func NewClientWith(c *http.Client) *Client {
	return &Client{http: c}
}

// Fetch GETs url and returns the whole body. Transport failures and non-2xx
// responses are reported as common.ErrFetch.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFetch, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s: %s; body: %s", common.ErrFetch, url, resp.Status, string(b))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", common.ErrFetch, err)
	}
	return data, nil
}
