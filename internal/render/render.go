// Package render is a client for an external headless-browser rendering
// service, the alternative export path that turns a public proposal page
// into a PDF. The service itself is an opaque collaborator; this client just
// posts a URL and reads back the rendered document.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// pageLoadTimeout bounds the whole render round trip; the renderer
	// additionally applies its own page-load timeout and settle delay.
	pageLoadTimeout = 30 * time.Second

	maxDocumentBytes = 128 << 20
)

// Client posts render jobs to the rendering service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a render client for the given service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: pageLoadTimeout},
	}
}

// Available reports whether a rendering service is configured.
func (c *Client) Available() bool {
	return c != nil && c.baseURL != ""
}

// RenderPage asks the service to render the given public URL to a PDF.
// A timeout is a recoverable per-document failure: the caller reports it and
// the process carries on.
func (c *Client) RenderPage(ctx context.Context, pageURL string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"url": pageURL, "format": "A4"})
	if err != nil {
		return nil, fmt.Errorf("could not marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read rendered document: %w", err)
	}
	return data, nil
}
