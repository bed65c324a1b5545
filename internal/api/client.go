// Package api is the typed HTTP client for the GMS backend. All
// persistence lives behind this collaborator; the client only decodes,
// extracts error messages and signals unauthorized responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to the backend. BaseURL is empty in the browser (same
// origin, the shell proxies /api); tests point it at an httptest server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnUnauthorized runs once per 401 response, before the error is
	// returned. The app uses it to clear the session and force the login
	// route.
	OnUnauthorized func()
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

// Error is a failed HTTP exchange with the message already extracted
// from the response body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status behind an error, 0 for transport
// failures.
func StatusOf(err error) int {
	if ae, ok := err.(*Error); ok {
		return ae.Status
	}
	return 0
}

// extractMessage pulls a human-readable message out of an error body,
// preferring message, then details, then error. details outranks error
// so precondition payloads like the assign conflict surface their long
// form. Unparseable bodies fall through to empty so callers substitute
// their own fallback.
func extractMessage(body []byte) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return strings.TrimSpace(string(body))
	}
	for _, key := range []string{"message", "details", "error"} {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	httpc := c.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized {
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return &Error{Status: resp.StatusCode, Message: extractMessage(raw)}
	}
	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: extractMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if rawOut, ok := out.(*[]byte); ok {
		*rawOut = raw
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
