// Package gateway translates between local entity shapes and the remote
// schema and performs row-scoped CRUD against the hosted backend. It is the
// only place local and remote field names are mapped.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 12 * time.Second

// ErrNotAuthenticated is returned by every mutation attempted without an
// identity. Callers treat it as expected local-only mode, not a failure.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotConfigured is returned by New when the backend URL or key is absent.
var ErrNotConfigured = errors.New("backend not configured")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("backend request failed with status %d: %s", e.Status, body)
}

// Config holds the connection settings for the backend.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client speaks the backend's JSON REST dialect. All queries are filtered by
// the user id the caller passes; the server additionally enforces row
// ownership, this layer only avoids stating a different owner.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

// New builds a client, or ErrNotConfigured when URL or key is missing.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	apiKey := strings.TrimSpace(cfg.APIKey)
	if baseURL == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient, log: log}, nil
}

// do performs one request against /rest/v1/<table>. prefer, when non-empty,
// is sent as the Prefer header (upsert resolution). out, when non-nil,
// receives the decoded response body.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, prefer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", table, err)
		}
		reader = bytes.NewReader(payload)
	}

	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", table, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute %s request: %w", table, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", table, err)
		}
	}
	return nil
}

// eq builds a PostgREST equality filter value.
func eq(v string) string { return "eq." + v }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
