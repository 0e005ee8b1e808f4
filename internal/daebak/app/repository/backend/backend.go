// Package backend is the REST client of the Mr. Daeback backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

type tokenKey struct{}

// WithToken attaches the caller's bearer token to every request made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Client struct {
	baseURL *url.URL
	client  *http.Client
	log     *slog.Logger
}

func New(baseURL *url.URL, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

func (c *Client) Name() string { return "backend" }

// do sends one request. A nil body sends no payload, a nil out discards the
// response. Failures are never retried.
func (c *Client) do(ctx context.Context, method string, path []string, query url.Values, body, out any) error {
	escaped := make([]string, len(path))
	for i := range path {
		escaped[i] = url.PathEscape(path[i])
	}

	target := c.baseURL.JoinPath(escaped...)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("build req: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("exec req: %w", err)
	}
	defer res.Body.Close()

	c.log.DebugContext(ctx, "backend call",
		slog.String("method", method),
		slog.String("path", target.Path),
		slog.Int("status", res.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	switch {
	case res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices:
		if out == nil || res.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, res.Body)
			return nil
		}

		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("decode body: %w", err)
		}

		return nil

	default:
		return readStatusError(res)
	}
}

func p(parts ...string) []string { return parts }
