package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
)

// getJSON performs a single authenticated GET. Requests are never retried.
// A non-2xx response is returned as *errors.StatusError; anything else is a
// transport or decode failure.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("TMDB request", "url", redactQuery(req), "status", resp.StatusCode, "latency", latency)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return marqueeerrors.NewStatusError(resp.StatusCode, statusMessage(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// statusMessage extracts TMDB's status_message from an error body, falling
// back to the trimmed raw body.
func statusMessage(body []byte) string {
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.StatusMessage != "" {
		return payload.StatusMessage
	}
	return strings.TrimSpace(string(body))
}

func redactQuery(req *http.Request) string {
	return req.URL.Path + "?" + req.URL.Query().Encode()
}
