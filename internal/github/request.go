package github

import (
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

	"github.com/codeGROOVE-dev/retry"
	"github.com/huangsam/repograde/internal/contract"
)

// Retry defaults.
const (
	defaultRetryAttempts = 4
	defaultRetryDelay    = 500 * time.Millisecond
	maxRetryDelay        = 10 * time.Second
	maxErrorBodyBytes    = 512
)

// statusError is a non-2xx response. kind is one of the contract sentinels.
type statusError struct {
	kind      error
	status    int
	path      string
	message   string
	retryable bool
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("%v: GET %s returned %d: %s", e.kind, e.path, e.status, e.message)
	}
	return fmt.Sprintf("%v: GET %s returned %d", e.kind, e.path, e.status)
}

func (e *statusError) Unwrap() error {
	return e.kind
}

// transientError marks network failures that are worth another attempt.
type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return fmt.Sprintf("%v: %v", contract.ErrTransport, e.err)
}

func (e *transientError) Unwrap() []error {
	return []error{contract.ErrTransport, e.err}
}

// classifyResponse maps a non-2xx response to the failure classes callers rely on.
// A 403 counts as rate limiting only when GitHub reports no remaining quota.
func classifyResponse(resp *http.Response, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var apiErr struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &apiErr)

	err := &statusError{status: resp.StatusCode, path: path, message: apiErr.Message}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		err.kind = contract.ErrRepositoryNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		err.kind = contract.ErrRateLimited
		err.retryable = true
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		err.kind = contract.ErrRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		err.kind = contract.ErrTransport
		err.retryable = true
	default:
		err.kind = contract.ErrTransport
	}
	return err
}

// isRetryable reports whether another attempt may succeed.
func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable
	}
	var te *transientError
	return errors.As(err, &te)
}

// drainAndCloseBody drains and closes an HTTP response body to prevent resource leaks.
func (c *Client) drainAndCloseBody(body io.ReadCloser) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		c.logger.Debug("Failed to drain response body", "error", err)
	}
	if err := body.Close(); err != nil {
		c.logger.Debug("Failed to close response body", "error", err)
	}
}

// getJSON performs GET {baseURL}{path} with retries and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return retry.Do(
		func() error {
			return c.getOnce(ctx, path, out)
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(max(c.retryDelay/4, time.Millisecond)),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("Retry attempt", "component", "github", "path", path, "attempt", n+1, "max_attempts", c.retryAttempts, "error", err)
		}),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
}

// getOnce is a single attempt of getJSON.
func (c *Client) getOnce(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", contract.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", contract.ErrTransport, ctx.Err())
		}
		return &transientError{err: err}
	}
	defer c.drainAndCloseBody(resp.Body)

	c.logger.Debug("HTTP response", "component", "github", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyResponse(resp, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", contract.ErrTransport, path, err)
	}
	return nil
}

// repoPath joins the repository prefix with an optional suffix.
func repoPath(owner, name string, suffix ...string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name) + strings.Join(suffix, "")
}

// discardLogger is used when no logger is configured.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
