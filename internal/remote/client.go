// Package remote implements the gateway to the opaque remote CRUD backend.
// The backend is best-effort by contract: every call here may fail, time out,
// or come back empty, and callers are expected to treat all of those the same
// way — "unavailable", never a distinct signal.
package remote

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/ratelimit"
)

const (
	// Rate limit: outbound mirror traffic per resource, burst for quick
	// successive edits from the dashboard.
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 30 * time.Second
)

// ErrUnavailable is returned for any transport or server failure.
// Callers fall back to the local tiers; the distinction between a 500, a
// timeout, and a refused connection is only interesting in the logs.
var ErrUnavailable = errors.New("remote: backend unavailable")

// Client is the shared transport for all entity resources.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// Config holds client settings.
type Config struct {
	BaseURL string
	Token   string        // optional bearer token
	Timeout time.Duration // zero means the default
}

// NewClient creates a remote client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
	}
}

// doRequest executes an HTTP request with rate limiting.
// Any non-2xx status or transport error collapses into ErrUnavailable.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx, path); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Inkwell/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("remote request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return respBody, nil
}

// Resource is the typed CRUD gateway for one entity path (e.g. "libros").
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource creates a resource bound to a collection path on the backend.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// GetAll fetches the full collection. A nil slice with nil error is a valid
// outcome (backend returned an empty or null body); callers treat it like
// unavailability per the tier contract.
func (r *Resource[T]) GetAll(ctx context.Context) ([]T, error) {
	body, err := r.client.doRequest(ctx, http.MethodGet, r.path, nil)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return out, nil
}

// Create mirrors a locally created record. Returns the backend's echo of the
// record, or nil if the backend answered with an empty body.
func (r *Resource[T]) Create(ctx context.Context, record T) (*T, error) {
	body, err := r.client.doRequest(ctx, http.MethodPost, r.path, record)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](body)
}

// Update mirrors a local update of the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, record T) (*T, error) {
	body, err := r.client.doRequest(ctx, http.MethodPut, r.path+"/"+strconv.FormatInt(id, 10), record)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](body)
}

// Delete mirrors a local delete. The bool mirrors the backend's own claim of
// whether anything was removed; callers do not act on it.
func (r *Resource[T]) Delete(ctx context.Context, id int64) (bool, error) {
	_, err := r.client.doRequest(ctx, http.MethodDelete, r.path+"/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return false, err
	}
	return true, nil
}

func decodeRecord[T any](body []byte) (*T, error) {
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return &out, nil
}
