package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/killallgit/waveform-comments/internal/annotate"
)

// Config holds configuration for the comments API client
type Config struct {
	BaseURL              string
	UserAgent            string
	Timeout              time.Duration
	MaxRetries           int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// Client talks to the comments API. It implements annotate.Store.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string

	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration

	fetches singleflight.Group
}

var _ annotate.Store = (*Client)(nil)

// NewClient creates a new API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "waveform-comments/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = 200 * time.Millisecond
	}
	if cfg.RetryMaxInterval <= 0 {
		cfg.RetryMaxInterval = 2 * time.Second
	}

	return &Client{
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:       cfg.UserAgent,
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.RetryInitialInterval,
		maxInterval:     cfg.RetryMaxInterval,
	}
}

// FetchCommentsAndMarkers lists a track's comments with their markers,
// newest first. Concurrent calls for the same track share one request. The
// shared request outlives any single caller, so a caller that gives up does
// not fail the others waiting on it.
func (c *Client) FetchCommentsAndMarkers(ctx context.Context, trackID uint) ([]annotate.RemoteComment, error) {
	key := strconv.FormatUint(uint64(trackID), 10)

	ch := c.fetches.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchBudget())
		defer cancel()

		var resp commentsResponse
		if err := c.getWithRetry(fetchCtx, fmt.Sprintf("/api/v1/tracks/%d/comments", trackID), &resp); err != nil {
			return nil, err
		}
		return resp.Comments, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Printf("[DEBUG] Shared comments fetch for track %d", trackID)
		}
		comments := res.Val.([]annotate.RemoteComment)
		return append([]annotate.RemoteComment(nil), comments...), nil
	}
}

// fetchBudget bounds a shared fetch: every attempt may take the full
// request timeout plus the longest wait between attempts
func (c *Client) fetchBudget() time.Duration {
	attempts := time.Duration(c.maxRetries + 1)
	return attempts*c.httpClient.Timeout + time.Duration(c.maxRetries)*c.maxInterval
}

// CreateCommentWithMarker creates a comment and its marker. It is not
// retried.
func (c *Client) CreateCommentWithMarker(ctx context.Context, req annotate.CreateRequest, token string) (*annotate.RemoteComment, error) {
	var resp commentResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/comments", token, req, &resp); err != nil {
		return nil, err
	}
	if resp.Comment == nil {
		return nil, errors.New("response did not include the created comment")
	}
	return resp.Comment, nil
}

// DeleteComment deletes a comment owned by the token's user
func (c *Client) DeleteComment(ctx context.Context, commentID uint64, token string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/comments/%d", commentID), token, nil, nil)
}

// ListTracks lists every track
func (c *Client) ListTracks(ctx context.Context) ([]Track, error) {
	var resp tracksResponse
	if err := c.getWithRetry(ctx, "/api/v1/tracks", &resp); err != nil {
		return nil, err
	}
	return resp.Tracks, nil
}

// GetTrack fetches one track
func (c *Client) GetTrack(ctx context.Context, trackID uint) (*Track, error) {
	var resp trackResponse
	if err := c.getWithRetry(ctx, fmt.Sprintf("/api/v1/tracks/%d", trackID), &resp); err != nil {
		return nil, err
	}
	if resp.Track == nil {
		return nil, errors.Errorf("track %d missing from response", trackID)
	}
	return resp.Track, nil
}

// CreateTrack registers a track
func (c *Client) CreateTrack(ctx context.Context, req CreateTrackRequest, token string) (*Track, error) {
	var resp trackResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/tracks", token, req, &resp); err != nil {
		return nil, err
	}
	if resp.Track == nil {
		return nil, errors.New("response did not include the created track")
	}
	return resp.Track, nil
}

// Me resolves the user a token was issued to
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New("response did not include the user")
	}
	return resp.User, nil
}

// getWithRetry retries transport failures and 5xx responses with
// exponential backoff. Other API errors fail immediately.
func (c *Client) getWithRetry(ctx context.Context, path string, out interface{}) error {
	var b backoff.BackOff = &backoff.ExponentialBackOff{
		InitialInterval:     c.initialInterval,
		RandomizationFactor: 0.5,
		Multiplier:          2,
		MaxInterval:         c.maxInterval,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b = backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)

	op := func() error {
		err := c.do(ctx, http.MethodGet, path, "", nil, out)
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Printf("[WARN] GET %s failed: %v. Retrying in %s", path, err, wait)
	}

	return backoff.RetryNotify(op, b, notify)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}
