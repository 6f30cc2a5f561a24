package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/killallgit/waveform-comments/internal/annotate"
)

// Track is a track as the API returns it
type Track struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FilePath  string    `json:"file_path"`
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTrackRequest registers a track
type CreateTrackRequest struct {
	Title    string  `json:"title"`
	FilePath string  `json:"file_path"`
	Duration float64 `json:"duration"`
}

// User is a comment author as the API returns it
type User struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	Status string `json:"status"`
	User   *User  `json:"user"`
}

type commentsResponse struct {
	Status   string                   `json:"status"`
	Comments []annotate.RemoteComment `json:"comments"`
}

type commentResponse struct {
	Status  string                  `json:"status"`
	Comment *annotate.RemoteComment `json:"comment"`
}

type tracksResponse struct {
	Status string  `json:"status"`
	Tracks []Track `json:"tracks"`
}

type trackResponse struct {
	Status string `json:"status"`
	Track  *Track `json:"track"`
}

type errorBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Details interface{} `json:"details"`
}

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusBadRequest {
		if e.Details != "" {
			return fmt.Sprintf("Validation error: %s (%s)", e.Message, e.Details)
		}
		return fmt.Sprintf("Validation error: %s", e.Message)
	}
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying may succeed
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		switch d := body.Details.(type) {
		case nil:
		case string:
			apiErr.Details = d
		default:
			if b, err := json.Marshal(d); err == nil {
				apiErr.Details = string(b)
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
