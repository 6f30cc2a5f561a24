package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// CommentsResponse lists a track's comments, newest first
type CommentsResponse struct {
	BaseResponse
	Comments []Comment `json:"comments"`
	Count    int       `json:"count"`
}

// CommentResponse for a single comment
type CommentResponse struct {
	BaseResponse
	Comment *Comment `json:"comment"`
}

// TracksResponse for track lists
type TracksResponse struct {
	BaseResponse
	Tracks []Track `json:"tracks"`
	Count  int     `json:"count"`
	Offset int     `json:"offset,omitempty"`
}

// TrackResponse for a single track
type TrackResponse struct {
	BaseResponse
	Track *Track `json:"track"`
}

// UserResponse for the authenticated caller
type UserResponse struct {
	BaseResponse
	User *User `json:"user"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Database  map[string]interface{} `json:"database"`
}
