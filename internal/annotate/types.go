package annotate

import (
	"context"
	"log"
	"time"

	"github.com/killallgit/waveform-comments/internal/waveform"
)

// CommentState is the client-side lifecycle of a comment
type CommentState string

const (
	StatePending   CommentState = "pending"
	StateConfirmed CommentState = "confirmed"
)

// DraftState is the lifecycle of a draft region
type DraftState string

const (
	DraftOpen       DraftState = "open"
	DraftSubmitting DraftState = "submitting"
	DraftFailed     DraftState = "failed"
)

// Marker anchors a comment to a time offset and the region drawn for it
type Marker struct {
	Time      float64
	RegionID  string
	CommentID CommentID
	Color     string
	Draggable bool
	Resizable bool
}

// Comment is a comment as the session holds it
type Comment struct {
	ID        CommentID
	TrackID   uint
	UserID    uint
	UserName  string
	Content   string
	CreatedAt time.Time
	Marker    *Marker
	State     CommentState
}

// Draft is a region created from a gesture that has no confirmed comment yet
type Draft struct {
	RegionID string
	Start    float64
	End      float64
	Color    string
	State    DraftState
}

// RemoteMarker is a marker as the persistence layer returns it
type RemoteMarker struct {
	ID        uint    `json:"id"`
	Time      float64 `json:"time"`
	RegionID  string  `json:"region_id"`
	CommentID uint    `json:"comment_id"`
	Color     string  `json:"color,omitempty"`
	Draggable bool    `json:"draggable"`
	Resizable bool    `json:"resizable"`
}

// RemoteComment is a comment as the persistence layer returns it
type RemoteComment struct {
	ID        uint          `json:"id"`
	TrackID   uint          `json:"track_id"`
	UserID    uint          `json:"user_id"`
	UserName  string        `json:"user_name"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Marker    *RemoteMarker `json:"marker,omitempty"`
}

// CreateRequest creates a comment and its marker in one call
type CreateRequest struct {
	TrackID   uint    `json:"track_id"`
	Content   string  `json:"content"`
	Time      float64 `json:"time"`
	RegionID  string  `json:"region_id"`
	Color     string  `json:"color,omitempty"`
	Draggable bool    `json:"draggable"`
	Resizable bool    `json:"resizable"`
}

// Store is the persistence collaborator
type Store interface {
	FetchCommentsAndMarkers(ctx context.Context, trackID uint) ([]RemoteComment, error)
	CreateCommentWithMarker(ctx context.Context, req CreateRequest, token string) (*RemoteComment, error)
	DeleteComment(ctx context.Context, commentID uint64, token string) error
}

// Identity is the signed-in user
type Identity struct {
	UserID   uint
	UserName string
	Token    string
}

// AuthProvider supplies the current identity, if any
type AuthProvider interface {
	Current() (Identity, bool)
}

// StaticAuth always returns the same identity
type StaticAuth struct {
	Identity Identity
}

func (a StaticAuth) Current() (Identity, bool) {
	return a.Identity, a.Identity.UserID != 0
}

// EntrySurface is where the user types a comment for a region.
// Implementations must not call back into the Session synchronously.
type EntrySurface interface {
	Open(regionID string)
	Close()
}

// CommentsPanel lists comments
type CommentsPanel interface {
	ShowComments()
}

// Reporter surfaces user-visible errors
type Reporter interface {
	Report(err error)
}

// Listener is notified with a fresh snapshot after every state change
type Listener func(Snapshot)

// Palette holds the region colors
type Palette struct {
	Default  string
	Selected string
	Draft    string
}

// DefaultPalette returns the stock region colors
func DefaultPalette() Palette {
	return Palette{
		Default:  "rgba(255, 0, 0, 0.5)",
		Selected: "rgba(0, 255, 0, 0.7)",
		Draft:    "rgba(255, 165, 0, 0.5)",
	}
}

// Snapshot is a copy of the session state for rendering
type Snapshot struct {
	TrackID         uint
	Ready           bool
	Comments        []Comment
	Regions         []waveform.RegionHandle
	Mapping         []MapEntry
	SelectedRegion  string
	SelectedComment CommentID
	Drafts          []Draft
	ActiveDraft     string
	EntryOpen       bool
}

type nopEntry struct{}

func (nopEntry) Open(string) {}
func (nopEntry) Close()      {}

type nopPanel struct{}

func (nopPanel) ShowComments() {}

type logReporter struct{}

func (logReporter) Report(err error) {
	log.Printf("[ERROR] annotate: %v", err)
}
