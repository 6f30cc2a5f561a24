package types

import "time"

// Core data types used across API responses

// Track is an annotatable audio file
type Track struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FilePath  string    `json:"file_path"`
	Duration  float64   `json:"duration"` // Seconds
	CreatedAt time.Time `json:"created_at"`
}

// Marker places a comment on the waveform
type Marker struct {
	ID        uint    `json:"id"`
	Time      float64 `json:"time"` // Seconds
	RegionID  string  `json:"region_id"`
	CommentID uint    `json:"comment_id"`
	Color     string  `json:"color,omitempty"`
	Draggable bool    `json:"draggable"`
	Resizable bool    `json:"resizable"`
}

// Comment is a listener's note with its marker
type Comment struct {
	ID        uint      `json:"id"`
	UUID      string    `json:"uuid"`
	TrackID   uint      `json:"track_id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Marker    *Marker   `json:"marker,omitempty"`
}

// User is the authenticated caller
type User struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
