package models

import (
	"time"

	"gorm.io/gorm"
)

// Track is an audio file that listeners annotate
type Track struct {
	gorm.Model
	Title    string  `json:"title" gorm:"not null"`
	FilePath string  `json:"file_path" gorm:"not null"`
	Duration float64 `json:"duration" gorm:"not null;default:0"` // Duration in seconds

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:TrackID"`
}

// TableName returns the table name for the Track model
func (Track) TableName() string {
	return "tracks"
}

// User is a comment author. Bearer tokens carry the user id.
type User struct {
	gorm.Model
	Name       string    `json:"name" gorm:"uniqueIndex;not null"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// All returns every model the schema is made of, in migration order
func All() []any {
	return []any{&Track{}, &User{}, &Comment{}, &Marker{}}
}
