package models

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a listener's note on a track, anchored by an optional marker
type Comment struct {
	gorm.Model
	UUID    string `json:"uuid" gorm:"uniqueIndex"`
	TrackID uint   `json:"track_id" gorm:"not null;index"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	Content string `json:"content" gorm:"type:text;not null"`

	// Relationships
	User   User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Marker *Marker `json:"marker,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate generates a UUID before creating a new comment
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// Marker pins a comment to a point in time on the waveform
type Marker struct {
	gorm.Model
	CommentID uint    `json:"comment_id" gorm:"not null;uniqueIndex"`
	Time      float64 `json:"time" gorm:"not null"` // Time in seconds
	RegionID  string  `json:"region_id"`
	Color     string  `json:"color"`
	Draggable bool    `json:"draggable" gorm:"default:false"`
	Resizable bool    `json:"resizable" gorm:"default:false"`
}

// BeforeSave rejects times the waveform cannot place
func (m *Marker) BeforeSave(tx *gorm.DB) error {
	if m.Time < 0 || math.IsNaN(m.Time) || math.IsInf(m.Time, 0) {
		return ErrInvalidMarkerTime
	}
	return nil
}

// TableName returns the table name for the Marker model
func (Marker) TableName() string {
	return "markers"
}
