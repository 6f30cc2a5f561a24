package types

// CreateCommentRequest posts a comment anchored at a point in a track
type CreateCommentRequest struct {
	TrackID   uint    `json:"track_id" binding:"required" example:"7"`
	Content   string  `json:"content" binding:"required" example:"nice drop"`
	Time      float64 `json:"time" example:"40"` // Seconds from the start of the track
	RegionID  string  `json:"region_id" example:"region-1714560000000"`
	Color     string  `json:"color,omitempty" example:"rgba(255, 0, 0, 0.5)"`
	Draggable bool    `json:"draggable" example:"false"`
	Resizable bool    `json:"resizable" example:"false"`
}

// CreateTrackRequest registers a track
type CreateTrackRequest struct {
	Title    string  `json:"title" binding:"required" example:"Night Drive"`
	FilePath string  `json:"file_path" binding:"required" example:"/music/night-drive.mp3"`
	Duration float64 `json:"duration" binding:"required" example:"120"`
}
