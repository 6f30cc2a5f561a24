package types

import "github.com/killallgit/waveform-comments/internal/models"

// FromTrackModel transforms a database track to its API shape
func FromTrackModel(t *models.Track) *Track {
	if t == nil {
		return nil
	}
	return &Track{
		ID:        t.ID,
		Title:     t.Title,
		FilePath:  t.FilePath,
		Duration:  t.Duration,
		CreatedAt: t.CreatedAt,
	}
}

// FromTrackModels transforms a list of tracks, never returning nil
func FromTrackModels(in []models.Track) []Track {
	out := make([]Track, 0, len(in))
	for i := range in {
		out = append(out, *FromTrackModel(&in[i]))
	}
	return out
}

// FromCommentModel transforms a database comment, with its author and marker
func FromCommentModel(c *models.Comment) *Comment {
	if c == nil {
		return nil
	}
	comment := &Comment{
		ID:        c.ID,
		UUID:      c.UUID,
		TrackID:   c.TrackID,
		UserID:    c.UserID,
		UserName:  c.User.Name,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if m := c.Marker; m != nil {
		comment.Marker = &Marker{
			ID:        m.ID,
			Time:      m.Time,
			RegionID:  m.RegionID,
			CommentID: c.ID,
			Color:     m.Color,
			Draggable: m.Draggable,
			Resizable: m.Resizable,
		}
	}
	return comment
}

// FromCommentModels transforms a list of comments, never returning nil
func FromCommentModels(in []models.Comment) []Comment {
	out := make([]Comment, 0, len(in))
	for i := range in {
		out = append(out, *FromCommentModel(&in[i]))
	}
	return out
}
