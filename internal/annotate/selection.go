package annotate

import "log"

// Painter recolors regions. waveform.Surface satisfies it.
type Painter interface {
	Recolor(id string, color string) error
}

// Selection tracks the single selected region/comment pair and is the only
// writer of the selected color.
type Selection struct {
	regions       *RegionMap
	painter       Painter
	baseColor     func(regionID string) string
	selectedColor string

	active    bool
	regionID  string
	commentID CommentID
}

// NewSelection creates an empty selection. baseColor returns the color a
// region goes back to when it is deselected.
func NewSelection(regions *RegionMap, selectedColor string, baseColor func(regionID string) string) *Selection {
	return &Selection{
		regions:       regions,
		baseColor:     baseColor,
		selectedColor: selectedColor,
	}
}

// SetPainter swaps the surface recolors go to. A nil painter disables them.
func (s *Selection) SetPainter(p Painter) {
	s.painter = p
}

// Current returns the selected pair. regionID is empty when a comment is
// selected without a region; commentID is zero for an unmapped region.
func (s *Selection) Current() (regionID string, commentID CommentID, ok bool) {
	return s.regionID, s.commentID, s.active
}

// IsRegionSelected reports whether regionID is the selected region
func (s *Selection) IsRegionSelected(regionID string) bool {
	return s.active && regionID != "" && s.regionID == regionID
}

// ClickRegion toggles regionID. It returns true when the region ends up
// selected.
func (s *Selection) ClickRegion(regionID string) bool {
	if s.IsRegionSelected(regionID) {
		s.restore(regionID)
		s.clear()
		return false
	}

	commentID, _ := s.regions.Get(regionID)
	s.moveTo(regionID, commentID)
	return true
}

// SelectComment selects a comment and its region, if it has one
func (s *Selection) SelectComment(commentID CommentID) {
	regionID, ok := s.regions.RegionFor(commentID)
	if !ok {
		if s.active && s.regionID != "" {
			s.restore(s.regionID)
		}
		s.active = true
		s.regionID = ""
		s.commentID = commentID
		return
	}

	if s.active && s.regionID == regionID && s.commentID == commentID {
		return
	}
	s.moveTo(regionID, commentID)
}

// ClearComment deselects commentID if it is selected
func (s *Selection) ClearComment(commentID CommentID) bool {
	if !s.active || s.commentID != commentID {
		return false
	}
	if s.regionID != "" {
		s.restore(s.regionID)
	}
	s.clear()
	return true
}

// ClearRegion deselects regionID if it is selected
func (s *Selection) ClearRegion(regionID string) bool {
	if !s.IsRegionSelected(regionID) {
		return false
	}
	s.restore(regionID)
	s.clear()
	return true
}

// Attach sets the comment of a selected region whose comment was unknown
func (s *Selection) Attach(regionID string, commentID CommentID) {
	if s.IsRegionSelected(regionID) {
		s.commentID = commentID
	}
}

// Relabel follows a comment whose id changed
func (s *Selection) Relabel(from, to CommentID) {
	if s.active && s.commentID == from {
		s.commentID = to
	}
}

// Reset forgets the selection without recoloring. Used after the regions
// were discarded.
func (s *Selection) Reset() {
	s.clear()
}

func (s *Selection) moveTo(regionID string, commentID CommentID) {
	if s.active && s.regionID != "" && s.regionID != regionID {
		s.restore(s.regionID)
	}
	s.paint(regionID, s.selectedColor)

	s.active = true
	s.regionID = regionID
	s.commentID = commentID
}

func (s *Selection) restore(regionID string) {
	s.paint(regionID, s.baseColor(regionID))
}

func (s *Selection) paint(regionID, color string) {
	if s.painter == nil {
		return
	}
	if err := s.painter.Recolor(regionID, color); err != nil {
		log.Printf("[DEBUG] selection: recolor %s: %v", regionID, err)
	}
}

func (s *Selection) clear() {
	s.active = false
	s.regionID = ""
	s.commentID = CommentID{}
}
