package annotate

import (
	"context"
	"log"
	"math"
	"sort"

	"github.com/killallgit/waveform-comments/internal/waveform"
)

// Reload fetches the track's comments and markers and redraws every region.
// Only the most recently issued load is applied.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.track == nil {
		s.mu.Unlock()
		return newPreconditionError("track", "no active track")
	}
	if !s.ready {
		s.mu.Unlock()
		return newPreconditionError("surface", "waveform is not ready")
	}
	s.loadSeq++
	gen, seq, trackID := s.generation, s.loadSeq, s.track.ID
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	return s.load(ctx, gen, seq, trackID)
}

func (s *Session) load(ctx context.Context, gen, seq uint64, trackID uint) error {
	remote, err := s.store.FetchCommentsAndMarkers(ctx, trackID)

	s.mu.Lock()
	defer s.unlockAndNotify()

	if gen != s.generation || seq != s.loadSeq {
		log.Printf("[DEBUG] annotate: discarding load %d for track %d", seq, trackID)
		return &StaleResponseError{Op: "load markers", TrackID: trackID}
	}
	if err != nil {
		netErr := &NetworkError{Op: "load markers", Err: err}
		s.reporter.Report(netErr)
		return netErr
	}

	s.reconcileLocked(remote)
	return nil
}

// reconcileLocked replaces the regions, the map and the comment list with
// the fetched data
func (s *Session) reconcileLocked(remote []RemoteComment) {
	s.surface.RemoveAllRegions()

	comments := make([]Comment, 0, len(remote))
	entries := make([]MapEntry, 0, len(remote))
	skipped := 0

	for _, rc := range remote {
		c := commentFromRemote(rc)

		if rc.Marker != nil {
			handle, ok := s.drawMarkerLocked(rc)
			if ok {
				c.Marker.RegionID = handle.ID
				entries = append(entries, MapEntry{RegionID: handle.ID, CommentID: c.ID})
			} else {
				skipped++
			}
		}
		comments = append(comments, c)
	}

	sortNewestFirst(comments)

	s.regions.Rebuild(entries)
	s.comments = comments
	s.drafts = make(map[string]*Draft)
	s.activeDraft = ""
	s.closeEntryLocked()
	s.selection.Reset()

	log.Printf("[INFO] annotate: track %d loaded %d comments, %d regions, %d markers skipped",
		s.track.ID, len(comments), len(entries), skipped)
}

func (s *Session) drawMarkerLocked(rc RemoteComment) (waveform.RegionHandle, bool) {
	m := rc.Marker
	if rc.ID == 0 || m.RegionID == "" {
		log.Printf("[WARN] annotate: skipping marker %d without comment or region id", m.ID)
		return waveform.RegionHandle{}, false
	}
	if math.IsNaN(m.Time) || math.IsInf(m.Time, 0) || m.Time < 0 {
		log.Printf("[WARN] annotate: skipping marker %d with invalid time %v", m.ID, m.Time)
		return waveform.RegionHandle{}, false
	}

	color := m.Color
	if color == "" {
		color = s.palette.Default
	}

	handle, err := s.surface.CreateRegion(waveform.RegionParams{
		ID:        m.RegionID,
		Start:     m.Time,
		End:       m.Time + s.markerLength,
		Color:     color,
		Draggable: m.Draggable,
		Resizable: m.Resizable,
	})
	if err != nil {
		log.Printf("[WARN] annotate: drawing marker %d: %v", m.ID, err)
		return waveform.RegionHandle{}, false
	}
	return handle, true
}

func commentFromRemote(rc RemoteComment) Comment {
	c := Comment{
		ID:        ConfirmedID(uint64(rc.ID)),
		TrackID:   rc.TrackID,
		UserID:    rc.UserID,
		UserName:  rc.UserName,
		Content:   rc.Content,
		CreatedAt: rc.CreatedAt,
		State:     StateConfirmed,
	}
	if rc.Marker != nil {
		c.Marker = &Marker{
			Time:      rc.Marker.Time,
			RegionID:  rc.Marker.RegionID,
			CommentID: c.ID,
			Color:     rc.Marker.Color,
			Draggable: rc.Marker.Draggable,
			Resizable: rc.Marker.Resizable,
		}
	}
	return c
}

func sortNewestFirst(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID.Value > comments[j].ID.Value
	})
}
