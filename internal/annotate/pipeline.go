package annotate

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/killallgit/waveform-comments/internal/waveform"
)

// StartDraftRegion draws a draft region at clickTime and opens the entry
// surface for it. It returns nil when no ready track is open.
func (s *Session) StartDraftRegion(clickTime float64) *Draft {
	s.mu.Lock()
	defer s.unlockAndNotify()

	d := s.startDraftLocked(clickTime)
	if d == nil {
		return nil
	}
	out := *d
	return &out
}

func (s *Session) startDraftLocked(t float64) *Draft {
	if s.track == nil || s.surface == nil || !s.ready {
		log.Printf("[DEBUG] annotate: no ready track, ignoring draft at %.2fs", t)
		return nil
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		log.Printf("[DEBUG] annotate: ignoring draft at invalid time %v", t)
		return nil
	}

	handle, err := s.surface.CreateRegion(waveform.RegionParams{
		Start: t,
		End:   t + s.draftLength,
		Color: s.palette.Draft,
	})
	if err != nil {
		s.reporter.Report(&AdapterError{Err: err})
		return nil
	}

	d := &Draft{
		RegionID: handle.ID,
		Start:    handle.Start,
		End:      handle.End,
		Color:    s.palette.Draft,
		State:    DraftOpen,
	}
	s.drafts[handle.ID] = d
	s.activeDraft = handle.ID
	s.entry.Open(handle.ID)
	s.entryOpen = true
	return d
}

// Submit posts content for the active draft
func (s *Session) Submit(ctx context.Context, content string) (CommentID, error) {
	s.mu.Lock()
	regionID := s.activeDraft
	s.mu.Unlock()

	return s.SubmitDraft(ctx, regionID, content)
}

// SubmitDraft posts content for the draft drawn as regionID. The comment is
// shown as pending right away and confirmed or rolled back when the store
// answers. A failed draft keeps its region and can be submitted again.
func (s *Session) SubmitDraft(ctx context.Context, regionID, content string) (CommentID, error) {
	s.mu.Lock()
	req, temp, token, err := s.beginSubmitLocked(regionID, content)
	if err != nil {
		s.reporter.Report(err)
		s.mu.Unlock()
		return CommentID{}, err
	}
	gen := s.generation
	s.inflight.Add(1)
	s.unlockAndNotify()
	defer s.inflight.Done()

	remote, err := s.store.CreateCommentWithMarker(ctx, req, token)

	s.mu.Lock()
	defer s.unlockAndNotify()

	if gen != s.generation {
		log.Printf("[DEBUG] annotate: discarding create result for track %d", req.TrackID)
		return CommentID{}, &StaleResponseError{Op: "create comment", TrackID: req.TrackID}
	}
	if err == nil && remote == nil {
		err = errEmptyResponse
	}
	if err != nil {
		s.rollbackLocked(regionID, temp)
		netErr := &NetworkError{Op: "create comment", Err: err}
		s.reporter.Report(netErr)
		return CommentID{}, netErr
	}

	return s.confirmLocked(regionID, temp, *remote), nil
}

func (s *Session) beginSubmitLocked(regionID, content string) (CreateRequest, CommentID, string, error) {
	identity, ok := s.auth.Current()
	if !ok || identity.UserID == 0 {
		return CreateRequest{}, CommentID{}, "", newPreconditionError("user", "sign in to comment")
	}
	if identity.Token == "" {
		return CreateRequest{}, CommentID{}, "", newPreconditionError("token", "missing auth token")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return CreateRequest{}, CommentID{}, "", newPreconditionError("content", "comment cannot be empty")
	}
	if s.track == nil {
		return CreateRequest{}, CommentID{}, "", newPreconditionError("track", "no active track")
	}

	d, ok := s.drafts[regionID]
	if regionID == "" || !ok {
		return CreateRequest{}, CommentID{}, "", newPreconditionError("region", "no draft region selected")
	}
	if math.IsNaN(d.Start) || math.IsInf(d.Start, 0) || d.Start < 0 {
		return CreateRequest{}, CommentID{}, "", newPreconditionError("time", "draft has no valid time")
	}
	if d.State == DraftSubmitting {
		return CreateRequest{}, CommentID{}, "", newPreconditionError("region", "comment already being submitted")
	}

	temp := s.ids.Next()
	pending := Comment{
		ID:        temp,
		TrackID:   s.track.ID,
		UserID:    identity.UserID,
		UserName:  identity.UserName,
		Content:   content,
		CreatedAt: s.now(),
		State:     StatePending,
		Marker: &Marker{
			Time:      d.Start,
			RegionID:  regionID,
			CommentID: temp,
			Color:     s.palette.Default,
		},
	}
	s.comments = append([]Comment{pending}, s.comments...)
	s.regions.Put(regionID, temp)
	s.selection.Attach(regionID, temp)
	d.State = DraftSubmitting
	if s.activeDraft == regionID {
		s.activeDraft = ""
	}
	s.closeEntryLocked()

	req := CreateRequest{
		TrackID:  s.track.ID,
		Content:  content,
		Time:     d.Start,
		RegionID: regionID,
		Color:    s.palette.Default,
	}
	return req, temp, identity.Token, nil
}

func (s *Session) confirmLocked(regionID string, temp CommentID, remote RemoteComment) CommentID {
	confirmed := commentFromRemote(remote)
	_, materialized := s.surface.Region(regionID)

	if i := s.indexLocked(temp); i >= 0 {
		pending := s.comments[i]
		if confirmed.UserName == "" {
			confirmed.UserName = pending.UserName
		}
		if confirmed.UserID == 0 {
			confirmed.UserID = pending.UserID
		}
		if confirmed.Marker == nil && pending.Marker != nil {
			m := *pending.Marker
			m.CommentID = confirmed.ID
			confirmed.Marker = &m
		}
		confirmed.Marker = detachMarker(confirmed.Marker, materialized)
		if s.indexLocked(confirmed.ID) >= 0 {
			s.removeCommentLocked(temp)
		} else {
			s.comments[i] = confirmed
		}
	} else if s.indexLocked(confirmed.ID) < 0 {
		confirmed.Marker = detachMarker(confirmed.Marker, materialized)
		s.comments = append([]Comment{confirmed}, s.comments...)
	}

	s.regions.RemoveByCommentID(temp)
	if materialized {
		s.regions.Put(regionID, confirmed.ID)
	}
	s.selection.Relabel(temp, confirmed.ID)
	delete(s.drafts, regionID)

	if materialized && !s.selection.IsRegionSelected(regionID) {
		if err := s.surface.Recolor(regionID, s.baseColorLocked(regionID)); err != nil {
			log.Printf("[DEBUG] annotate: recolor %s: %v", regionID, err)
		}
	}

	log.Printf("[INFO] annotate: comment %s confirmed as %s", temp, confirmed.ID)
	return confirmed.ID
}

// detachMarker drops the region id of a marker whose region is no longer
// drawn. The next load redraws it from the stored marker.
func detachMarker(m *Marker, materialized bool) *Marker {
	if materialized || m == nil {
		return m
	}
	out := *m
	out.RegionID = ""
	return &out
}

func (s *Session) rollbackLocked(regionID string, temp CommentID) {
	s.removeCommentLocked(temp)
	s.regions.RemoveByCommentID(temp)
	if d, ok := s.drafts[regionID]; ok {
		d.State = DraftFailed
	}
	s.selection.ClearComment(temp)
	log.Printf("[WARN] annotate: comment %s rolled back", temp)
}

// Cancel closes the entry surface and discards the active draft and its
// region
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.unlockAndNotify()

	s.closeEntryLocked()
	regionID := s.activeDraft
	s.activeDraft = ""
	if regionID != "" {
		s.discardDraftLocked(regionID)
	}
}

// CancelDraft discards a draft that is not being submitted
func (s *Session) CancelDraft(regionID string) error {
	s.mu.Lock()
	defer s.unlockAndNotify()

	d, ok := s.drafts[regionID]
	if !ok {
		return newPreconditionError("region", "no such draft")
	}
	if d.State == DraftSubmitting {
		return newPreconditionError("region", "comment is being submitted")
	}
	if s.activeDraft == regionID {
		s.activeDraft = ""
		s.closeEntryLocked()
	}
	s.discardDraftLocked(regionID)
	return nil
}

func (s *Session) discardDraftLocked(regionID string) {
	d, ok := s.drafts[regionID]
	if !ok || d.State == DraftSubmitting {
		return
	}
	s.selection.ClearRegion(regionID)
	delete(s.drafts, regionID)
	if s.surface != nil {
		if err := s.surface.RemoveRegion(regionID); err != nil {
			log.Printf("[DEBUG] annotate: removing draft region %s: %v", regionID, err)
		}
	}
}

// DeleteComment deletes a confirmed comment and removes its regions once
// the store agrees
func (s *Session) DeleteComment(ctx context.Context, id CommentID) error {
	s.mu.Lock()
	identity, ok := s.auth.Current()
	var err error
	switch {
	case !ok || identity.UserID == 0 || identity.Token == "":
		err = newPreconditionError("user", "sign in to delete comments")
	case !id.IsConfirmed():
		err = newPreconditionError("comment", "only saved comments can be deleted")
	case s.track == nil:
		err = newPreconditionError("track", "no active track")
	case s.indexLocked(id) < 0:
		err = newPreconditionError("comment", "comment is not on this track")
	}
	if err != nil {
		s.reporter.Report(err)
		s.mu.Unlock()
		return err
	}
	gen, trackID := s.generation, s.track.ID
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	err = s.store.DeleteComment(ctx, id.Value, identity.Token)

	s.mu.Lock()
	defer s.unlockAndNotify()

	if gen != s.generation {
		return &StaleResponseError{Op: "delete comment", TrackID: trackID}
	}
	if err != nil {
		netErr := &NetworkError{Op: "delete comment", Err: err}
		s.reporter.Report(netErr)
		return netErr
	}

	s.selection.ClearComment(id)
	s.removeCommentLocked(id)
	for _, regionID := range s.regions.RemoveByCommentID(id) {
		if err := s.surface.RemoveRegion(regionID); err != nil {
			log.Printf("[DEBUG] annotate: removing region %s: %v", regionID, err)
		}
	}
	return nil
}
