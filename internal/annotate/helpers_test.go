package annotate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/killallgit/waveform-comments/internal/waveform"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store whose calls can be held open with gates
type fakeStore struct {
	mu        sync.Mutex
	comments  map[uint][]RemoteComment
	nextID    uint
	fetchErr  error
	createErr error
	deleteErr error

	fetchGate  chan struct{}
	createGate chan struct{}

	fetchStarted  chan uint
	createStarted chan CreateRequest

	fetches int
	creates []CreateRequest
	deletes []uint64
	tokens  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		comments:      make(map[uint][]RemoteComment),
		nextID:        100,
		fetchStarted:  make(chan uint, 16),
		createStarted: make(chan CreateRequest, 16),
	}
}

func (f *fakeStore) seed(trackID uint, comments ...RemoteComment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[trackID] = append([]RemoteComment(nil), comments...)
}

// drainFetchStarted forgets fetches that have already been signalled, so a
// test waiting on fetchStarted sees only the fetches it triggers
func (f *fakeStore) drainFetchStarted() {
	for {
		select {
		case <-f.fetchStarted:
		default:
			return
		}
	}
}

func (f *fakeStore) FetchCommentsAndMarkers(ctx context.Context, trackID uint) ([]RemoteComment, error) {
	f.mu.Lock()
	f.fetches++
	gate := f.fetchGate
	f.mu.Unlock()

	select {
	case f.fetchStarted <- trackID:
	default:
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]RemoteComment(nil), f.comments[trackID]...), nil
}

func (f *fakeStore) CreateCommentWithMarker(ctx context.Context, req CreateRequest, token string) (*RemoteComment, error) {
	f.mu.Lock()
	f.creates = append(f.creates, req)
	f.tokens = append(f.tokens, token)
	gate := f.createGate
	f.mu.Unlock()

	select {
	case f.createStarted <- req:
	default:
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}

	id := f.nextID
	f.nextID++
	rc := RemoteComment{
		ID:        id,
		TrackID:   req.TrackID,
		UserID:    3,
		UserName:  "sam",
		Content:   req.Content,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, int(id), 0, time.UTC),
		Marker: &RemoteMarker{
			ID:        id,
			Time:      req.Time,
			RegionID:  req.RegionID,
			CommentID: id,
			Color:     req.Color,
		},
	}
	f.comments[req.TrackID] = append([]RemoteComment{rc}, f.comments[req.TrackID]...)
	return &rc, nil
}

func (f *fakeStore) DeleteComment(ctx context.Context, commentID uint64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, commentID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for trackID, list := range f.comments {
		for i, c := range list {
			if uint64(c.ID) == commentID {
				f.comments[trackID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return errors.New("not found")
}

func (f *fakeStore) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates)
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) all() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

type recordingEntry struct {
	mu     sync.Mutex
	opened []string
	closes int
}

func (e *recordingEntry) Open(regionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opened = append(e.opened, regionID)
}

func (e *recordingEntry) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closes++
}

type countingPanel struct {
	mu    sync.Mutex
	shown int
}

func (p *countingPanel) ShowComments() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown++
}

func (p *countingPanel) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}

var testIdentity = Identity{UserID: 3, UserName: "sam", Token: "tok"}

type harness struct {
	session  *Session
	store    *fakeStore
	factory  *waveform.HeadlessFactory
	reporter *recordingReporter
	entry    *recordingEntry
	panel    *countingPanel
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		store:    newFakeStore(),
		factory:  &waveform.HeadlessFactory{Width: 1200},
		reporter: &recordingReporter{},
		entry:    &recordingEntry{},
		panel:    &countingPanel{},
	}

	base := []Option{
		WithDebounce(5 * time.Millisecond),
		WithReporter(h.reporter),
		WithEntrySurface(h.entry),
		WithPanel(h.panel),
	}
	h.session = NewSession(h.store, h.factory, StaticAuth{Identity: testIdentity}, append(base, opts...)...)

	t.Cleanup(func() {
		h.session.Close()
		h.session.WaitClosed()
	})
	return h
}

// open opens a track, loads the surface and waits for the first marker load
func (h *harness) open(t *testing.T, track waveform.Track) *waveform.HeadlessSurface {
	t.Helper()

	require.NoError(t, h.session.Open(context.Background(), track))
	surface := h.factory.Last()
	require.NotNil(t, surface)

	surface.Load()
	require.Eventually(t, func() bool {
		return h.session.Snapshot().Ready
	}, 2*time.Second, time.Millisecond)
	h.session.Wait()
	h.store.drainFetchStarted()
	return surface
}

// openLoading opens a track without waiting on other in-flight calls and
// returns once the track shows want comments
func (h *harness) openLoading(t *testing.T, track waveform.Track, want int) *waveform.HeadlessSurface {
	t.Helper()

	require.NoError(t, h.session.Open(context.Background(), track))
	surface := h.factory.Last()
	surface.Load()
	require.Eventually(t, func() bool {
		snap := h.session.Snapshot()
		return snap.Ready && snap.TrackID == track.ID && len(snap.Comments) == want
	}, 2*time.Second, time.Millisecond)
	return surface
}

func (s *Session) regionComment(regionID string) (CommentID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regions.Get(regionID)
}

// assertConsistent checks that every mapped region is drawn and every
// mapped comment is listed
func assertConsistent(t *testing.T, snap Snapshot) {
	t.Helper()

	drawn := make(map[string]bool, len(snap.Regions))
	for _, r := range snap.Regions {
		drawn[r.ID] = true
	}
	listed := make(map[CommentID]bool, len(snap.Comments))
	for _, c := range snap.Comments {
		listed[c.ID] = true
	}

	for _, e := range snap.Mapping {
		require.Truef(t, drawn[e.RegionID], "mapped region %s is not drawn", e.RegionID)
		require.Truef(t, listed[e.CommentID], "mapped comment %s is not listed", e.CommentID)
	}
}

func regionByID(snap Snapshot, id string) (waveform.RegionHandle, bool) {
	for _, r := range snap.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return waveform.RegionHandle{}, false
}

func commentIDs(snap Snapshot) []CommentID {
	ids := make([]CommentID, len(snap.Comments))
	for i, c := range snap.Comments {
		ids[i] = c.ID
	}
	return ids
}

func markerComment(id uint, at float64, regionID string, created time.Time) RemoteComment {
	return RemoteComment{
		ID:        id,
		TrackID:   1,
		UserID:    1,
		UserName:  "alex",
		Content:   "comment",
		CreatedAt: created,
		Marker: &RemoteMarker{
			ID:        id,
			Time:      at,
			RegionID:  regionID,
			CommentID: id,
		},
	}
}
