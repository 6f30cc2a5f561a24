package annotate

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/killallgit/waveform-comments/internal/waveform"
)

const (
	DefaultDebounce     = 300 * time.Millisecond
	DefaultDraftLength  = 1.0
	DefaultMarkerLength = 0.5
)

// Option configures a Session
type Option func(*Session)

// WithDebounce sets the double-click debounce delay. Zero handles every
// double click immediately.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.debounceDelay = d
		}
	}
}

// WithDraftLength sets the length in seconds of regions created by a gesture
func WithDraftLength(seconds float64) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.draftLength = seconds
		}
	}
}

// WithMarkerLength sets the length in seconds of regions drawn for loaded markers
func WithMarkerLength(seconds float64) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.markerLength = seconds
		}
	}
}

func WithPalette(p Palette) Option {
	return func(s *Session) {
		s.palette = p
	}
}

func WithEntrySurface(e EntrySurface) Option {
	return func(s *Session) {
		if e != nil {
			s.entry = e
		}
	}
}

func WithPanel(p CommentsPanel) Option {
	return func(s *Session) {
		if p != nil {
			s.panel = p
		}
	}
}

func WithReporter(r Reporter) Option {
	return func(s *Session) {
		if r != nil {
			s.reporter = r
		}
	}
}

func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listener = l
	}
}

// WithClock replaces time.Now for timestamps and temporary ids
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session keeps one track's waveform regions in sync with its comments.
//
// All state is mutated under mu. Network calls and the debounce timer run
// outside it and re-check the generation before applying their result.
type Session struct {
	store   Store
	factory waveform.Factory
	auth    AuthProvider

	debounceDelay time.Duration
	draftLength   float64
	markerLength  float64
	palette       Palette
	entry         EntrySurface
	panel         CommentsPanel
	reporter      Reporter
	listener      Listener
	now           func() time.Time

	mu          sync.Mutex
	closed      bool
	generation  uint64
	loadSeq     uint64
	cancel      context.CancelFunc
	track       *waveform.Track
	surface     waveform.Surface
	ready       bool
	comments    []Comment
	regions     *RegionMap
	selection   *Selection
	drafts      map[string]*Draft
	activeDraft string
	entryOpen   bool
	ids         *tempIDs

	debounce    *time.Timer
	debounceSeq uint64
	pendingX    float64

	inflight sync.WaitGroup
	pumps    sync.WaitGroup
}

// NewSession creates a session with no track open
func NewSession(store Store, factory waveform.Factory, auth AuthProvider, opts ...Option) *Session {
	s := &Session{
		store:         store,
		factory:       factory,
		auth:          auth,
		debounceDelay: DefaultDebounce,
		draftLength:   DefaultDraftLength,
		markerLength:  DefaultMarkerLength,
		palette:       DefaultPalette(),
		entry:         nopEntry{},
		panel:         nopPanel{},
		reporter:      logReporter{},
		now:           time.Now,
		regions:       NewRegionMap(),
		drafts:        make(map[string]*Draft),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.auth == nil {
		s.auth = StaticAuth{}
	}
	s.ids = newTempIDs(s.now)
	s.selection = NewSelection(s.regions, s.palette.Selected, s.baseColorLocked)
	return s
}

// Open releases the current track, if any, and acquires a surface for
// track. Markers are loaded once the surface reports ready.
func (s *Session) Open(ctx context.Context, track waveform.Track) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.teardownLocked()
	gen := s.generation
	s.mu.Unlock()

	surface, err := s.factory.Acquire(ctx, track)

	s.mu.Lock()
	defer s.unlockAndNotify()

	if gen != s.generation {
		if surface != nil {
			surface.Close()
		}
		return &StaleResponseError{Op: "open track", TrackID: track.ID}
	}
	if err != nil {
		adapterErr := &AdapterError{Err: err}
		s.reporter.Report(adapterErr)
		return adapterErr
	}

	loadCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.track = &track
	s.surface = surface
	s.selection.SetPainter(surface)

	s.pumps.Add(1)
	go s.pump(loadCtx, gen, surface)

	log.Printf("[INFO] annotate: opened track %d (%.2fs)", track.ID, track.Duration)
	return nil
}

// Close releases the surface. In-flight results are discarded when they
// arrive.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	err := s.teardownLocked()
	s.closed = true
	s.unlockAndNotify()
	return err
}

// Wait blocks until in-flight requests have settled
func (s *Session) Wait() {
	s.inflight.Wait()
}

// WaitClosed is Wait plus waiting for every event pump to exit. Only
// meaningful after Close.
func (s *Session) WaitClosed() {
	s.inflight.Wait()
	s.pumps.Wait()
}

// Snapshot copies the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SelectComment selects a comment from the list, highlighting its region
func (s *Session) SelectComment(id CommentID) {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.selection.SelectComment(id)
}

// ClickRegion handles a click on a region, as the surface would report it
func (s *Session) ClickRegion(regionID string) {
	s.mu.Lock()
	defer s.unlockAndNotify()
	s.clickRegionLocked(regionID)
}

func (s *Session) pump(ctx context.Context, gen uint64, surface waveform.Surface) {
	defer s.pumps.Done()
	for ev := range surface.Events() {
		s.handleEvent(ctx, gen, ev)
	}
}

func (s *Session) handleEvent(ctx context.Context, gen uint64, ev waveform.Event) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Printf("[DEBUG] annotate: dropping %s event from released surface", ev.Type)
		return
	}

	switch ev.Type {
	case waveform.EventReady:
		s.ready = true
		s.loadSeq++
		seq := s.loadSeq
		trackID := s.track.ID
		s.inflight.Add(1)
		s.unlockAndNotify()

		go func() {
			defer s.inflight.Done()
			s.load(ctx, gen, seq, trackID)
		}()
		return

	case waveform.EventError:
		s.ready = false
		s.reporter.Report(&AdapterError{Err: ev.Err})

	case waveform.EventRegionClicked:
		s.clickRegionLocked(ev.Region.ID)

	case waveform.EventDoubleClick:
		s.scheduleDraftLocked(gen, ev.X)
	}

	s.unlockAndNotify()
}

func (s *Session) clickRegionLocked(regionID string) {
	if s.surface == nil {
		return
	}
	if _, ok := s.surface.Region(regionID); !ok {
		log.Printf("[DEBUG] annotate: click on unknown region %s", regionID)
		return
	}
	s.selection.ClickRegion(regionID)
	s.panel.ShowComments()
}

func (s *Session) scheduleDraftLocked(gen uint64, x float64) {
	s.pendingX = x
	s.debounceSeq++
	seq := s.debounceSeq

	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}

	if s.debounceDelay == 0 {
		s.draftAtPixelLocked(x)
		return
	}

	s.debounce = time.AfterFunc(s.debounceDelay, func() {
		s.mu.Lock()
		defer s.unlockAndNotify()
		if gen != s.generation || seq != s.debounceSeq {
			return
		}
		s.debounce = nil
		s.draftAtPixelLocked(s.pendingX)
	})
}

func (s *Session) draftAtPixelLocked(x float64) {
	if s.surface == nil {
		return
	}
	t, err := s.surface.PixelToTime(x)
	if err != nil {
		log.Printf("[DEBUG] annotate: ignoring double click at %.1fpx: %v", x, err)
		return
	}
	s.startDraftLocked(t)
}

func (s *Session) teardownLocked() error {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.debounceSeq++
	s.generation++

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	var err error
	if s.surface != nil {
		if err = s.surface.Close(); err != nil {
			log.Printf("[WARN] annotate: closing surface: %v", err)
		}
		s.surface = nil
	}

	if s.entryOpen {
		s.entry.Close()
		s.entryOpen = false
	}

	s.track = nil
	s.ready = false
	s.comments = nil
	s.regions.Rebuild(nil)
	s.selection.Reset()
	s.selection.SetPainter(nil)
	s.drafts = make(map[string]*Draft)
	s.activeDraft = ""
	return err
}

// baseColorLocked is the color a region shows when it is not selected
func (s *Session) baseColorLocked(regionID string) string {
	if d, ok := s.drafts[regionID]; ok {
		return d.Color
	}
	if id, ok := s.regions.Get(regionID); ok {
		if c := s.commentLocked(id); c != nil && c.Marker != nil && c.Marker.Color != "" {
			return c.Marker.Color
		}
	}
	return s.palette.Default
}

func (s *Session) commentLocked(id CommentID) *Comment {
	if i := s.indexLocked(id); i >= 0 {
		return &s.comments[i]
	}
	return nil
}

func (s *Session) indexLocked(id CommentID) int {
	for i := range s.comments {
		if s.comments[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) removeCommentLocked(id CommentID) bool {
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.comments = append(s.comments[:i], s.comments[i+1:]...)
	return true
}

func (s *Session) closeEntryLocked() {
	if s.entryOpen {
		s.entry.Close()
		s.entryOpen = false
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Ready:       s.ready,
		Mapping:     s.regions.Entries(),
		ActiveDraft: s.activeDraft,
		EntryOpen:   s.entryOpen,
	}
	if s.track != nil {
		snap.TrackID = s.track.ID
	}
	if s.surface != nil {
		snap.Regions = s.surface.Regions()
	}

	snap.Comments = make([]Comment, len(s.comments))
	for i, c := range s.comments {
		if c.Marker != nil {
			m := *c.Marker
			c.Marker = &m
		}
		snap.Comments[i] = c
	}

	snap.Drafts = make([]Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		snap.Drafts = append(snap.Drafts, *d)
	}
	sort.Slice(snap.Drafts, func(i, j int) bool {
		return snap.Drafts[i].RegionID < snap.Drafts[j].RegionID
	})

	snap.SelectedRegion, snap.SelectedComment, _ = s.selection.Current()
	return snap
}

// unlockAndNotify releases mu and hands the listener a snapshot taken
// before the unlock
func (s *Session) unlockAndNotify() {
	if s.listener == nil {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.listener(snap)
}
