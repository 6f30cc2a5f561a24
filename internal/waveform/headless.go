package waveform

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

const eventBufferSize = 64

// HeadlessSurface is an in-memory Surface. It keeps region geometry and
// colors, converts pixels with a fixed width, and lets callers drive the
// gestures a renderer would produce.
type HeadlessSurface struct {
	mu       sync.Mutex
	duration float64
	width    float64
	ready    bool
	closed   bool
	regions  map[string]RegionHandle

	events  chan Event
	done    chan struct{}
	senders sync.WaitGroup
}

// NewHeadlessSurface creates a surface for a track of the given duration
// drawn across width pixels
func NewHeadlessSurface(duration, width float64) *HeadlessSurface {
	return &HeadlessSurface{
		duration: duration,
		width:    width,
		regions:  make(map[string]RegionHandle),
		events:   make(chan Event, eventBufferSize),
		done:     make(chan struct{}),
	}
}

// Load marks the track decoded and emits EventReady. Later calls are no-ops.
func (s *HeadlessSurface) Load() {
	s.mu.Lock()
	if s.ready || s.closed {
		s.mu.Unlock()
		return
	}
	s.ready = true
	s.mu.Unlock()

	s.emit(Event{Type: EventReady})
}

// Fail reports a decode or render failure
func (s *HeadlessSurface) Fail(err error) {
	s.mu.Lock()
	s.ready = false
	s.mu.Unlock()

	s.emit(Event{Type: EventError, Err: err})
}

// ClickRegion simulates a click on a region
func (s *HeadlessSurface) ClickRegion(id string) error {
	s.mu.Lock()
	region, ok := s.regions[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRegionNotFound, id)
	}

	s.emit(Event{Type: EventRegionClicked, Region: region})
	return nil
}

// DoubleClick simulates a double click at pixel x
func (s *HeadlessSurface) DoubleClick(x float64) {
	s.emit(Event{Type: EventDoubleClick, X: x})
}

// TimeToPixel is the inverse of PixelToTime
func (s *HeadlessSurface) TimeToPixel(t float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duration <= 0 {
		return 0
	}
	return t / s.duration * s.width
}

// PixelToTime converts a pointer offset into seconds, clamped to the track
func (s *HeadlessSurface) PixelToTime(x float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	if !s.ready {
		return 0, ErrNotReady
	}
	if s.width <= 0 {
		return 0, fmt.Errorf("invalid surface width %v", s.width)
	}

	t := s.duration * x / s.width
	return math.Min(math.Max(t, 0), s.duration), nil
}

// CreateRegion materializes a region
func (s *HeadlessSurface) CreateRegion(params RegionParams) (RegionHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return RegionHandle{}, ErrClosed
	}
	if !s.ready {
		return RegionHandle{}, ErrNotReady
	}
	if math.IsNaN(params.Start) || math.IsInf(params.Start, 0) || params.Start < 0 {
		return RegionHandle{}, fmt.Errorf("invalid region start %v", params.Start)
	}

	end := params.End
	if end == 0 || end < params.Start {
		end = params.Start
	}

	id := params.ID
	if _, taken := s.regions[id]; id == "" || taken {
		id = uuid.NewString()
	}

	region := RegionHandle{
		ID:        id,
		Start:     params.Start,
		End:       end,
		Color:     params.Color,
		Draggable: params.Draggable,
		Resizable: params.Resizable,
	}
	s.regions[id] = region
	return region, nil
}

// RemoveRegion removes one region
func (s *HeadlessSurface) RemoveRegion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.regions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrRegionNotFound, id)
	}
	delete(s.regions, id)
	return nil
}

// RemoveAllRegions clears the surface
func (s *HeadlessSurface) RemoveAllRegions() {
	s.mu.Lock()
	s.regions = make(map[string]RegionHandle)
	s.mu.Unlock()
}

// Recolor changes a region's color
func (s *HeadlessSurface) Recolor(id string, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	region, ok := s.regions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRegionNotFound, id)
	}
	region.Color = color
	s.regions[id] = region
	return nil
}

// Region looks up a materialized region
func (s *HeadlessSurface) Region(id string) (RegionHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	region, ok := s.regions[id]
	return region, ok
}

// Regions returns all regions ordered by start time, then id
func (s *HeadlessSurface) Regions() []RegionHandle {
	s.mu.Lock()
	regions := make([]RegionHandle, 0, len(s.regions))
	for _, r := range s.regions {
		regions = append(regions, r)
	}
	s.mu.Unlock()

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Start != regions[j].Start {
			return regions[i].Start < regions[j].Start
		}
		return regions[i].ID < regions[j].ID
	})
	return regions
}

// Events returns the event stream. It is closed by Close.
func (s *HeadlessSurface) Events() <-chan Event {
	return s.events
}

// Close releases the surface. Pending emits are dropped.
func (s *HeadlessSurface) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.ready = false
	s.regions = make(map[string]RegionHandle)
	s.mu.Unlock()

	close(s.done)
	s.senders.Wait()
	close(s.events)
	return nil
}

func (s *HeadlessSurface) emit(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.senders.Add(1)
	s.mu.Unlock()
	defer s.senders.Done()

	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// HeadlessFactory builds a HeadlessSurface per track
type HeadlessFactory struct {
	Width    float64
	AutoLoad bool

	mu   sync.Mutex
	last *HeadlessSurface
}

// Acquire implements Factory
func (f *HeadlessFactory) Acquire(ctx context.Context, track Track) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if track.Duration <= 0 || math.IsNaN(track.Duration) || math.IsInf(track.Duration, 0) {
		return nil, fmt.Errorf("cannot decode track %d: invalid duration %v", track.ID, track.Duration)
	}

	width := f.Width
	if width <= 0 {
		width = 1000
	}

	surface := NewHeadlessSurface(track.Duration, width)

	f.mu.Lock()
	f.last = surface
	f.mu.Unlock()

	if f.AutoLoad {
		surface.Load()
	}
	return surface, nil
}

// Last returns the most recently acquired surface
func (f *HeadlessFactory) Last() *HeadlessSurface {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}
