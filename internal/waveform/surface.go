package waveform

import (
	"context"
	"errors"
)

var (
	// ErrNotReady is returned by operations that need a decoded track
	ErrNotReady = errors.New("waveform surface not ready")

	// ErrRegionNotFound is returned when a region id is not materialized
	ErrRegionNotFound = errors.New("region not found")

	// ErrClosed is returned by a surface that has been released
	ErrClosed = errors.New("waveform surface closed")
)

// EventType identifies a surface lifecycle or gesture event
type EventType string

const (
	EventReady         EventType = "ready"
	EventError         EventType = "error"
	EventRegionClicked EventType = "region-clicked"
	EventDoubleClick   EventType = "double-click"
)

// Event is emitted by a Surface. Only the field matching Type is set.
type Event struct {
	Type   EventType
	Region RegionHandle // EventRegionClicked
	X      float64      // EventDoubleClick, pixels from the left edge
	Err    error        // EventError
}

// RegionParams describes a region to draw. ID is a hint: the surface keeps it
// when it is free and assigns its own otherwise. A zero End means End = Start.
type RegionParams struct {
	ID        string
	Start     float64
	End       float64
	Color     string
	Draggable bool
	Resizable bool
}

// RegionHandle is the surface's view of a materialized region
type RegionHandle struct {
	ID        string  `json:"id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Color     string  `json:"color"`
	Draggable bool    `json:"draggable"`
	Resizable bool    `json:"resizable"`
}

// Track is what a Factory needs to load a surface
type Track struct {
	ID       uint
	FilePath string
	Duration float64
}

// Surface is the time-region contract around a waveform renderer.
//
// A region click emits exactly one EventRegionClicked and no generic click
// for the same gesture. EventReady is emitted once per load; PixelToTime is
// only valid after it.
type Surface interface {
	PixelToTime(x float64) (float64, error)
	CreateRegion(params RegionParams) (RegionHandle, error)
	RemoveRegion(id string) error
	RemoveAllRegions()
	Recolor(id string, color string) error
	Region(id string) (RegionHandle, bool)
	Regions() []RegionHandle
	Events() <-chan Event

	// Close releases the instance and closes the event stream
	Close() error
}

// Factory acquires one surface per track. The caller owns the returned
// surface and must Close it before acquiring the next one.
type Factory interface {
	Acquire(ctx context.Context, track Track) (Surface, error)
}
