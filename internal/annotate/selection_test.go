package annotate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPainter struct {
	mock.Mock
}

func (m *mockPainter) Recolor(id string, color string) error {
	args := m.Called(id, color)
	return args.Error(0)
}

const (
	selectedColor = "green"
	baseColor     = "red"
)

func newTestSelection(m *RegionMap, p Painter) *Selection {
	s := NewSelection(m, selectedColor, func(string) string { return baseColor })
	s.SetPainter(p)
	return s
}

func TestSelection_ClickIsExclusive(t *testing.T) {
	m := NewRegionMap()
	m.Put("a", ConfirmedID(1))
	m.Put("b", ConfirmedID(2))

	p := new(mockPainter)
	p.On("Recolor", "a", selectedColor).Return(nil).Once()
	p.On("Recolor", "a", baseColor).Return(nil).Once()
	p.On("Recolor", "b", selectedColor).Return(nil).Once()

	s := newTestSelection(m, p)
	assert.True(t, s.ClickRegion("a"))
	assert.True(t, s.ClickRegion("b"))

	region, comment, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "b", region)
	assert.Equal(t, ConfirmedID(2), comment)
	assert.False(t, s.IsRegionSelected("a"))
	p.AssertExpectations(t)
}

func TestSelection_ClickTwiceToggles(t *testing.T) {
	m := NewRegionMap()
	m.Put("a", ConfirmedID(1))

	p := new(mockPainter)
	p.On("Recolor", "a", selectedColor).Return(nil).Once()
	p.On("Recolor", "a", baseColor).Return(nil).Once()

	s := newTestSelection(m, p)
	assert.True(t, s.ClickRegion("a"))
	assert.False(t, s.ClickRegion("a"))

	_, _, ok := s.Current()
	assert.False(t, ok)
	p.AssertExpectations(t)
}

func TestSelection_UnmappedRegionHasUnknownComment(t *testing.T) {
	p := new(mockPainter)
	p.On("Recolor", "draft", selectedColor).Return(nil)

	s := newTestSelection(NewRegionMap(), p)
	s.ClickRegion("draft")

	region, comment, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "draft", region)
	assert.True(t, comment.IsZero())

	s.Attach("draft", TemporaryID(5))
	_, comment, _ = s.Current()
	assert.Equal(t, TemporaryID(5), comment)

	s.Relabel(TemporaryID(5), ConfirmedID(9))
	_, comment, _ = s.Current()
	assert.Equal(t, ConfirmedID(9), comment)
}

func TestSelection_SelectComment(t *testing.T) {
	m := NewRegionMap()
	m.Put("a", ConfirmedID(1))

	p := new(mockPainter)
	p.On("Recolor", "a", selectedColor).Return(nil).Once()
	p.On("Recolor", "a", baseColor).Return(nil).Once()

	s := newTestSelection(m, p)
	s.SelectComment(ConfirmedID(1))
	s.SelectComment(ConfirmedID(1))

	region, _, _ := s.Current()
	assert.Equal(t, "a", region)

	// no region for comment 2, so a is restored and nothing is painted
	s.SelectComment(ConfirmedID(2))
	region, comment, ok := s.Current()
	assert.True(t, ok)
	assert.Empty(t, region)
	assert.Equal(t, ConfirmedID(2), comment)
	p.AssertExpectations(t)
}

func TestSelection_ClearComment(t *testing.T) {
	m := NewRegionMap()
	m.Put("a", TemporaryID(1))

	p := new(mockPainter)
	p.On("Recolor", "a", selectedColor).Return(nil)
	p.On("Recolor", "a", baseColor).Return(errors.New("region gone"))

	s := newTestSelection(m, p)
	s.ClickRegion("a")

	assert.False(t, s.ClearComment(ConfirmedID(1)))
	assert.True(t, s.ClearComment(TemporaryID(1)))
	_, _, ok := s.Current()
	assert.False(t, ok)
}

func TestSelection_ResetDoesNotPaint(t *testing.T) {
	m := NewRegionMap()
	m.Put("a", ConfirmedID(1))

	p := new(mockPainter)
	p.On("Recolor", "a", selectedColor).Return(nil).Once()

	s := newTestSelection(m, p)
	s.ClickRegion("a")
	s.Reset()

	_, _, ok := s.Current()
	assert.False(t, ok)
	p.AssertExpectations(t)
	p.AssertNumberOfCalls(t, "Recolor", 1)
}
