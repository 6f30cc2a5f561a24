package annotate

import "sort"

// MapEntry is one region to comment association
type MapEntry struct {
	RegionID  string
	CommentID CommentID
}

// RegionMap associates materialized regions with comments. It is not safe
// for concurrent use; a Session guards it with its own lock.
type RegionMap struct {
	byRegion map[string]CommentID
}

// NewRegionMap returns an empty map
func NewRegionMap() *RegionMap {
	return &RegionMap{byRegion: make(map[string]CommentID)}
}

// Put associates regionID with commentID, replacing any previous value
func (m *RegionMap) Put(regionID string, commentID CommentID) {
	m.byRegion[regionID] = commentID
}

// Get returns the comment for a region
func (m *RegionMap) Get(regionID string) (CommentID, bool) {
	id, ok := m.byRegion[regionID]
	return id, ok
}

// RegionFor returns the region mapped to commentID. When several regions
// share a comment the smallest region id wins.
func (m *RegionMap) RegionFor(commentID CommentID) (string, bool) {
	found := ""
	for regionID, id := range m.byRegion {
		if id != commentID {
			continue
		}
		if found == "" || regionID < found {
			found = regionID
		}
	}
	return found, found != ""
}

// Rebuild replaces the whole mapping
func (m *RegionMap) Rebuild(entries []MapEntry) {
	next := make(map[string]CommentID, len(entries))
	for _, e := range entries {
		next[e.RegionID] = e.CommentID
	}
	m.byRegion = next
}

// RemoveByCommentID drops every entry pointing at commentID and returns the
// affected region ids in sorted order
func (m *RegionMap) RemoveByCommentID(commentID CommentID) []string {
	var removed []string
	for regionID, id := range m.byRegion {
		if id == commentID {
			removed = append(removed, regionID)
		}
	}
	for _, regionID := range removed {
		delete(m.byRegion, regionID)
	}
	sort.Strings(removed)
	return removed
}

func (m *RegionMap) Len() int {
	return len(m.byRegion)
}

// Entries returns the mapping sorted by region id
func (m *RegionMap) Entries() []MapEntry {
	entries := make([]MapEntry, 0, len(m.byRegion))
	for regionID, id := range m.byRegion {
		entries = append(entries, MapEntry{RegionID: regionID, CommentID: id})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RegionID < entries[j].RegionID
	})
	return entries
}
