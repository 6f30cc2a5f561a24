package annotate

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// IDKind tags a CommentID as client-local or server-assigned
type IDKind uint8

const (
	KindTemporary IDKind = iota + 1
	KindConfirmed
)

const temporaryPrefix = "tmp-"

// CommentID identifies a comment. Temporary ids are issued locally for
// pending comments and never compare equal to a confirmed server id.
type CommentID struct {
	Kind  IDKind
	Value uint64
}

// TemporaryID returns a client-local id
func TemporaryID(v uint64) CommentID {
	return CommentID{Kind: KindTemporary, Value: v}
}

// ConfirmedID returns a server-assigned id
func ConfirmedID(v uint64) CommentID {
	return CommentID{Kind: KindConfirmed, Value: v}
}

func (id CommentID) IsZero() bool      { return id.Kind == 0 }
func (id CommentID) IsTemporary() bool { return id.Kind == KindTemporary }
func (id CommentID) IsConfirmed() bool { return id.Kind == KindConfirmed }

func (id CommentID) String() string {
	switch id.Kind {
	case KindTemporary:
		return temporaryPrefix + strconv.FormatUint(id.Value, 10)
	case KindConfirmed:
		return strconv.FormatUint(id.Value, 10)
	default:
		return ""
	}
}

// ParseCommentID parses the String form of a CommentID
func ParseCommentID(s string) (CommentID, error) {
	s = strings.TrimSpace(s)
	kind := KindConfirmed
	if strings.HasPrefix(s, temporaryPrefix) {
		kind = KindTemporary
		s = strings.TrimPrefix(s, temporaryPrefix)
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return CommentID{}, fmt.Errorf("invalid comment id %q", s)
	}
	return CommentID{Kind: kind, Value: v}, nil
}

// tempIDs issues strictly increasing temporary ids seeded from the clock
type tempIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last uint64
}

func newTempIDs(now func() time.Time) *tempIDs {
	return &tempIDs{now: now}
}

func (g *tempIDs) Next() CommentID {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := uint64(g.now().UnixMilli())
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return TemporaryID(next)
}
