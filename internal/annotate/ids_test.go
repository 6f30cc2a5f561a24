package annotate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempIDs_StrictlyIncreasing(t *testing.T) {
	now := time.UnixMilli(1000)
	g := newTempIDs(func() time.Time { return now })

	assert.Equal(t, TemporaryID(1000), g.Next())
	assert.Equal(t, TemporaryID(1001), g.Next())

	now = time.UnixMilli(5000)
	assert.Equal(t, TemporaryID(5000), g.Next())

	now = time.UnixMilli(10)
	assert.Equal(t, TemporaryID(5001), g.Next())
}

func TestCommentID_StringRoundTrip(t *testing.T) {
	for _, id := range []CommentID{TemporaryID(42), ConfirmedID(9)} {
		parsed, err := ParseCommentID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}

	assert.Equal(t, "tmp-42", TemporaryID(42).String())
	assert.NotEqual(t, TemporaryID(9), ConfirmedID(9))

	_, err := ParseCommentID("abc")
	assert.Error(t, err)
	_, err = ParseCommentID("0")
	assert.Error(t, err)
	assert.True(t, CommentID{}.IsZero())
}
