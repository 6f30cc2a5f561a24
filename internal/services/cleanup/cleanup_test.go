package cleanup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/killallgit/waveform-comments/internal/database"
	"github.com/killallgit/waveform-comments/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "cleanup.db"), false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db.DB
}

// seedComment creates a comment, soft-deleting it at deletedAt when set
func seedComment(t *testing.T, db *gorm.DB, content string, deletedAt *time.Time) uint {
	t.Helper()
	comment := models.Comment{TrackID: 1, UserID: 1, Content: content}
	require.NoError(t, db.Create(&comment).Error)
	if deletedAt != nil {
		require.NoError(t, db.Unscoped().Model(&comment).Update("deleted_at", deletedAt.UTC()).Error)
	}
	return comment.ID
}

func TestService_Purge(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Track{Title: "t", FilePath: "/t.mp3", Duration: 60}).Error)
	require.NoError(t, db.Create(&models.User{Name: "sam"}).Error)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-48 * time.Hour)
	recent := now.Add(-time.Hour)

	live := seedComment(t, db, "live", nil)
	stale := seedComment(t, db, "stale", &old)
	fresh := seedComment(t, db, "fresh", &recent)

	svc := NewService(db, 24*time.Hour, time.Minute)
	svc.now = func() time.Time { return now }

	purged, err := svc.Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining []uint
	require.NoError(t, db.Unscoped().Model(&models.Comment{}).Order("id").Pluck("id", &remaining).Error)
	assert.Equal(t, []uint{live, fresh}, remaining)
	assert.NotContains(t, remaining, stale)

	purged, err = svc.Purge(context.Background())
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestService_StartStop(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Track{Title: "t", FilePath: "/t.mp3", Duration: 60}).Error)
	require.NoError(t, db.Create(&models.User{Name: "sam"}).Error)

	old := time.Now().Add(-48 * time.Hour)
	seedComment(t, db, "stale", &old)

	svc := NewService(db, time.Hour, time.Hour)
	svc.Start(context.Background())
	svc.Start(context.Background())

	// the first purge runs as soon as the service starts
	assert.Eventually(t, func() bool {
		var count int64
		db.Unscoped().Model(&models.Comment{}).Count(&count)
		return count == 0
	}, 2*time.Second, 10*time.Millisecond)

	svc.Stop()
	svc.Stop()
}

func TestNewService_DefaultInterval(t *testing.T) {
	svc := NewService(nil, time.Hour, 0)
	assert.Equal(t, time.Hour, svc.interval)
}
