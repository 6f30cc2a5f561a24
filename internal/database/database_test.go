package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/waveform-comments/internal/models"
	apperrors "github.com/killallgit/waveform-comments/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB returns a migrated database seeded with one track and one user
func setupTestDB(t *testing.T) (*DB, models.Track, models.User) {
	t.Helper()
	conn, err := Initialize(filepath.Join(t.TempDir(), "comments.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.Migrate())

	track := models.Track{Title: "Night Drive", FilePath: "/music/night-drive.mp3", Duration: 120}
	require.NoError(t, conn.DB.Create(&track).Error)
	user := models.User{Name: "sam"}
	require.NoError(t, conn.DB.Create(&user).Error)
	return conn, track, user
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{name: "in-memory database", dbPath: ":memory:"},
		{name: "empty path is in-memory", dbPath: ""},
		{name: "file database in a new directory", dbPath: filepath.Join(t.TempDir(), "nested", "comments.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)
			require.NoError(t, err)
			defer conn.Close()

			require.NoError(t, conn.Migrate())
			require.NoError(t, conn.DB.Create(&models.Track{Title: "t", FilePath: "/t.mp3", Duration: 1}).Error)

			// every query must see the same database, in memory too
			var count int64
			require.NoError(t, conn.DB.Model(&models.Track{}).Count(&count).Error)
			assert.Equal(t, int64(1), count)

			if tt.dbPath != "" && tt.dbPath != ":memory:" {
				_, err := os.Stat(tt.dbPath)
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_HealthCheck(t *testing.T) {
	open, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer open.Close()

	closed, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, closed.Close())

	tests := []struct {
		name    string
		conn    *DB
		wantErr bool
	}{
		{name: "healthy connection", conn: open},
		{name: "closed connection", conn: closed, wantErr: true},
		{name: "nil connection", conn: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conn.HealthCheck()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_Migrate(t *testing.T) {
	conn, err := Initialize(filepath.Join(t.TempDir(), "comments.db"), false)
	require.NoError(t, err)
	defer conn.Close()

	status, err := conn.MigrationStatus()
	require.NoError(t, err)
	require.Len(t, status, 4)
	for _, s := range status {
		assert.False(t, s.Exists, s.Table)
	}

	require.NoError(t, conn.Migrate())

	status, err = conn.MigrationStatus()
	require.NoError(t, err)
	var tables []string
	for _, s := range status {
		assert.True(t, s.Exists, s.Table)
		tables = append(tables, s.Table)
	}
	assert.Equal(t, []string{"tracks", "users", "comments", "markers"}, tables)

	// Migrating twice is a no-op
	require.NoError(t, conn.Migrate())
}

func TestDB_MigrateOnClosedDatabase(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	err = conn.Migrate()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeDatabaseMigration))
}

func TestDB_ForeignKeys(t *testing.T) {
	conn, track, user := setupTestDB(t)

	orphan := models.Comment{TrackID: 42, UserID: user.ID, Content: "no such track"}
	assert.Error(t, conn.DB.Create(&orphan).Error)

	comment := models.Comment{TrackID: track.ID, UserID: user.ID, Content: "nice drop"}
	assert.NoError(t, conn.DB.Create(&comment).Error)
}

func TestDB_MarkerCascadesWithComment(t *testing.T) {
	conn, track, user := setupTestDB(t)

	comment := models.Comment{
		TrackID: track.ID,
		UserID:  user.ID,
		Content: "nice drop",
		Marker:  &models.Marker{Time: 40, RegionID: "region-1"},
	}
	require.NoError(t, conn.DB.Create(&comment).Error)

	var markers int64
	require.NoError(t, conn.DB.Model(&models.Marker{}).Count(&markers).Error)
	require.Equal(t, int64(1), markers)

	require.NoError(t, conn.DB.Unscoped().Delete(&comment).Error)

	require.NoError(t, conn.DB.Unscoped().Model(&models.Marker{}).Count(&markers).Error)
	assert.Zero(t, markers)
}

func TestDB_OneMarkerPerComment(t *testing.T) {
	conn, track, user := setupTestDB(t)

	comment := models.Comment{
		TrackID: track.ID,
		UserID:  user.ID,
		Content: "nice drop",
		Marker:  &models.Marker{Time: 40, RegionID: "region-1"},
	}
	require.NoError(t, conn.DB.Create(&comment).Error)

	second := models.Marker{CommentID: comment.ID, Time: 41, RegionID: "region-2"}
	assert.Error(t, conn.DB.Create(&second).Error)

	dangling := models.Marker{CommentID: 999, Time: 5, RegionID: "region-3"}
	assert.Error(t, conn.DB.Create(&dangling).Error)
}

func TestMigrationStatus_NotInitialized(t *testing.T) {
	var conn *DB
	_, err := conn.MigrationStatus()
	assert.Error(t, err)
}
