package models

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "models.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "tracks", Track{}.TableName())
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "comments", Comment{}.TableName())
	assert.Equal(t, "markers", Marker{}.TableName())
	assert.Len(t, All(), 4)
}

func TestComment_CreateWithMarker(t *testing.T) {
	db := setupTestDB(t)

	track := Track{Title: "Night Drive", FilePath: "/music/night-drive.mp3", Duration: 120}
	require.NoError(t, db.Create(&track).Error)
	user := User{Name: "sam"}
	require.NoError(t, db.Create(&user).Error)

	comment := Comment{
		TrackID: track.ID,
		UserID:  user.ID,
		Content: "nice drop",
		Marker:  &Marker{Time: 40, RegionID: "region-9", Color: "rgba(255, 0, 0, 0.5)"},
	}
	require.NoError(t, db.Create(&comment).Error)

	assert.NotZero(t, comment.ID)
	assert.NotEmpty(t, comment.UUID)
	require.NotNil(t, comment.Marker)
	assert.Equal(t, comment.ID, comment.Marker.CommentID)

	var loaded Comment
	require.NoError(t, db.Preload("User").Preload("Marker").First(&loaded, comment.ID).Error)
	assert.Equal(t, "sam", loaded.User.Name)
	require.NotNil(t, loaded.Marker)
	assert.Equal(t, 40.0, loaded.Marker.Time)
	assert.Equal(t, "region-9", loaded.Marker.RegionID)
}

func TestComment_UUIDPreserved(t *testing.T) {
	db := setupTestDB(t)

	comment := Comment{TrackID: 1, UserID: 1, Content: "keep", UUID: "fixed-uuid"}
	require.NoError(t, db.Create(&comment).Error)
	assert.Equal(t, "fixed-uuid", comment.UUID)
}

func TestMarker_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		time    float64
		wantErr bool
	}{
		{name: "zero", time: 0},
		{name: "positive", time: 12.5},
		{name: "negative", time: -1, wantErr: true},
		{name: "NaN", time: math.NaN(), wantErr: true},
		{name: "infinity", time: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Marker{Time: tt.time}).BeforeSave(nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMarkerTime)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_UniqueName(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&User{Name: "sam"}).Error)
	assert.Error(t, db.Create(&User{Name: "sam"}).Error)
}
