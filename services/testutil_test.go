package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techlib/models"
)

// newTestDB 每个测试用独立的SQLite文件，测试结束随临时目录销毁
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Video{},
		&models.Tag{},
		&models.TagCategory{},
		&models.VideoTag{},
		&models.AdminSession{},
	))
	return db
}

func newTestLogger() *zap.Logger {
	return zap.NewNop()
}

// mustCreateVideo 插入一条视频
func mustCreateVideo(t *testing.T, db *gorm.DB, title string) models.Video {
	t.Helper()
	video := models.Video{
		Title:     title,
		URL:       "https://www.youtube.com/watch?v=" + title,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&video).Error)
	return video
}

// mustCreateTag 插入一个标签（名称已归一化）
func mustCreateTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

// mustLink 建立视频-标签关联
func mustLink(t *testing.T, db *gorm.DB, videoID, tagID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.VideoTag{VideoID: videoID, TagID: tagID}).Error)
}

// linkCount 统计关联条数
func linkCount(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.VideoTag{}).Where(where, args...).Count(&count).Error)
	return count
}
