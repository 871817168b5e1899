package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"techlib/models"
)

var DB *gorm.DB

// InitDatabase 初始化数据库并保存全局实例
func InitDatabase(path string) error {
	db, err := OpenDatabase(path)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// OpenDatabase 连接SQLite数据库并迁移表结构
func OpenDatabase(path string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Video{},
		&models.Tag{},
		&models.TagCategory{},
		&models.VideoTag{},
		&models.AdminSession{},
	)
	if err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
