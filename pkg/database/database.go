package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/community-hub/internal/config"
	"github.com/d60-Lab/community-hub/internal/model"
)

// Open 按配置选择驱动打开数据库
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), gcfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DSN), gcfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Migrate 建表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Membership{},
		&model.Post{},
		&model.Comment{},
		&model.Vote{},
		&model.Event{},
		&model.Rsvp{},
		&model.Notification{},
		&model.ModerationLog{},
		&model.Document{},
		&model.DocumentVersion{},
	)
}
