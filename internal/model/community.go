package model

import "time"

// Community 社区（内容的顶层归属）
type Community struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	CreatorID   string `gorm:"type:varchar(36);index:idx_community_creator"`
	MemberCount int64  `gorm:"default:0"`
	PostCount   int64  `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Community) TableName() string { return "communities" }
