package model

import "time"

// Event 社区活动
type Event struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)"`
	CommunityID   string    `gorm:"type:varchar(36);index:idx_event_comm_starts;index:idx_event_comm_created;not null"`
	CreatorID     string    `gorm:"type:varchar(36);index:idx_event_creator"`
	Title         string    `gorm:"type:varchar(256);not null"`
	Description   string    `gorm:"type:text"`
	Location      string    `gorm:"type:varchar(256)"`
	StartsAt      time.Time `gorm:"index:idx_event_comm_starts;not null"`
	EndsAt        *time.Time
	AttendeeCount int64     `gorm:"default:0"` // status=going 的 RSVP 冗余计数
	CreatedAt     time.Time `gorm:"index:idx_event_comm_created"`
	UpdatedAt     time.Time
}

func (Event) TableName() string { return "events" }
