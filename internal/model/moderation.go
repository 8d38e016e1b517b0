package model

import "time"

// 审核动作
const (
	ModActionRemovePost    = "remove_post"
	ModActionRemoveComment = "remove_comment"
	ModActionPinPost       = "pin_post"
	ModActionUnpinPost     = "unpin_post"
)

// ModerationLog 审核日志，只追加
type ModerationLog struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	CommunityID string    `gorm:"type:varchar(36);index:idx_modlog_comm_created;not null"`
	ActorID     string    `gorm:"type:varchar(36);not null"`
	Action      string    `gorm:"type:varchar(32);not null"`
	TargetType  string    `gorm:"type:varchar(16);not null"`
	TargetID    string    `gorm:"type:varchar(36);not null"`
	Reason      string    `gorm:"type:varchar(512)"`
	CreatedAt   time.Time `gorm:"index:idx_modlog_comm_created"`
}

func (ModerationLog) TableName() string { return "moderation_logs" }
