package model

import "time"

// 通知类型
const (
	NotifyCommentOnPost = "comment_on_post"
	NotifyReply         = "reply"
	NotifyVoteMilestone = "vote_milestone"
)

// Notification 站内通知
type Notification struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	RecipientID string    `gorm:"type:varchar(36);index:idx_notify_recipient_created;not null"`
	ActorID     string    `gorm:"type:varchar(36)"`
	Type        string    `gorm:"type:varchar(32);not null"`
	TargetType  string    `gorm:"type:varchar(16)"` // post / comment / event
	TargetID    string    `gorm:"type:varchar(36)"`
	Message     string    `gorm:"type:varchar(512)"`
	IsRead      bool      `gorm:"default:false;index"`
	CreatedAt   time.Time `gorm:"index:idx_notify_recipient_created"`
}

func (Notification) TableName() string { return "notifications" }
