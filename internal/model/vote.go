package model

import "time"

// 投票目标类型
const (
	VoteTargetPost    = "post"
	VoteTargetComment = "comment"
)

// 投票值，取消投票直接删行而不是写 0
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote 单用户对单目标至多一行
type Vote struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	UserID     string `gorm:"type:varchar(36);index:idx_vote_triplet,unique;not null"`
	TargetType string `gorm:"type:varchar(8);index:idx_vote_triplet,unique;not null"`
	TargetID   string `gorm:"type:varchar(36);index:idx_vote_triplet,unique;index:idx_vote_target;not null"`
	// 复合唯一键 idx_vote_triplet = (user_id, target_type, target_id)
	Value     int `gorm:"not null"` // 1 或 -1
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vote) TableName() string { return "votes" }
