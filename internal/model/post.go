package model

import "time"

// 帖子状态
const (
	PostStatusActive  = "active"
	PostStatusRemoved = "removed" // 软删除墓碑，正文已清空
)

// Post 帖子，score 为投票冗余和
type Post struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	CommunityID string `gorm:"type:varchar(36);index:idx_post_comm_created;index:idx_post_comm_score;index:idx_post_comm_hot;not null"`
	AuthorID    string `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Title       string `gorm:"type:varchar(256);not null"`
	Body        string `gorm:"type:text"` // 富文本
	BodyPlain   string `gorm:"type:text"` // 纯文本，用于摘要/检索
	// score = sum(votes.value)，写时维护
	Score int64 `gorm:"default:0;index:idx_post_comm_score"`
	// 热度键（纪元基准），建帖和每次投票时重算
	HotRank      float64   `gorm:"default:0;index:idx_post_comm_hot"`
	CommentCount int64     `gorm:"default:0"`
	Pinned       bool      `gorm:"default:false"`
	Status       string    `gorm:"type:varchar(16);not null;default:active"`
	CreatedAt    time.Time `gorm:"index:idx_post_comm_created"`
	UpdatedAt    time.Time
}

func (Post) TableName() string { return "posts" }
