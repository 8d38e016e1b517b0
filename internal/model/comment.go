package model

import "time"

// 评论状态
const (
	CommentStatusActive  = "active"
	CommentStatusRemoved = "removed"
)

// Comment 评论，parent_id 自引用构成树；depth 读时计算，不落库
type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `gorm:"type:varchar(36);index:idx_comment_post_created;not null"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_comment_author;not null"`
	ParentID  *string   `gorm:"type:varchar(36);index:idx_comment_parent"`
	Body      string    `gorm:"type:text"`
	Score     int64     `gorm:"default:0"`
	Status    string    `gorm:"type:varchar(16);not null;default:active"`
	CreatedAt time.Time `gorm:"index:idx_comment_post_created"`
	UpdatedAt time.Time
}

func (Comment) TableName() string { return "comments" }
