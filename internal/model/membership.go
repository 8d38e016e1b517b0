package model

import "time"

// 成员角色
const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Membership 用户-社区成员关系
type Membership struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	CommunityID string `gorm:"type:varchar(36);index:idx_membership_community;index:idx_membership_pair,unique;not null"`
	UserID      string `gorm:"type:varchar(36);index:idx_membership_user;not null;index:idx_membership_pair,unique"`
	// 复合唯一键，避免重复加入
	// idx_membership_pair = (community_id, user_id)
	Role      string `gorm:"type:varchar(16);not null;default:member"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Membership) TableName() string { return "memberships" }
