package model

import "time"

// RSVP 状态
const (
	RsvpGoing    = "going"
	RsvpMaybe    = "maybe"
	RsvpDeclined = "declined"
)

// Rsvp 用户对活动的报名，单 (event, user) 至多一行
type Rsvp struct {
	ID      string `gorm:"primaryKey;type:varchar(36)"`
	EventID string `gorm:"type:varchar(36);index:idx_rsvp_event;index:idx_rsvp_pair,unique;not null"`
	UserID  string `gorm:"type:varchar(36);not null;index:idx_rsvp_pair,unique"`
	// idx_rsvp_pair = (event_id, user_id)
	Status    string `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Rsvp) TableName() string { return "rsvps" }
