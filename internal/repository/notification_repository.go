package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, recipientID string, unreadOnly bool, cursor *pagination.Cursor, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) List(ctx context.Context, recipientID string, unreadOnly bool, cursor *pagination.Cursor, limit int) ([]*model.Notification, error) {
	var res []*model.Notification
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if cursor != nil {
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", cursor.Time, cursor.Time, cursor.ID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&res).Error
	return res, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&cnt).Error
	return cnt, err
}
