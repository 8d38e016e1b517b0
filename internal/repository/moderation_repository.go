package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
)

type ModerationRepository interface {
	// List 审核日志按 (created_at, id) 降序键集分页
	List(ctx context.Context, communityID string, cursor *pagination.Cursor, limit int) ([]*model.ModerationLog, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) List(ctx context.Context, communityID string, cursor *pagination.Cursor, limit int) ([]*model.ModerationLog, error) {
	var res []*model.ModerationLog
	q := r.db.WithContext(ctx).Where("community_id = ?", communityID)
	if cursor != nil {
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", cursor.Time, cursor.Time, cursor.ID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&res).Error
	return res, err
}
