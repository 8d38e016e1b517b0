package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// ListUpcoming 按开始时间升序列出未开始的活动
	ListUpcoming(ctx context.Context, communityID string, after time.Time, offset, limit int) ([]*model.Event, error)
	// ListForFeed 供活动流聚合：多社区、创建时间降序、(t,id) 键集
	ListForFeed(ctx context.Context, communityIDs []string, cursor *pagination.Cursor, limit int) ([]*model.Event, error)
	GetRsvp(ctx context.Context, eventID, userID string) (*model.Rsvp, error)
	ListRsvps(ctx context.Context, eventID string, offset, limit int) ([]*model.Rsvp, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository { return &eventRepository{db: db} }

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, communityID string, after time.Time, offset, limit int) ([]*model.Event, error) {
	var res []*model.Event
	err := r.db.WithContext(ctx).
		Where("community_id = ? AND starts_at >= ?", communityID, after).
		Order("starts_at, id").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *eventRepository) ListForFeed(ctx context.Context, communityIDs []string, cursor *pagination.Cursor, limit int) ([]*model.Event, error) {
	if len(communityIDs) == 0 {
		return nil, nil
	}
	var res []*model.Event
	q := r.db.WithContext(ctx).Where("community_id IN ?", communityIDs)
	if cursor != nil {
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", cursor.Time, cursor.Time, cursor.ID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&res).Error
	return res, err
}

func (r *eventRepository) GetRsvp(ctx context.Context, eventID, userID string) (*model.Rsvp, error) {
	var rv model.Rsvp
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *eventRepository) ListRsvps(ctx context.Context, eventID string, offset, limit int) ([]*model.Rsvp, error) {
	var res []*model.Rsvp
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
