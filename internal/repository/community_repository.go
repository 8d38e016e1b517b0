package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
)

// CommunityStats 管理面板用的汇总数字
type CommunityStats struct {
	MemberCount int64 `json:"member_count"`
	PostCount   int64 `json:"post_count"`
	EventCount  int64 `json:"event_count"`
}

type CommunityRepository interface {
	Create(ctx context.Context, name, description, creatorID string) (*model.Community, error)
	GetByID(ctx context.Context, id string) (*model.Community, error)
	GetByName(ctx context.Context, name string) (*model.Community, error)
	List(ctx context.Context, offset, limit int) ([]*model.Community, error)
	IncrMemberCount(ctx context.Context, id string, delta int64) error
	Stats(ctx context.Context, id string) (*CommunityStats, error)
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository { return &communityRepository{db: db} }

func (r *communityRepository) Create(ctx context.Context, name, description, creatorID string) (*model.Community, error) {
	c := &model.Community{ID: uuid.New().String(), Name: name, Description: description, CreatorID: creatorID}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*model.Community, error) {
	var c model.Community
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *communityRepository) GetByName(ctx context.Context, name string) (*model.Community, error) {
	var c model.Community
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *communityRepository) List(ctx context.Context, offset, limit int) ([]*model.Community, error) {
	var res []*model.Community
	err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *communityRepository) IncrMemberCount(ctx context.Context, id string, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Community{}).
		Where("id = ?", id).
		UpdateColumn("member_count", gorm.Expr("member_count + ?", delta)).Error
}

func (r *communityRepository) Stats(ctx context.Context, id string) (*CommunityStats, error) {
	var s CommunityStats
	if err := r.db.WithContext(ctx).
		Model(&model.Membership{}).Where("community_id = ?", id).Count(&s.MemberCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Post{}).Where("community_id = ? AND status = ?", id, model.PostStatusActive).
		Count(&s.PostCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Event{}).Where("community_id = ?", id).Count(&s.EventCount).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
