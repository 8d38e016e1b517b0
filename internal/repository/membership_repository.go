package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/community-hub/internal/model"
)

type MembershipRepository interface {
	Create(ctx context.Context, communityID, userID, role string) error
	Delete(ctx context.Context, communityID, userID string) error
	Get(ctx context.Context, communityID, userID string) (*model.Membership, error)
	Exists(ctx context.Context, communityID, userID string) (bool, error)
	UpdateRole(ctx context.Context, communityID, userID, role string) error
	ListCommunityIDs(ctx context.Context, userID string) ([]string, error)
	ListMembers(ctx context.Context, communityID string, offset, limit int) ([]*model.Membership, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository { return &membershipRepository{db: db} }

func (r *membershipRepository) Create(ctx context.Context, communityID, userID, role string) error {
	m := &model.Membership{ID: uuid.New().String(), CommunityID: communityID, UserID: userID, Role: role}
	// 幂等：重复加入不报错
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

func (r *membershipRepository) Delete(ctx context.Context, communityID, userID string) error {
	return r.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.Membership{}).Error
}

func (r *membershipRepository) Get(ctx context.Context, communityID, userID string) (*model.Membership, error) {
	var m model.Membership
	if err := r.db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) Exists(ctx context.Context, communityID, userID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, communityID, userID, role string) error {
	return r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Update("role", role).Error
}

func (r *membershipRepository) ListCommunityIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("user_id = ?", userID).
		Pluck("community_id", &ids).Error
	return ids, err
}

func (r *membershipRepository) ListMembers(ctx context.Context, communityID string, offset, limit int) ([]*model.Membership, error) {
	var res []*model.Membership
	err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
