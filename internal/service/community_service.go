package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

// CommunityService 社区与成员关系
type CommunityService interface {
	Create(ctx context.Context, name, description, creatorID string) (*model.Community, error)
	Get(ctx context.Context, id string) (*model.Community, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Community, error)
	Join(ctx context.Context, communityID, userID string) error
	Leave(ctx context.Context, communityID, userID string) error
	// RoleOf 返回用户在社区内的角色；非成员返回 ErrNotMember
	RoleOf(ctx context.Context, communityID, userID string) (string, error)
	RequireModerator(ctx context.Context, communityID, userID string) error
	Stats(ctx context.Context, communityID, userID string) (*repository.CommunityStats, error)
}

type communityService struct {
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
}

func NewCommunityService(communityRepo repository.CommunityRepository, membershipRepo repository.MembershipRepository) CommunityService {
	return &communityService{communityRepo: communityRepo, membershipRepo: membershipRepo}
}

func (s *communityService) Create(ctx context.Context, name, description, creatorID string) (*model.Community, error) {
	if _, err := s.communityRepo.GetByName(ctx, name); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c, err := s.communityRepo.Create(ctx, name, description, creatorID)
	if err != nil {
		return nil, err
	}
	// 创建者自动成为管理员
	if err := s.membershipRepo.Create(ctx, c.ID, creatorID, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.communityRepo.IncrMemberCount(ctx, c.ID, 1); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *communityService) Get(ctx context.Context, id string) (*model.Community, error) {
	c, err := s.communityRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *communityService) List(ctx context.Context, page, pageSize int) ([]*model.Community, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.communityRepo.List(ctx, (page-1)*pageSize, pageSize)
}

func (s *communityService) Join(ctx context.Context, communityID, userID string) error {
	if _, err := s.Get(ctx, communityID); err != nil {
		return err
	}
	exists, err := s.membershipRepo.Exists(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if exists {
		// 幂等：重复加入不报错也不重复计数
		return nil
	}
	if err := s.membershipRepo.Create(ctx, communityID, userID, model.RoleMember); err != nil {
		return err
	}
	return s.communityRepo.IncrMemberCount(ctx, communityID, 1)
}

func (s *communityService) Leave(ctx context.Context, communityID, userID string) error {
	exists, err := s.membershipRepo.Exists(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if err := s.membershipRepo.Delete(ctx, communityID, userID); err != nil {
		return err
	}
	return s.communityRepo.IncrMemberCount(ctx, communityID, -1)
}

func (s *communityService) RoleOf(ctx context.Context, communityID, userID string) (string, error) {
	m, err := s.membershipRepo.Get(ctx, communityID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotMember
		}
		return "", err
	}
	return m.Role, nil
}

func (s *communityService) RequireModerator(ctx context.Context, communityID, userID string) error {
	role, err := s.RoleOf(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if role != model.RoleModerator && role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *communityService) Stats(ctx context.Context, communityID, userID string) (*repository.CommunityStats, error) {
	if err := s.RequireModerator(ctx, communityID, userID); err != nil {
		return nil, err
	}
	return s.communityRepo.Stats(ctx, communityID)
}
