package service

import (
	"context"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
	"github.com/d60-Lab/community-hub/internal/repository"
)

// ModerationService 审核日志读路径（写入发生在对应动作的事务里）
type ModerationService interface {
	List(ctx context.Context, communityID, actorID, cursorStr string, pageSize int) (pagination.Page[*model.ModerationLog], error)
}

type moderationService struct {
	modRepo   repository.ModerationRepository
	community CommunityService
}

func NewModerationService(modRepo repository.ModerationRepository, community CommunityService) ModerationService {
	return &moderationService{modRepo: modRepo, community: community}
}

func (s *moderationService) List(ctx context.Context, communityID, actorID, cursorStr string, pageSize int) (pagination.Page[*model.ModerationLog], error) {
	var empty pagination.Page[*model.ModerationLog]
	if err := s.community.RequireModerator(ctx, communityID, actorID); err != nil {
		return empty, err
	}
	cursor, err := pagination.Decode(cursorStr)
	if err != nil {
		return empty, ErrInvalidInput
	}
	limit := pagination.ClampPageSize(pageSize)
	items, err := s.modRepo.List(ctx, communityID, cursor, limit+1)
	if err != nil {
		return empty, err
	}
	return pagination.Build(items, limit, func(m *model.ModerationLog) pagination.Cursor {
		return pagination.Cursor{Time: m.CreatedAt, ID: m.ID}
	}), nil
}
