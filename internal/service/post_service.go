package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
	"github.com/d60-Lab/community-hub/internal/ranking"
	"github.com/d60-Lab/community-hub/internal/repository"
)

// PostService 帖子生命周期：创建、列表、置顶、软删除
type PostService interface {
	Create(ctx context.Context, communityID, authorID, title, body, bodyPlain string) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	// List hot/new/top 键集分页
	List(ctx context.Context, communityID, sortStr, cursorStr string, pageSize int) (pagination.Page[*model.Post], error)
	ListPinned(ctx context.Context, communityID string) ([]*model.Post, error)
	Edit(ctx context.Context, postID, editorID, title, body, bodyPlain string) (*model.Post, error)
	// Pin / Unpin 仅版主，动作落审核日志
	Pin(ctx context.Context, postID, actorID string, pinned bool) error
	// Remove 软删除：墓碑 + 审核日志同事务
	Remove(ctx context.Context, postID, actorID, reason string) error
}

type postService struct {
	db        *gorm.DB
	postRepo  repository.PostRepository
	community CommunityService
}

func NewPostService(db *gorm.DB, postRepo repository.PostRepository, community CommunityService) PostService {
	return &postService{db: db, postRepo: postRepo, community: community}
}

func (s *postService) Create(ctx context.Context, communityID, authorID, title, body, bodyPlain string) (*model.Post, error) {
	if _, err := s.community.RoleOf(ctx, communityID, authorID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &model.Post{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		AuthorID:    authorID,
		Title:       title,
		Body:        body,
		BodyPlain:   bodyPlain,
		Status:      model.PostStatusActive,
		HotRank:     ranking.HotEpoch(0, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *postService) List(ctx context.Context, communityID, sortStr, cursorStr string, pageSize int) (pagination.Page[*model.Post], error) {
	var empty pagination.Page[*model.Post]
	sort, err := pagination.ParseSort(sortStr)
	if err != nil {
		return empty, ErrInvalidInput
	}
	cursor, err := pagination.Decode(cursorStr)
	if err != nil {
		return empty, ErrInvalidInput
	}
	limit := pagination.ClampPageSize(pageSize)
	items, err := s.postRepo.List(ctx, communityID, sort, cursor, limit+1)
	if err != nil {
		return empty, err
	}
	return pagination.Build(items, limit, func(p *model.Post) pagination.Cursor {
		return repository.CursorOf(p, sort)
	}), nil
}

func (s *postService) ListPinned(ctx context.Context, communityID string) ([]*model.Post, error) {
	return s.postRepo.ListPinned(ctx, communityID)
}

func (s *postService) Edit(ctx context.Context, postID, editorID, title, body, bodyPlain string) (*model.Post, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != editorID {
		return nil, ErrForbidden
	}
	if p.Status != model.PostStatusActive {
		return nil, ErrNotFound
	}
	err = s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		Updates(map[string]any{"title": title, "body": body, "body_plain": bodyPlain}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, postID)
}

func (s *postService) Pin(ctx context.Context, postID, actorID string, pinned bool) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.community.RequireModerator(ctx, p.CommunityID, actorID); err != nil {
		return err
	}
	action := model.ModActionPinPost
	if !pinned {
		action = model.ModActionUnpinPost
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).Where("id = ?", postID).
			Update("pinned", pinned).Error; err != nil {
			return err
		}
		return appendModLog(tx, p.CommunityID, actorID, action, model.VoteTargetPost, postID, "")
	})
}

func (s *postService) Remove(ctx context.Context, postID, actorID, reason string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.Status == model.PostStatusRemoved {
		return nil
	}
	// 作者可删自己的帖，否则需要版主
	if p.AuthorID != actorID {
		if err := s.community.RequireModerator(ctx, p.CommunityID, actorID); err != nil {
			return err
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 墓碑：清空正文、保留行，计数同步回退
		if err := tx.Model(&model.Post{}).Where("id = ?", postID).
			Updates(map[string]any{
				"status":     model.PostStatusRemoved,
				"body":       "",
				"body_plain": "",
				"pinned":     false,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Community{}).Where("id = ?", p.CommunityID).
			UpdateColumn("post_count", gorm.Expr("post_count - 1")).Error; err != nil {
			return err
		}
		return appendModLog(tx, p.CommunityID, actorID, model.ModActionRemovePost, model.VoteTargetPost, postID, reason)
	})
}

// appendModLog 在调用方事务内追加一条审核日志
func appendModLog(tx *gorm.DB, communityID, actorID, action, targetType, targetID, reason string) error {
	return tx.Create(&model.ModerationLog{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		ActorID:     actorID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}).Error
}
