package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
	"github.com/d60-Lab/community-hub/internal/repository"
)

// CommentNode 带读时深度的评论
type CommentNode struct {
	*model.Comment
	Depth    int            `json:"depth"`
	Children []*CommentNode `json:"children,omitempty"`
}

// CommentService 评论：树形（parent_id 自引用）、墓碑删除
type CommentService interface {
	Create(ctx context.Context, postID, authorID, body string, parentID *string) (*model.Comment, error)
	// ListPage 平铺分页（时间降序键集）
	ListPage(ctx context.Context, postID, cursorStr string, pageSize int) (pagination.Page[*model.Comment], error)
	// Thread 整楼组树，depth 读时计算
	Thread(ctx context.Context, postID string) ([]*CommentNode, error)
	// Remove 墓碑化，版主动作落审核日志
	Remove(ctx context.Context, commentID, actorID, reason string) error
}

type commentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	community   CommunityService
	notifier    *Notifier
}

func NewCommentService(db *gorm.DB, commentRepo repository.CommentRepository, postRepo repository.PostRepository, community CommunityService, notifier *Notifier) CommentService {
	return &commentService{db: db, commentRepo: commentRepo, postRepo: postRepo, community: community, notifier: notifier}
}

func (s *commentService) Create(ctx context.Context, postID, authorID, body string, parentID *string) (*model.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.Status != model.PostStatusActive {
		return nil, ErrNotFound
	}
	if _, err := s.community.RoleOf(ctx, post.CommunityID, authorID); err != nil {
		return nil, err
	}

	var parent *model.Comment
	if parentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrInvalidInput
		}
	}

	c := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
		Body:     body,
		Status:   model.CommentStatusActive,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Enqueue(&model.Notification{
			ID:          uuid.New().String(),
			RecipientID: post.AuthorID,
			ActorID:     authorID,
			Type:        model.NotifyCommentOnPost,
			TargetType:  model.VoteTargetPost,
			TargetID:    postID,
			Message:     post.Title,
			CreatedAt:   time.Now(),
		})
		if parent != nil {
			s.notifier.Enqueue(&model.Notification{
				ID:          uuid.New().String(),
				RecipientID: parent.AuthorID,
				ActorID:     authorID,
				Type:        model.NotifyReply,
				TargetType:  model.VoteTargetComment,
				TargetID:    parent.ID,
				CreatedAt:   time.Now(),
			})
		}
	}
	return c, nil
}

func (s *commentService) ListPage(ctx context.Context, postID, cursorStr string, pageSize int) (pagination.Page[*model.Comment], error) {
	var empty pagination.Page[*model.Comment]
	cursor, err := pagination.Decode(cursorStr)
	if err != nil {
		return empty, ErrInvalidInput
	}
	limit := pagination.ClampPageSize(pageSize)
	items, err := s.commentRepo.ListByPost(ctx, postID, cursor, limit+1)
	if err != nil {
		return empty, err
	}
	return pagination.Build(items, limit, func(c *model.Comment) pagination.Cursor {
		return pagination.Cursor{Time: c.CreatedAt, ID: c.ID}
	}), nil
}

func (s *commentService) Thread(ctx context.Context, postID string) ([]*CommentNode, error) {
	// 整楼拉取后组树；楼内排序时间升序
	var all []*model.Comment
	if err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at, id").
		Find(&all).Error; err != nil {
		return nil, err
	}

	nodes := make(map[string]*CommentNode, len(all))
	var roots []*CommentNode
	for _, c := range all {
		nodes[c.ID] = &CommentNode{Comment: c}
	}
	for _, c := range all {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			// 父节点缺失（历史脏数据）按根处理
			roots = append(roots, node)
			continue
		}
		node.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, node)
	}
	return roots, nil
}

func (s *commentService) Remove(ctx context.Context, commentID, actorID, reason string) error {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if c.Status == model.CommentStatusRemoved {
		return nil
	}
	post, err := s.postRepo.GetByID(ctx, c.PostID)
	if err != nil {
		return err
	}
	moderated := c.AuthorID != actorID
	if moderated {
		if err := s.community.RequireModerator(ctx, post.CommunityID, actorID); err != nil {
			return err
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 保留行占位维持楼层结构，仅清正文
		if err := tx.Model(&model.Comment{}).Where("id = ?", commentID).
			Updates(map[string]any{"status": model.CommentStatusRemoved, "body": ""}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Post{}).Where("id = ?", c.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error; err != nil {
			return err
		}
		if moderated {
			return appendModLog(tx, post.CommunityID, actorID, model.ModActionRemoveComment, model.VoteTargetComment, commentID, reason)
		}
		return nil
	})
}
