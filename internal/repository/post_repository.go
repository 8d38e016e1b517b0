package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List 返回社区内非置顶帖的一页（键集分页），limit 由调用方 +1 超查
	List(ctx context.Context, communityID string, sort pagination.Sort, cursor *pagination.Cursor, limit int) ([]*model.Post, error)
	ListPinned(ctx context.Context, communityID string) ([]*model.Post, error)
	// ListForFeed 供活动流聚合：多社区、时间降序、(t,id) 键集
	ListForFeed(ctx context.Context, communityIDs []string, cursor *pagination.Cursor, limit int) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	// 帖子与社区计数同事务落地
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&model.Community{}).
			Where("id = ?", post.CommunityID).
			UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error
	})
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// 键集谓词：游标只是排序键上的界，不指向具体行，
// 因此游标行被删除后天然从最近的幸存行继续。
func applyCursor(q *gorm.DB, sort pagination.Sort, c *pagination.Cursor) *gorm.DB {
	if c == nil {
		return q
	}
	switch sort {
	case pagination.SortNew:
		return q.Where(
			"(created_at < ? OR (created_at = ? AND id < ?))",
			c.Time, c.Time, c.ID,
		)
	case pagination.SortTop:
		score := int64(0)
		if c.Score != nil {
			score = *c.Score
		}
		return q.Where(
			"(score < ? OR (score = ? AND (created_at < ? OR (created_at = ? AND id < ?))))",
			score, score, c.Time, c.Time, c.ID,
		)
	case pagination.SortHot:
		rank := 0.0
		if c.Rank != nil {
			rank = *c.Rank
		}
		return q.Where(
			"(hot_rank < ? OR (hot_rank = ? AND (created_at < ? OR (created_at = ? AND id < ?))))",
			rank, rank, c.Time, c.Time, c.ID,
		)
	}
	return q
}

func orderFor(sort pagination.Sort) string {
	switch sort {
	case pagination.SortTop:
		return "score DESC, created_at DESC, id DESC"
	case pagination.SortHot:
		return "hot_rank DESC, created_at DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

func (r *postRepository) List(ctx context.Context, communityID string, sort pagination.Sort, cursor *pagination.Cursor, limit int) ([]*model.Post, error) {
	var res []*model.Post
	q := r.db.WithContext(ctx).
		Where("community_id = ? AND status = ? AND pinned = ?", communityID, model.PostStatusActive, false)
	q = applyCursor(q, sort, cursor)
	err := q.Order(orderFor(sort)).Limit(limit).Find(&res).Error
	return res, err
}

func (r *postRepository) ListPinned(ctx context.Context, communityID string) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("community_id = ? AND status = ? AND pinned = ?", communityID, model.PostStatusActive, true).
		Order("created_at DESC, id DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListForFeed(ctx context.Context, communityIDs []string, cursor *pagination.Cursor, limit int) ([]*model.Post, error) {
	if len(communityIDs) == 0 {
		return nil, nil
	}
	var res []*model.Post
	q := r.db.WithContext(ctx).
		Where("community_id IN ? AND status = ?", communityIDs, model.PostStatusActive)
	q = applyCursor(q, pagination.SortNew, cursor)
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&res).Error
	return res, err
}

// CursorOf 给定排序下某行对应的游标
func CursorOf(p *model.Post, sort pagination.Sort) pagination.Cursor {
	c := pagination.Cursor{Time: p.CreatedAt, ID: p.ID}
	switch sort {
	case pagination.SortTop:
		s := p.Score
		c.Score = &s
	case pagination.SortHot:
		rk := p.HotRank
		c.Rank = &rk
	}
	return c
}
