package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
)

type CommentRepository interface {
	// Create 评论与帖子 comment_count 同事务落地
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByPost 按 (created_at, id) 降序键集分页；墓碑评论保留占位
	ListByPost(ctx context.Context, postID string, cursor *pagination.Cursor, limit int) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, cursor *pagination.Cursor, limit int) ([]*model.Comment, error) {
	var res []*model.Comment
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if cursor != nil {
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", cursor.Time, cursor.Time, cursor.ID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&res).Error
	return res, err
}
