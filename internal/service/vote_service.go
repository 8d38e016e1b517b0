package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/ranking"
)

// VoteResult 投票后的目标状态
type VoteResult struct {
	Score    int64 `json:"score"`
	UserVote int   `json:"user_vote"` // 1 / -1 / 0
}

// VoteService 投票状态机：{无票, 赞, 踩}。
// 同值再投=取消，反值=翻转（±2）。整个迁移在单事务内完成，
// 冗余 score 永远等于 votes 行之和。
type VoteService interface {
	Cast(ctx context.Context, userID, targetType, targetID string, value int) (*VoteResult, error)
}

type voteService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewVoteService(db *gorm.DB, notifier *Notifier) VoteService {
	return &voteService{db: db, notifier: notifier}
}

// 票数里程碑，首次越过时通知作者
var voteMilestones = []int64{10, 50, 100}

// lockForUpdate 行锁：sqlite 单写串行，无需也不支持 FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (s *voteService) Cast(ctx context.Context, userID, targetType, targetID string, value int) (*VoteResult, error) {
	if value != model.VoteUp && value != model.VoteDown {
		return nil, ErrInvalidInput
	}
	if targetType != model.VoteTargetPost && targetType != model.VoteTargetComment {
		return nil, ErrInvalidInput
	}

	var (
		result    VoteResult
		milestone *model.Notification
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 锁定并读取当前票（同一用户并发投票互斥）
		var cur model.Vote
		found := true
		err := lockForUpdate(tx).
			Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			First(&cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
		} else if err != nil {
			return err
		}

		// 2. 状态迁移 + 增量
		var delta int64
		var newState int
		switch {
		case !found:
			delta = int64(value)
			newState = value
			v := model.Vote{
				ID: uuid.New().String(), UserID: userID,
				TargetType: targetType, TargetID: targetID, Value: value,
			}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
		case cur.Value == value:
			// 同值再投 = 取消
			delta = -int64(value)
			newState = 0
			if err := tx.Delete(&model.Vote{}, "id = ?", cur.ID).Error; err != nil {
				return err
			}
		default:
			// 反值 = 翻转
			delta = int64(2 * value)
			newState = value
			if err := tx.Model(&model.Vote{}).Where("id = ?", cur.ID).Update("value", value).Error; err != nil {
				return err
			}
		}

		// 3. 原子更新冗余 score（帖子同时重算热度键）
		newScore, crossed, err := s.applyDelta(tx, targetType, targetID, delta)
		if err != nil {
			return err
		}
		result = VoteResult{Score: newScore, UserVote: newState}
		milestone = crossed
		return nil
	})
	if err != nil {
		return nil, err
	}
	if milestone != nil && s.notifier != nil {
		s.notifier.Enqueue(milestone)
	}
	return &result, nil
}

func (s *voteService) applyDelta(tx *gorm.DB, targetType, targetID string, delta int64) (int64, *model.Notification, error) {
	if targetType == model.VoteTargetComment {
		var c model.Comment
		if err := lockForUpdate(tx).Where("id = ?", targetID).First(&c).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil, ErrNotFound
			}
			return 0, nil, err
		}
		newScore := c.Score + delta
		if err := tx.Model(&model.Comment{}).Where("id = ?", targetID).
			UpdateColumn("score", newScore).Error; err != nil {
			return 0, nil, err
		}
		return newScore, nil, nil
	}

	var p model.Post
	if err := lockForUpdate(tx).Where("id = ?", targetID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrNotFound
		}
		return 0, nil, err
	}
	newScore := p.Score + delta
	if err := tx.Model(&model.Post{}).Where("id = ?", targetID).
		UpdateColumns(map[string]any{
			"score":    newScore,
			"hot_rank": ranking.HotEpoch(newScore, p.CreatedAt),
		}).Error; err != nil {
		return 0, nil, err
	}

	var milestone *model.Notification
	for _, m := range voteMilestones {
		if p.Score < m && newScore >= m {
			milestone = &model.Notification{
				ID:          uuid.New().String(),
				RecipientID: p.AuthorID,
				Type:        model.NotifyVoteMilestone,
				TargetType:  model.VoteTargetPost,
				TargetID:    p.ID,
				Message:     p.Title,
				CreatedAt:   time.Now(),
			}
		}
	}
	return newScore, milestone, nil
}
