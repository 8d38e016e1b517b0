package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
	"github.com/d60-Lab/community-hub/internal/repository"
)

const unreadCountTTL = time.Minute

// NotificationService 通知读路径
type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool, cursorStr string, pageSize int) (pagination.Page[*model.Notification], error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	rdb  *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, rdb *redis.Client) NotificationService {
	return &notificationService{repo: repo, rdb: rdb}
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, cursorStr string, pageSize int) (pagination.Page[*model.Notification], error) {
	var empty pagination.Page[*model.Notification]
	cursor, err := pagination.Decode(cursorStr)
	if err != nil {
		return empty, ErrInvalidInput
	}
	limit := pagination.ClampPageSize(pageSize)
	items, err := s.repo.List(ctx, userID, unreadOnly, cursor, limit+1)
	if err != nil {
		return empty, err
	}
	return pagination.Build(items, limit, func(n *model.Notification) pagination.Cursor {
		return pagination.Cursor{Time: n.CreatedAt, ID: n.ID}
	}), nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// UnreadCount 未读数：redis 短缓存 + 失效回源
func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	key := unreadCountKey(userID)
	if s.rdb != nil {
		if v, err := s.rdb.Get(ctx, key).Result(); err == nil {
			if n, perr := strconv.ParseInt(v, 10, 64); perr == nil {
				return n, nil
			}
		}
	}
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.rdb != nil {
		_ = s.rdb.Set(ctx, key, strconv.FormatInt(n, 10), unreadCountTTL).Err()
	}
	return n, nil
}

func (s *notificationService) invalidate(ctx context.Context, userID string) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, unreadCountKey(userID)).Err()
	}
}
