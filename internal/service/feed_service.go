package service

import (
	"context"
	"time"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/pagination"
	"github.com/d60-Lab/community-hub/internal/repository"
)

// 活动流条目类型
const (
	ActivityPost  = "post"
	ActivityEvent = "event"
)

// ActivityItem 帖子/活动的 tagged union，共享 (timestamp, id) 排序键
type ActivityItem struct {
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Post      *model.Post  `json:"post,omitempty"`
	Event     *model.Event `json:"event,omitempty"`
}

func (a ActivityItem) id() string {
	if a.Type == ActivityPost {
		return a.Post.ID
	}
	return a.Event.ID
}

// FeedService 跨社区活动流：帖子与活动两路独立取数后按时间归并
type FeedService interface {
	Feed(ctx context.Context, userID, cursorStr string, pageSize int) (pagination.Page[ActivityItem], error)
}

type feedService struct {
	membershipRepo repository.MembershipRepository
	postRepo       repository.PostRepository
	eventRepo      repository.EventRepository
}

func NewFeedService(membershipRepo repository.MembershipRepository, postRepo repository.PostRepository, eventRepo repository.EventRepository) FeedService {
	return &feedService{membershipRepo: membershipRepo, postRepo: postRepo, eventRepo: eventRepo}
}

// Feed 每路各取 pageSize+1（稀疏源不至于拖垮整页），归并后截断。
// 游标 (t, id) 同时作用于两路，等价于对归并序列做键集分页；
// 任一路失败则整体失败，不降级出半截流。
func (s *feedService) Feed(ctx context.Context, userID, cursorStr string, pageSize int) (pagination.Page[ActivityItem], error) {
	var empty pagination.Page[ActivityItem]
	cursor, err := pagination.Decode(cursorStr)
	if err != nil {
		return empty, ErrInvalidInput
	}
	limit := pagination.ClampPageSize(pageSize)

	communityIDs, err := s.membershipRepo.ListCommunityIDs(ctx, userID)
	if err != nil {
		return empty, err
	}
	if len(communityIDs) == 0 {
		return pagination.Page[ActivityItem]{Items: []ActivityItem{}}, nil
	}

	posts, err := s.postRepo.ListForFeed(ctx, communityIDs, cursor, limit+1)
	if err != nil {
		return empty, err
	}
	events, err := s.eventRepo.ListForFeed(ctx, communityIDs, cursor, limit+1)
	if err != nil {
		return empty, err
	}

	merged := mergeActivity(posts, events)
	if len(merged) > limit+1 {
		merged = merged[:limit+1]
	}
	return pagination.Build(merged, limit, func(a ActivityItem) pagination.Cursor {
		return pagination.Cursor{Time: a.Timestamp, ID: a.id()}
	}), nil
}

// mergeActivity 两路归并，时间降序、同刻按 id 降序（与各路查询序一致）
func mergeActivity(posts []*model.Post, events []*model.Event) []ActivityItem {
	res := make([]ActivityItem, 0, len(posts)+len(events))
	i, j := 0, 0
	for i < len(posts) && j < len(events) {
		if activityBefore(posts[i].CreatedAt, posts[i].ID, events[j].CreatedAt, events[j].ID) {
			res = append(res, ActivityItem{Type: ActivityPost, Timestamp: posts[i].CreatedAt, Post: posts[i]})
			i++
		} else {
			res = append(res, ActivityItem{Type: ActivityEvent, Timestamp: events[j].CreatedAt, Event: events[j]})
			j++
		}
	}
	for ; i < len(posts); i++ {
		res = append(res, ActivityItem{Type: ActivityPost, Timestamp: posts[i].CreatedAt, Post: posts[i]})
	}
	for ; j < len(events); j++ {
		res = append(res, ActivityItem{Type: ActivityEvent, Timestamp: events[j].CreatedAt, Event: events[j]})
	}
	return res
}

// activityBefore a 是否排在 b 前（时间降序，同刻 id 降序）
func activityBefore(at time.Time, aid string, bt time.Time, bid string) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return aid > bid
}
