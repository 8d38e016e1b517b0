package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

func seedMembership(t *testing.T, db *gorm.DB, communityID, userID string) {
	require.NoError(t, repository.NewMembershipRepository(db).
		Create(context.Background(), communityID, userID, model.RoleMember))
}

func seedFeedPost(t *testing.T, db *gorm.DB, communityID string, at time.Time) *model.Post {
	p := &model.Post{
		ID: uuid.New().String(), CommunityID: communityID, AuthorID: "author",
		Title: "p", Status: model.PostStatusActive,
		CreatedAt: at, UpdatedAt: at,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedFeedEvent(t *testing.T, db *gorm.DB, communityID string, at time.Time) *model.Event {
	e := &model.Event{
		ID: uuid.New().String(), CommunityID: communityID, CreatorID: "creator",
		Title: "e", StartsAt: at.Add(24 * time.Hour),
		CreatedAt: at, UpdatedAt: at,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func newFeedService(db *gorm.DB) FeedService {
	return NewFeedService(
		repository.NewMembershipRepository(db),
		repository.NewPostRepository(db),
		repository.NewEventRepository(db),
	)
}

// 走完整个流，校验逐页与整体时间不增
func walkFeed(t *testing.T, svc FeedService, userID string, pageSize int) []ActivityItem {
	ctx := context.Background()
	var all []ActivityItem
	cursor := ""
	for {
		page, err := svc.Feed(ctx, userID, cursor, pageSize)
		require.NoError(t, err)
		all = append(all, page.Items...)
		if !page.HasMore {
			return all
		}
		require.NotEmpty(t, page.NextCursor)
		require.Len(t, page.Items, pageSize)
		cursor = page.NextCursor
	}
}

func TestFeedMergesPostsAndEventsByTime(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedMembership(t, db, "c1", "alice")
	seedMembership(t, db, "c2", "alice")

	// 两路交错：偶数分钟发帖，奇数分钟建活动
	for i := 0; i < 14; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		if i%2 == 0 {
			seedFeedPost(t, db, "c1", at)
		} else {
			seedFeedEvent(t, db, "c2", at)
		}
	}

	svc := newFeedService(db)
	all := walkFeed(t, svc, "alice", 5)
	require.Len(t, all, 14)

	var posts, events int
	for i, item := range all {
		if item.Type == ActivityPost {
			posts++
		} else {
			events++
		}
		if i > 0 {
			notAfter := item.Timestamp.Before(all[i-1].Timestamp) || item.Timestamp.Equal(all[i-1].Timestamp)
			require.True(t, notAfter, "out of order at %d", i)
		}
	}
	require.Equal(t, 7, posts)
	require.Equal(t, 7, events)
}

func TestFeedLosslessAcrossPages(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedMembership(t, db, "c1", "alice")

	want := make(map[string]bool)
	for i := 0; i < 9; i++ {
		want[seedFeedPost(t, db, "c1", base.Add(time.Duration(i)*time.Minute)).ID] = false
	}
	for i := 0; i < 8; i++ {
		// 与部分帖子同刻，考验 (t,id) 兜底
		want[seedFeedEvent(t, db, "c1", base.Add(time.Duration(i)*time.Minute)).ID] = false
	}

	all := walkFeed(t, newFeedService(db), "alice", 4)
	require.Len(t, all, 17)
	for _, item := range all {
		id := item.id()
		seen, ok := want[id]
		require.True(t, ok, "unexpected id %s", id)
		require.False(t, seen, "duplicate id %s", id)
		want[id] = true
	}
}

func TestFeedSparseSourceDoesNotStarvePage(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedMembership(t, db, "c1", "alice")

	// 活动只有 1 条且最旧，帖子充足：每页仍应填满
	seedFeedEvent(t, db, "c1", base.Add(-time.Hour))
	for i := 0; i < 12; i++ {
		seedFeedPost(t, db, "c1", base.Add(time.Duration(i)*time.Minute))
	}

	svc := newFeedService(db)
	page, err := svc.Feed(context.Background(), "alice", "", 5)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	require.True(t, page.HasMore)

	all := walkFeed(t, svc, "alice", 5)
	require.Len(t, all, 13)
	require.Equal(t, ActivityEvent, all[12].Type)
}

func TestFeedNoMembershipsIsEmpty(t *testing.T) {
	db := setupTestDB(t)
	seedFeedPost(t, db, "c1", time.Now())

	page, err := newFeedService(db).Feed(context.Background(), "stranger", "", 20)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.False(t, page.HasMore)
}

func TestFeedExcludesOtherCommunities(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedMembership(t, db, "c1", "alice")
	mine := seedFeedPost(t, db, "c1", base)
	seedFeedPost(t, db, "c2", base.Add(time.Minute))

	all := walkFeed(t, newFeedService(db), "alice", 10)
	require.Len(t, all, 1)
	require.Equal(t, mine.ID, all[0].Post.ID)
}

func TestFeedBadCursor(t *testing.T) {
	db := setupTestDB(t)
	seedMembership(t, db, "c1", "alice")

	_, err := newFeedService(db).Feed(context.Background(), "alice", "!!!", 10)
	require.ErrorIs(t, err, ErrInvalidInput)
}
