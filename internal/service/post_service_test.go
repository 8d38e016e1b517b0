package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

func newPostFixture(t *testing.T, db *gorm.DB) (PostService, CommunityService, *model.Community) {
	community := NewCommunityService(
		repository.NewCommunityRepository(db),
		repository.NewMembershipRepository(db),
	)
	posts := NewPostService(db, repository.NewPostRepository(db), community)
	c, err := community.Create(context.Background(), "gophers", "", "admin")
	require.NoError(t, err)
	return posts, community, c
}

func TestPostCreateRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	svc, community, c := newPostFixture(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, c.ID, "stranger", "t", "b", "b")
	require.ErrorIs(t, err, ErrNotMember)

	require.NoError(t, community.Join(ctx, c.ID, "alice"))
	p, err := svc.Create(ctx, c.ID, "alice", "t", "b", "b")
	require.NoError(t, err)
	require.Equal(t, model.PostStatusActive, p.Status)
	require.NotZero(t, p.HotRank)
}

func TestPostEditAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	svc, community, c := newPostFixture(t, db)
	ctx := context.Background()
	require.NoError(t, community.Join(ctx, c.ID, "alice"))
	require.NoError(t, community.Join(ctx, c.ID, "bob"))

	p, err := svc.Create(ctx, c.ID, "alice", "t", "b", "b")
	require.NoError(t, err)

	_, err = svc.Edit(ctx, p.ID, "bob", "hijacked", "x", "x")
	require.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Edit(ctx, p.ID, "alice", "t2", "b2", "b2")
	require.NoError(t, err)
	require.Equal(t, "t2", got.Title)
	require.Equal(t, "b2", got.Body)
}

func TestPostPinModeratorOnlyAndLogged(t *testing.T) {
	db := setupTestDB(t)
	svc, community, c := newPostFixture(t, db)
	ctx := context.Background()
	require.NoError(t, community.Join(ctx, c.ID, "alice"))

	p, err := svc.Create(ctx, c.ID, "alice", "t", "b", "b")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Pin(ctx, p.ID, "alice", true), ErrForbidden)
	require.NoError(t, svc.Pin(ctx, p.ID, "admin", true))

	pins, err := svc.ListPinned(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, pins, 1)

	require.NoError(t, svc.Pin(ctx, p.ID, "admin", false))
	pins, err = svc.ListPinned(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, pins)

	var logs []model.ModerationLog
	require.NoError(t, db.Where("community_id = ?", c.ID).Order("created_at").Find(&logs).Error)
	require.Len(t, logs, 2)
	require.Equal(t, model.ModActionPinPost, logs[0].Action)
	require.Equal(t, model.ModActionUnpinPost, logs[1].Action)
}

func TestPostRemoveTombstone(t *testing.T) {
	db := setupTestDB(t)
	svc, community, c := newPostFixture(t, db)
	ctx := context.Background()
	require.NoError(t, community.Join(ctx, c.ID, "alice"))
	require.NoError(t, community.Join(ctx, c.ID, "bob"))

	p, err := svc.Create(ctx, c.ID, "alice", "t", "secret body", "secret body")
	require.NoError(t, err)

	// 非作者非版主不可删
	require.ErrorIs(t, svc.Remove(ctx, p.ID, "bob", "spam"), ErrForbidden)

	require.NoError(t, svc.Remove(ctx, p.ID, "admin", "spam"))

	var got model.Post
	require.NoError(t, db.Where("id = ?", p.ID).First(&got).Error)
	require.Equal(t, model.PostStatusRemoved, got.Status)
	require.Empty(t, got.Body)
	require.False(t, got.Pinned)

	// 已删帖不可再编辑
	_, err = svc.Edit(ctx, p.ID, "alice", "x", "y", "y")
	require.ErrorIs(t, err, ErrNotFound)

	// 幂等
	require.NoError(t, svc.Remove(ctx, p.ID, "admin", "spam"))

	var logs []model.ModerationLog
	require.NoError(t, db.Where("community_id = ? AND action = ?", c.ID, model.ModActionRemovePost).Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, "spam", logs[0].Reason)
}

func TestPostListRejectsBadSortAndCursor(t *testing.T) {
	db := setupTestDB(t)
	svc, _, c := newPostFixture(t, db)
	ctx := context.Background()

	_, err := svc.List(ctx, c.ID, "best", "", 10)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.List(ctx, c.ID, "new", "!!!", 10)
	require.ErrorIs(t, err, ErrInvalidInput)
}
