package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

func newCommentService(db *gorm.DB) CommentService {
	community := NewCommunityService(
		repository.NewCommunityRepository(db),
		repository.NewMembershipRepository(db),
	)
	return NewCommentService(db,
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
		community, nil)
}

func TestCommentThreadDepth(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	post := newTestPost(t, db, "c1", 0)
	seedMembership(t, db, "c1", "alice")

	root, err := svc.Create(ctx, post.ID, "alice", "root", nil)
	require.NoError(t, err)
	child, err := svc.Create(ctx, post.ID, "alice", "child", &root.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, post.ID, "alice", "grandchild", &child.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, post.ID, "alice", "sibling", nil)
	require.NoError(t, err)

	roots, err := svc.Thread(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	first := roots[0]
	require.Equal(t, 0, first.Depth)
	require.Len(t, first.Children, 1)
	require.Equal(t, 1, first.Children[0].Depth)
	require.Len(t, first.Children[0].Children, 1)
	require.Equal(t, 2, first.Children[0].Children[0].Depth)
}

func TestCommentCreateBumpsPostCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	post := newTestPost(t, db, "c1", 0)
	seedMembership(t, db, "c1", "alice")

	_, err := svc.Create(ctx, post.ID, "alice", "hi", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, post.ID, "alice", "again", nil)
	require.NoError(t, err)

	var p model.Post
	require.NoError(t, db.Where("id = ?", post.ID).First(&p).Error)
	require.Equal(t, int64(2), p.CommentCount)
}

func TestCommentParentMustBelongToPost(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	p1 := newTestPost(t, db, "c1", 0)
	p2 := newTestPost(t, db, "c1", 0)
	seedMembership(t, db, "c1", "alice")

	parent, err := svc.Create(ctx, p1.ID, "alice", "on p1", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, p2.ID, "alice", "cross-post reply", &parent.ID)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCommentCreateRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	post := newTestPost(t, db, "c1", 0)

	_, err := svc.Create(context.Background(), post.ID, "stranger", "hi", nil)
	require.ErrorIs(t, err, ErrNotMember)
}

func TestCommentRemoveTombstonesAndKeepsThread(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	post := newTestPost(t, db, "c1", 0)
	seedMembership(t, db, "c1", "alice")

	root, err := svc.Create(ctx, post.ID, "alice", "root", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, post.ID, "alice", "child", &root.ID)
	require.NoError(t, err)

	// 作者自删，不需要版主身份
	require.NoError(t, svc.Remove(ctx, root.ID, "alice", ""))

	var got model.Comment
	require.NoError(t, db.Where("id = ?", root.ID).First(&got).Error)
	require.Equal(t, model.CommentStatusRemoved, got.Status)
	require.Empty(t, got.Body)

	// 墓碑保留楼层：子节点仍挂在被删根下
	roots, err := svc.Thread(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)

	// 幂等
	require.NoError(t, svc.Remove(ctx, root.ID, "alice", ""))
}

func TestCommentRemoveByNonAuthorRequiresModerator(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()
	post := newTestPost(t, db, "c1", 0)
	seedMembership(t, db, "c1", "alice")
	seedMembership(t, db, "c1", "bob")

	c, err := svc.Create(ctx, post.ID, "alice", "hi", nil)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Remove(ctx, c.ID, "bob", "spam"), ErrForbidden)

	// 升为版主后可删，且落审核日志
	require.NoError(t, db.Model(&model.Membership{}).
		Where("community_id = ? AND user_id = ?", "c1", "bob").
		Update("role", model.RoleModerator).Error)
	require.NoError(t, svc.Remove(ctx, c.ID, "bob", "spam"))

	var logs []model.ModerationLog
	require.NoError(t, db.Where("community_id = ?", "c1").Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, model.ModActionRemoveComment, logs[0].Action)
	require.Equal(t, "bob", logs[0].ActorID)
	require.Equal(t, "spam", logs[0].Reason)
}
