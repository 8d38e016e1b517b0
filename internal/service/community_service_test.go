package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

func newCommunityService(db *gorm.DB) CommunityService {
	return NewCommunityService(
		repository.NewCommunityRepository(db),
		repository.NewMembershipRepository(db),
	)
}

func memberCount(t *testing.T, db *gorm.DB, id string) int64 {
	var c model.Community
	require.NoError(t, db.Where("id = ?", id).First(&c).Error)
	return c.MemberCount
}

func TestCommunityCreateMakesCreatorAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommunityService(db)
	ctx := context.Background()

	c, err := svc.Create(ctx, "gophers", "围炉夜话", "alice")
	require.NoError(t, err)

	role, err := svc.RoleOf(ctx, c.ID, "alice")
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, role)
	require.Equal(t, int64(1), memberCount(t, db, c.ID))

	_, err = svc.Create(ctx, "gophers", "重名", "bob")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCommunityJoinLeaveIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommunityService(db)
	ctx := context.Background()

	c, err := svc.Create(ctx, "gophers", "", "alice")
	require.NoError(t, err)

	// 重复加入不报错、不重复计数
	require.NoError(t, svc.Join(ctx, c.ID, "bob"))
	require.NoError(t, svc.Join(ctx, c.ID, "bob"))
	require.Equal(t, int64(2), memberCount(t, db, c.ID))

	role, err := svc.RoleOf(ctx, c.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, model.RoleMember, role)

	require.NoError(t, svc.Leave(ctx, c.ID, "bob"))
	require.NoError(t, svc.Leave(ctx, c.ID, "bob"))
	require.Equal(t, int64(1), memberCount(t, db, c.ID))

	_, err = svc.RoleOf(ctx, c.ID, "bob")
	require.ErrorIs(t, err, ErrNotMember)
}

func TestCommunityJoinMissingCommunity(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommunityService(db)
	require.ErrorIs(t, svc.Join(context.Background(), "missing", "bob"), ErrNotFound)
}

func TestRequireModerator(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommunityService(db)
	ctx := context.Background()

	c, err := svc.Create(ctx, "gophers", "", "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, c.ID, "bob"))

	require.NoError(t, svc.RequireModerator(ctx, c.ID, "alice"))
	require.ErrorIs(t, svc.RequireModerator(ctx, c.ID, "bob"), ErrForbidden)
	require.ErrorIs(t, svc.RequireModerator(ctx, c.ID, "stranger"), ErrNotMember)

	require.NoError(t, db.Model(&model.Membership{}).
		Where("community_id = ? AND user_id = ?", c.ID, "bob").
		Update("role", model.RoleModerator).Error)
	require.NoError(t, svc.RequireModerator(ctx, c.ID, "bob"))
}
