package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

func newEventService(db *gorm.DB) EventService {
	community := NewCommunityService(
		repository.NewCommunityRepository(db),
		repository.NewMembershipRepository(db),
	)
	return NewEventService(db, repository.NewEventRepository(db), community)
}

func attendeeCount(t *testing.T, db *gorm.DB, eventID string) int64 {
	var e model.Event
	require.NoError(t, db.Where("id = ?", eventID).First(&e).Error)
	return e.AttendeeCount
}

func TestRsvpTransitionsMaintainAttendeeCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newEventService(db)
	ctx := context.Background()
	seedMembership(t, db, "c1", "alice")
	seedMembership(t, db, "c1", "bob")

	e, err := svc.Create(ctx, "c1", "alice", "聚会", "", "线上", time.Now().Add(48*time.Hour), nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), attendeeCount(t, db, e.ID))

	// going -> maybe -> going -> declined，计数只随 going 增减
	rv, err := svc.Rsvp(ctx, e.ID, "bob", model.RsvpGoing)
	require.NoError(t, err)
	require.Equal(t, model.RsvpGoing, rv.Status)
	require.Equal(t, int64(1), attendeeCount(t, db, e.ID))

	_, err = svc.Rsvp(ctx, e.ID, "bob", model.RsvpMaybe)
	require.NoError(t, err)
	require.Equal(t, int64(0), attendeeCount(t, db, e.ID))

	_, err = svc.Rsvp(ctx, e.ID, "bob", model.RsvpGoing)
	require.NoError(t, err)
	require.Equal(t, int64(1), attendeeCount(t, db, e.ID))

	_, err = svc.Rsvp(ctx, e.ID, "bob", model.RsvpDeclined)
	require.NoError(t, err)
	require.Equal(t, int64(0), attendeeCount(t, db, e.ID))

	// 重复提交同状态：幂等
	_, err = svc.Rsvp(ctx, e.ID, "bob", model.RsvpDeclined)
	require.NoError(t, err)
	require.Equal(t, int64(0), attendeeCount(t, db, e.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.Rsvp{}).
		Where("event_id = ? AND user_id = ?", e.ID, "bob").Count(&cnt).Error)
	require.Equal(t, int64(1), cnt)
}

func TestRsvpValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newEventService(db)
	ctx := context.Background()
	seedMembership(t, db, "c1", "alice")

	e, err := svc.Create(ctx, "c1", "alice", "聚会", "", "", time.Now().Add(time.Hour), nil)
	require.NoError(t, err)

	_, err = svc.Rsvp(ctx, e.ID, "alice", "banana")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Rsvp(ctx, "missing", "alice", model.RsvpGoing)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Rsvp(ctx, e.ID, "stranger", model.RsvpGoing)
	require.ErrorIs(t, err, ErrNotMember)
}

func TestListUpcomingOrdersByStart(t *testing.T) {
	db := setupTestDB(t)
	svc := newEventService(db)
	ctx := context.Background()
	seedMembership(t, db, "c1", "alice")

	later, err := svc.Create(ctx, "c1", "alice", "later", "", "", time.Now().Add(72*time.Hour), nil)
	require.NoError(t, err)
	sooner, err := svc.Create(ctx, "c1", "alice", "sooner", "", "", time.Now().Add(24*time.Hour), nil)
	require.NoError(t, err)
	// 已开始的活动不出现在 upcoming
	past := &model.Event{ID: "past", CommunityID: "c1", Title: "past", StartsAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(past).Error)

	events, err := svc.ListUpcoming(ctx, "c1", 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, sooner.ID, events[0].ID)
	require.Equal(t, later.ID, events[1].ID)
}
