package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
)

// EventService 活动与报名
type EventService interface {
	Create(ctx context.Context, communityID, creatorID, title, description, location string, startsAt time.Time, endsAt *time.Time) (*model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	ListUpcoming(ctx context.Context, communityID string, page, pageSize int) ([]*model.Event, error)
	// Rsvp going/maybe/declined，(event,user) 单行 upsert，
	// attendee_count 与 RSVP 行同事务维护
	Rsvp(ctx context.Context, eventID, userID, status string) (*model.Rsvp, error)
	ListRsvps(ctx context.Context, eventID string, page, pageSize int) ([]*model.Rsvp, error)
}

type eventService struct {
	db        *gorm.DB
	eventRepo repository.EventRepository
	community CommunityService
}

func NewEventService(db *gorm.DB, eventRepo repository.EventRepository, community CommunityService) EventService {
	return &eventService{db: db, eventRepo: eventRepo, community: community}
}

func (s *eventService) Create(ctx context.Context, communityID, creatorID, title, description, location string, startsAt time.Time, endsAt *time.Time) (*model.Event, error) {
	if _, err := s.community.RoleOf(ctx, communityID, creatorID); err != nil {
		return nil, err
	}
	if startsAt.IsZero() {
		return nil, ErrInvalidInput
	}
	e := &model.Event{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return e, err
}

func (s *eventService) ListUpcoming(ctx context.Context, communityID string, page, pageSize int) ([]*model.Event, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.eventRepo.ListUpcoming(ctx, communityID, time.Now(), (page-1)*pageSize, pageSize)
}

func (s *eventService) Rsvp(ctx context.Context, eventID, userID, status string) (*model.Rsvp, error) {
	switch status {
	case model.RsvpGoing, model.RsvpMaybe, model.RsvpDeclined:
	default:
		return nil, ErrInvalidInput
	}
	e, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.community.RoleOf(ctx, e.CommunityID, userID); err != nil {
		return nil, err
	}

	var out *model.Rsvp
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Rsvp
		found := true
		err := lockForUpdate(tx).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			First(&cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
		} else if err != nil {
			return err
		}

		// going 计数增量
		delta := int64(0)
		if found {
			if cur.Status == status {
				out = &cur
				return nil
			}
			if cur.Status == model.RsvpGoing {
				delta--
			}
			if status == model.RsvpGoing {
				delta++
			}
			if err := tx.Model(&model.Rsvp{}).Where("id = ?", cur.ID).
				Update("status", status).Error; err != nil {
				return err
			}
			cur.Status = status
			out = &cur
		} else {
			if status == model.RsvpGoing {
				delta++
			}
			rv := model.Rsvp{ID: uuid.New().String(), EventID: eventID, UserID: userID, Status: status}
			if err := tx.Create(&rv).Error; err != nil {
				return err
			}
			out = &rv
		}

		if delta != 0 {
			return tx.Model(&model.Event{}).Where("id = ?", eventID).
				UpdateColumn("attendee_count", gorm.Expr("attendee_count + ?", delta)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *eventService) ListRsvps(ctx context.Context, eventID string, page, pageSize int) ([]*model.Rsvp, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.eventRepo.ListRsvps(ctx, eventID, (page-1)*pageSize, pageSize)
}
