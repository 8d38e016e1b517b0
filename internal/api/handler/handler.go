package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/service"
	"github.com/d60-Lab/community-hub/pkg/response"
)

// Handler 聚合各业务服务
type Handler struct {
	auth          service.AuthService
	community     service.CommunityService
	posts         service.PostService
	comments      service.CommentService
	votes         service.VoteService
	feed          service.FeedService
	events        service.EventService
	documents     service.DocumentService
	notifications service.NotificationService
	moderation    service.ModerationService
}

func New(
	auth service.AuthService,
	community service.CommunityService,
	posts service.PostService,
	comments service.CommentService,
	votes service.VoteService,
	feed service.FeedService,
	events service.EventService,
	documents service.DocumentService,
	notifications service.NotificationService,
	moderation service.ModerationService,
) *Handler {
	return &Handler{
		auth:          auth,
		community:     community,
		posts:         posts,
		comments:      comments,
		votes:         votes,
		feed:          feed,
		events:        events,
		documents:     documents,
		notifications: notifications,
		moderation:    moderation,
	}
}

// respondErr 业务错误到 HTTP 的统一映射；未识别的走 500（含日志+上报）
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "not found")
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotMember):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrBadCredential):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrAlreadyExists):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
