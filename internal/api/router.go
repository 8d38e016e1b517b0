package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/community-hub/internal/api/handler"
	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/internal/pagination"
	"github.com/d60-Lab/community-hub/internal/ratelimit"
	"github.com/d60-Lab/community-hub/internal/service"
)

// Limiters 各动作的限流器
type Limiters struct {
	Auth    *ratelimit.Limiter
	Post    *ratelimit.Limiter
	Comment *ratelimit.Limiter
	Vote    *ratelimit.Limiter
}

// NewRouter 组装路由与中间件
func NewRouter(h *handler.Handler, auth service.AuthService, limiters Limiters) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(otelgin.Middleware("community-hub"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth", middleware.RateLimit(limiters.Auth))
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// 公开读路径
	v1.GET("/communities", h.ListCommunities)
	v1.GET("/communities/:id", h.GetCommunity)
	v1.GET("/communities/:id/posts", h.ListPosts)
	v1.GET("/communities/:id/events", h.ListUpcomingEvents)
	v1.GET("/communities/:id/documents", h.ListDocuments)
	v1.GET("/posts/:id", h.GetPost)
	v1.GET("/posts/:id/comments", h.ListComments)
	v1.GET("/posts/:id/thread", h.CommentThread)
	v1.GET("/events/:id", h.GetEvent)
	v1.GET("/events/:id/rsvps", h.ListRsvps)
	v1.GET("/documents/:id", h.GetDocument)
	v1.GET("/documents/:id/versions", h.ListDocumentVersions)
	v1.GET("/documents/:id/versions/:version", h.GetDocumentVersion)

	// 登录态
	authed := v1.Group("", middleware.Auth(auth))
	{
		authed.POST("/communities", h.CreateCommunity)
		authed.POST("/communities/:id/join", h.JoinCommunity)
		authed.POST("/communities/:id/leave", h.LeaveCommunity)
		authed.GET("/communities/:id/stats", h.CommunityStats)
		authed.GET("/communities/:id/moderation-log", h.ModerationLog)

		authed.POST("/communities/:id/posts", middleware.RateLimit(limiters.Post), h.CreatePost)
		authed.PUT("/posts/:id", h.EditPost)
		authed.DELETE("/posts/:id", h.RemovePost)
		authed.POST("/posts/:id/pin", h.PinPost)

		authed.POST("/posts/:id/comments", middleware.RateLimit(limiters.Comment), h.CreateComment)
		authed.DELETE("/comments/:id", h.RemoveComment)

		authed.POST("/votes", middleware.RateLimit(limiters.Vote), h.CastVote)

		authed.GET("/feed", h.ActivityFeed)

		authed.POST("/communities/:id/events", h.CreateEvent)
		authed.POST("/events/:id/rsvp", h.Rsvp)

		authed.POST("/communities/:id/documents", h.CreateDocument)
		authed.PUT("/documents/:id", h.UpdateDocument)

		authed.GET("/notifications", h.ListNotifications)
		authed.GET("/notifications/unread-count", h.UnreadCount)
		authed.POST("/notifications/read-all", h.MarkAllNotificationsRead)
		authed.POST("/notifications/:id/read", h.MarkNotificationRead)
	}

	return r
}

// registerValidators 挂自定义校验（排序参数）
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("sortorder", func(fl validator.FieldLevel) bool {
			_, err := pagination.ParseSort(fl.Field().String())
			return err == nil
		})
	}
}
