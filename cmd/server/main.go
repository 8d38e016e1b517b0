package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/d60-Lab/community-hub/docs"
	"github.com/d60-Lab/community-hub/internal/api"
	"github.com/d60-Lab/community-hub/internal/api/handler"
	"github.com/d60-Lab/community-hub/internal/config"
	"github.com/d60-Lab/community-hub/internal/ratelimit"
	"github.com/d60-Lab/community-hub/internal/repository"
	"github.com/d60-Lab/community-hub/internal/service"
	"github.com/d60-Lab/community-hub/pkg/database"
	"github.com/d60-Lab/community-hub/pkg/logger"
	"github.com/d60-Lab/community-hub/pkg/tracing"
)

// @title community-hub API
// @version 1.0
// @description 社区平台后端：社区/帖子/评论/投票/活动/文档/通知
// @BasePath /api/v1
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, "community-hub", cfg.Trace)
	if err != nil {
		logger.Warn("tracing init failed", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	gin.SetMode(cfg.Server.Mode)

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("open database", zap.Error(err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate database", zap.Error(err))
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	// redis 只承载限流与缓存，连不上也允许启动（fail-open）
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, rate limiting will fail open", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	moderationRepo := repository.NewModerationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	notifier := service.NewNotifier(notificationRepo, rdb, 10000, 200)
	stopNotifier := notifier.Start(2)

	authSvc := service.NewAuthService(userRepo, cfg.Auth)
	communitySvc := service.NewCommunityService(communityRepo, membershipRepo)
	postSvc := service.NewPostService(db, postRepo, communitySvc)
	commentSvc := service.NewCommentService(db, commentRepo, postRepo, communitySvc, notifier)
	voteSvc := service.NewVoteService(db, notifier)
	feedSvc := service.NewFeedService(membershipRepo, postRepo, eventRepo)
	eventSvc := service.NewEventService(db, eventRepo, communitySvc)
	documentSvc := service.NewDocumentService(db, documentRepo, communitySvc)
	notificationSvc := service.NewNotificationService(notificationRepo, rdb)
	moderationSvc := service.NewModerationService(moderationRepo, communitySvc)

	h := handler.New(authSvc, communitySvc, postSvc, commentSvc, voteSvc,
		feedSvc, eventSvc, documentSvc, notificationSvc, moderationSvc)

	limiters := api.Limiters{
		Auth:    ratelimit.New(rdb, "auth", cfg.RateLimit.Auth.Limit, cfg.RateLimit.Auth.Window),
		Post:    ratelimit.New(rdb, "post", cfg.RateLimit.Post.Limit, cfg.RateLimit.Post.Window),
		Comment: ratelimit.New(rdb, "comment", cfg.RateLimit.Comment.Limit, cfg.RateLimit.Comment.Window),
		Vote:    ratelimit.New(rdb, "vote", cfg.RateLimit.Vote.Limit, cfg.RateLimit.Vote.Window),
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(h, authSvc, limiters),
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	_ = stopNotifier(shutdownCtx)
	_ = shutdownTracing(shutdownCtx)
	_ = rdb.Close()
}
