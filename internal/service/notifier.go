package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/community-hub/internal/model"
	"github.com/d60-Lab/community-hub/internal/repository"
	"github.com/d60-Lab/community-hub/pkg/logger"
)

// unreadCountKey 未读数缓存键，写通知/已读时失效
func unreadCountKey(userID string) string {
	return fmt.Sprintf("notify:unread:%s", userID)
}

// Notifier 本地异步通知投递器。请求路径只入队，
// worker 落库并让未读数缓存失效；队列满则丢弃并告警。
type Notifier struct {
	repo    repository.NotificationRepository
	rdb     *redis.Client
	ch      chan *model.Notification
	limiter *rate.Limiter // 平滑落库写入
}

func NewNotifier(repo repository.NotificationRepository, rdb *redis.Client, queueSize int, writesPerSec float64) *Notifier {
	if queueSize <= 0 {
		queueSize = 10000
	}
	if writesPerSec <= 0 {
		writesPerSec = 200
	}
	return &Notifier{
		repo:    repo,
		rdb:     rdb,
		ch:      make(chan *model.Notification, queueSize),
		limiter: rate.NewLimiter(rate.Limit(writesPerSec), int(writesPerSec)),
	}
}

// Start 启动 worker，返回停止函数
func (n *Notifier) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case item := <-n.ch:
					n.deliver(item)
				case <-stopCh:
					// 停止前把已入队的投递完
					for {
						select {
						case item := <-n.ch:
							n.deliver(item)
						default:
							return
						}
					}
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		// 等待队列自然排空一小段时间
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(n.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

func (n *Notifier) deliver(item *model.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = n.limiter.Wait(ctx)
	if err := n.repo.Create(ctx, item); err != nil {
		logger.Warn("notification delivery failed",
			zap.String("recipient", item.RecipientID), zap.Error(err))
		return
	}
	if n.rdb != nil {
		_ = n.rdb.Del(ctx, unreadCountKey(item.RecipientID)).Err()
	}
}

// Enqueue 非阻塞入队；自己给自己的通知直接丢弃
func (n *Notifier) Enqueue(item *model.Notification) {
	if item == nil || item.RecipientID == "" || item.RecipientID == item.ActorID {
		return
	}
	select {
	case n.ch <- item:
	default:
		logger.Warn("notifier queue full, drop",
			zap.String("recipient", item.RecipientID), zap.String("type", item.Type))
	}
}

// QueueLen 当前队列长度（采样值）
func (n *Notifier) QueueLen() int { return len(n.ch) }
