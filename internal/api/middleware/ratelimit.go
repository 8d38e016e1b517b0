package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/ratelimit"
	"github.com/d60-Lab/community-hub/pkg/response"
)

// RateLimit 滑动窗口限流；登录态按 user_id，匿名按客户端 IP。
// 限流命中给专门的 429 提示，与通用错误区分。
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := UserID(c)
		if identifier == "" {
			identifier = c.ClientIP()
		}
		res := limiter.Check(c.Request.Context(), identifier)
		if !res.Allowed {
			response.TooManyRequests(c, "too many requests, please slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
