package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/service"
	"github.com/d60-Lab/community-hub/pkg/response"
)

// 上下文键
const CtxUserID = "user_id"

// Auth 解析 Bearer token 并注入 user_id，失败直接 401
func Auth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "missing token")
			c.Abort()
			return
		}
		userID, err := auth.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// UserID 读取已注入的用户 id
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
