package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

// ActivityFeed 跨社区活动流（帖子+活动，时间降序归并）
// @Summary 活动流
// @Tags 活动流
// @Param cursor query string false "游标"
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) ActivityFeed(c *gin.Context) {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, err := h.feed.Feed(c.Request.Context(), middleware.UserID(c), c.Query("cursor"), pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, page)
}
