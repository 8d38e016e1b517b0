package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

// ModerationLog 审核日志（仅版主），游标分页
// @Summary 审核日志
// @Tags 审核
// @Param id path string true "社区ID"
// @Param cursor query string false "游标"
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/moderation-log [get]
func (h *Handler) ModerationLog(c *gin.Context) {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, err := h.moderation.List(c.Request.Context(), c.Param("id"), middleware.UserID(c), c.Query("cursor"), pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, page)
}
