package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

// ListNotifications 通知列表，游标分页
// @Summary 通知列表
// @Tags 通知
// @Param unread query bool false "仅未读" default(false)
// @Param cursor query string false "游标"
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, err := h.notifications.List(c.Request.Context(), middleware.UserID(c), unreadOnly, c.Query("cursor"), pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, page)
}

// MarkNotificationRead 标记单条已读
// @Summary 标记已读
// @Tags 通知
// @Param id path string true "通知ID"
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/{id}/read [post]
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllNotificationsRead 全部已读
// @Summary 全部标记已读
// @Tags 通知
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/read-all [post]
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}

// UnreadCount 未读数（redis 短缓存）
// @Summary 未读通知数
// @Tags 通知
// @Success 200 {object} response.Response
// @Router /api/v1/notifications/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.notifications.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"unread": n})
}
