package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

type createEventRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=256"`
	Description string     `json:"description" binding:"max=10000"`
	Location    string     `json:"location" binding:"max=256"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
}

// CreateEvent 创建活动（仅成员）
// @Summary 创建活动
// @Tags 活动
// @Accept json
// @Produce json
// @Param id path string true "社区ID"
// @Param request body createEventRequest true "活动信息"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	e, err := h.events.Create(c.Request.Context(), c.Param("id"), middleware.UserID(c),
		req.Title, req.Description, req.Location, req.StartsAt, req.EndsAt)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, e)
}

// ListUpcomingEvents 未开始的活动，按开始时间升序
// @Summary 活动列表
// @Tags 活动
// @Param id path string true "社区ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/events [get]
func (h *Handler) ListUpcomingEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := h.events.ListUpcoming(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// GetEvent 活动详情
// @Summary 活动详情
// @Tags 活动
// @Param id path string true "活动ID"
// @Success 200 {object} response.Response
// @Router /api/v1/events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	e, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, e)
}

type rsvpRequest struct {
	Status string `json:"status" binding:"required,oneof=going maybe declined"`
}

// Rsvp 报名/改报名
// @Summary 活动报名
// @Tags 活动
// @Param id path string true "活动ID"
// @Param request body rsvpRequest true "报名状态"
// @Success 200 {object} response.Response
// @Router /api/v1/events/{id}/rsvp [post]
func (h *Handler) Rsvp(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rv, err := h.events.Rsvp(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, rv)
}

// ListRsvps 报名列表
// @Summary 报名列表
// @Tags 活动
// @Param id path string true "活动ID"
// @Success 200 {object} response.Response
// @Router /api/v1/events/{id}/rsvps [get]
func (h *Handler) ListRsvps(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := h.events.ListRsvps(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
