package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

type createCommunityRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=64"`
	Description string `json:"description" binding:"max=1024"`
}

// CreateCommunity 建社区，创建者自动成为管理员
// @Summary 创建社区
// @Tags 社区
// @Accept json
// @Produce json
// @Param request body createCommunityRequest true "社区信息"
// @Success 200 {object} response.Response
// @Router /api/v1/communities [post]
func (h *Handler) CreateCommunity(c *gin.Context) {
	var req createCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	com, err := h.community.Create(c.Request.Context(), req.Name, req.Description, middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, com)
}

// GetCommunity 社区详情
// @Summary 社区详情
// @Tags 社区
// @Param id path string true "社区ID"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id} [get]
func (h *Handler) GetCommunity(c *gin.Context) {
	com, err := h.community.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, com)
}

// ListCommunities 社区列表
// @Summary 社区列表
// @Tags 社区
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/communities [get]
func (h *Handler) ListCommunities(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := h.community.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// JoinCommunity 加入社区（幂等）
// @Summary 加入社区
// @Tags 社区
// @Param id path string true "社区ID"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/join [post]
func (h *Handler) JoinCommunity(c *gin.Context) {
	if err := h.community.Join(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}

// LeaveCommunity 退出社区
// @Summary 退出社区
// @Tags 社区
// @Param id path string true "社区ID"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/leave [post]
func (h *Handler) LeaveCommunity(c *gin.Context) {
	if err := h.community.Leave(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}

// CommunityStats 管理面板统计（版主）
// @Summary 社区统计
// @Tags 社区
// @Param id path string true "社区ID"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/stats [get]
func (h *Handler) CommunityStats(c *gin.Context) {
	stats, err := h.community.Stats(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, stats)
}
