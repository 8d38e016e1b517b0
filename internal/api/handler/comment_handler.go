package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

type createCommentRequest struct {
	Body     string  `json:"body" binding:"required,max=10000"`
	ParentID *string `json:"parent_id"`
}

// CreateComment 评论/回复
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Param id path string true "帖子ID"
// @Param request body createCommentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.comments.Create(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Body, req.ParentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, cm)
}

// ListComments 平铺分页（时间降序）
// @Summary 评论分页
// @Tags 评论
// @Param id path string true "帖子ID"
// @Param cursor query string false "游标"
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, err := h.comments.ListPage(c.Request.Context(), c.Param("id"), c.Query("cursor"), pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, page)
}

// CommentThread 整楼树形结构，深度读时计算
// @Summary 评论树
// @Tags 评论
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/thread [get]
func (h *Handler) CommentThread(c *gin.Context) {
	tree, err := h.comments.Thread(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, tree)
}

type removeCommentRequest struct {
	Reason string `json:"reason" binding:"max=512"`
}

// RemoveComment 删除评论（墓碑保楼层）
// @Summary 删除评论
// @Tags 评论
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response
// @Router /api/v1/comments/{id} [delete]
func (h *Handler) RemoveComment(c *gin.Context) {
	var req removeCommentRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.comments.Remove(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Reason); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}
