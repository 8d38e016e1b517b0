package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

type createPostRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=256"`
	Body      string `json:"body" binding:"required"`
	BodyPlain string `json:"body_plain"`
}

// CreatePost 发帖（仅成员）
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param id path string true "社区ID"
// @Param request body createPostRequest true "帖子内容"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.posts.Create(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Title, req.Body, req.BodyPlain)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, p)
}

type listPostsQuery struct {
	Sort     string `form:"sort" binding:"omitempty,sortorder"`
	Cursor   string `form:"cursor"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=50"`
}

// ListPosts 帖子列表，hot/new/top 游标分页；首页附带置顶帖
// @Summary 帖子列表
// @Tags 帖子
// @Param id path string true "社区ID"
// @Param sort query string false "排序 hot/new/top" default(new)
// @Param cursor query string false "游标"
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	communityID := c.Param("id")
	page, err := h.posts.List(c.Request.Context(), communityID, q.Sort, q.Cursor, q.PageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	out := gin.H{"items": page.Items, "next_cursor": page.NextCursor, "has_more": page.HasMore}
	if q.Cursor == "" {
		pinned, err := h.posts.ListPinned(c.Request.Context(), communityID)
		if err != nil {
			respondErr(c, err)
			return
		}
		out["pinned"] = pinned
	}
	response.Success(c, out)
}

// GetPost 帖子详情（墓碑帖返回状态但无正文）
// @Summary 帖子详情
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	p, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, p)
}

type editPostRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=256"`
	Body      string `json:"body" binding:"required"`
	BodyPlain string `json:"body_plain"`
}

// EditPost 作者改帖
// @Summary 编辑帖子
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Param request body editPostRequest true "新内容"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id} [put]
func (h *Handler) EditPost(c *gin.Context) {
	var req editPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.posts.Edit(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Title, req.Body, req.BodyPlain)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, p)
}

type removePostRequest struct {
	Reason string `json:"reason" binding:"max=512"`
}

// RemovePost 软删除（作者或版主），落审核日志
// @Summary 删除帖子
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) RemovePost(c *gin.Context) {
	var req removePostRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.posts.Remove(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Reason); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}

// PinPost 置顶/取消置顶（版主）
// @Summary 置顶帖子
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Param pinned query bool false "是否置顶" default(true)
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/pin [post]
func (h *Handler) PinPost(c *gin.Context) {
	pinned, err := strconv.ParseBool(c.DefaultQuery("pinned", "true"))
	if err != nil {
		response.BadRequest(c, "pinned must be a bool")
		return
	}
	if err := h.posts.Pin(c.Request.Context(), c.Param("id"), middleware.UserID(c), pinned); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}
