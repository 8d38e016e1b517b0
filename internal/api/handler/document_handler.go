package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

type createDocumentRequest struct {
	Title string `json:"title" binding:"required,min=1,max=256"`
	Body  string `json:"body" binding:"required"`
}

// CreateDocument 建文档（版本 1）
// @Summary 创建文档
// @Tags 文档
// @Param id path string true "社区ID"
// @Param request body createDocumentRequest true "文档内容"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/documents [post]
func (h *Handler) CreateDocument(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	d, err := h.documents.Create(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Title, req.Body)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, d)
}

// ListDocuments 社区文档列表
// @Summary 文档列表
// @Tags 文档
// @Param id path string true "社区ID"
// @Success 200 {object} response.Response
// @Router /api/v1/communities/{id}/documents [get]
func (h *Handler) ListDocuments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := h.documents.List(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

type updateDocumentRequest struct {
	Body string `json:"body" binding:"required"`
}

// UpdateDocument 追加新版本
// @Summary 更新文档
// @Tags 文档
// @Param id path string true "文档ID"
// @Param request body updateDocumentRequest true "新正文"
// @Success 200 {object} response.Response
// @Router /api/v1/documents/{id} [put]
func (h *Handler) UpdateDocument(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	d, err := h.documents.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Body)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, d)
}

// GetDocument 文档 head 版本
// @Summary 文档详情
// @Tags 文档
// @Param id path string true "文档ID"
// @Success 200 {object} response.Response
// @Router /api/v1/documents/{id} [get]
func (h *Handler) GetDocument(c *gin.Context) {
	d, head, err := h.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"document": d, "head": head})
}

// GetDocumentVersion 历史版本
// @Summary 文档历史版本
// @Tags 文档
// @Param id path string true "文档ID"
// @Param version path int true "版本号"
// @Success 200 {object} response.Response
// @Router /api/v1/documents/{id}/versions/{version} [get]
func (h *Handler) GetDocumentVersion(c *gin.Context) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		response.BadRequest(c, "version must be a positive integer")
		return
	}
	v, err := h.documents.GetVersion(c.Request.Context(), c.Param("id"), version)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, v)
}

// ListDocumentVersions 版本列表（降序）
// @Summary 文档版本列表
// @Tags 文档
// @Param id path string true "文档ID"
// @Success 200 {object} response.Response
// @Router /api/v1/documents/{id}/versions [get]
func (h *Handler) ListDocumentVersions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := h.documents.ListVersions(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
