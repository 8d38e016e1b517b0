package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/community-hub/internal/api/middleware"
	"github.com/d60-Lab/community-hub/pkg/response"
)

type voteRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=post comment"`
	TargetID   string `json:"target_id" binding:"required"`
	Value      int    `json:"value" binding:"required,oneof=1 -1"`
}

// CastVote 投票：同值再投取消，反值翻转
// @Summary 投票
// @Tags 投票
// @Accept json
// @Produce json
// @Param request body voteRequest true "投票内容"
// @Success 200 {object} response.Response
// @Router /api/v1/votes [post]
func (h *Handler) CastVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.votes.Cast(c.Request.Context(), middleware.UserID(c), req.TargetType, req.TargetID, req.Value)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, res)
}
