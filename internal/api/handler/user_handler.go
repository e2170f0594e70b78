package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-interaction/internal/service"
	"github.com/d60-Lab/social-interaction/pkg/response"
)

// Visit 记录一次主页访问
// @Summary 记录访问
// @Tags 互动
// @Accept json
// @Produce json
// @Param request body service.VisitRequest true "访问信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users/visit [post]
func (h *Handler) Visit(c *gin.Context) {
	var req service.VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.userService.RecordVisit(c.Request.Context(), &req); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// Like 点赞/取消点赞（同一请求重复提交即切换状态）
// @Summary 点赞切换
// @Tags 互动
// @Accept json
// @Produce json
// @Param request body service.LikeRequest true "点赞信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/users/like [post]
func (h *Handler) Like(c *gin.Context) {
	var req service.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.userService.RecordLike(c.Request.Context(), &req); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetVisitors 查询近一个月访客
// @Summary 访客列表（每访客每天最多一条，按时间倒序）
// @Tags 互动
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=[]service.VisitorDTO}
// @Failure 400 {object} response.Response
// @Router /api/v1/users/{id}/visitors [get]
func (h *Handler) GetVisitors(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	visitors, err := h.userService.GetLastMonthVisitors(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, visitors)
}
