package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/service"
	"arts-admin/backend/pkg/response"
)

// LeaveHandler 请假模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// Create 创建请假记录
// POST /api/v1/leaves
func (h *LeaveHandler) Create(c *gin.Context) {
	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	result, err := h.leaveSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeaveStudentInvalid):
			response.BadRequest(c, response.CodeLeaveRefBad, "学员不存在")
		case errors.Is(err, service.ErrLeaveLessonInvalid):
			response.BadRequest(c, response.CodeLeaveRefBad, "课节不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 请假记录列表
// GET /api/v1/leaves
func (h *LeaveHandler) List(c *gin.Context) {
	var req dto.LeaveListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	list, total, err := h.leaveSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}
