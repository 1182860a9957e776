package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/service"
	"arts-admin/backend/pkg/response"
)

// TeacherHandler 教师模块 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// Create 创建教师
// POST /api/v1/teachers
func (h *TeacherHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.Created(c, result)
}

// GetByID 教师详情
// GET /api/v1/teachers/:id
func (h *TeacherHandler) GetByID(c *gin.Context) {
	result, err := h.teacherSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, result)
}

// List 教师列表
// GET /api/v1/teachers
func (h *TeacherHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	list, total, err := h.teacherSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Delete 删除教师（档案与账号一并删除）
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	if err := h.teacherSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TeacherHandler) handleTeacherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, response.CodeUserNotFound, "教师不存在")
	case errors.Is(err, service.ErrTeacherPhoneExists):
		response.BadRequest(c, response.CodePhoneTaken, "手机号已被注册")
	case errors.Is(err, service.ErrTeacherHasCourses):
		response.BadRequest(c, response.CodeTeacherHasCourses, err.Error())
	default:
		response.InternalError(c)
	}
}
