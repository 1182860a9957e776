package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/service"
	"arts-admin/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	exportSvc service.ExportService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, exportSvc service.ExportService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, exportSvc: exportSvc}
}

// Create 创建课程（可附带初始课节）
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, result)
}

// GetByID 课程详情（含课节与授课教师）
// GET /api/v1/courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	result, err := h.courseSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// List 课程列表
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	list, total, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 更新课程（标量字段 + 课节全量对账）
// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除课程（课节级联删除）
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// ExportCalendar 导出课程课节日历（iCalendar 格式）
// GET /api/v1/courses/:id/calendar.ics
func (h *CourseHandler) ExportCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.CourseCalendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportCourseNotFound):
			response.NotFound(c, response.CodeCourseNotFound, "课程不存在")
		case errors.Is(err, service.ErrExportNoLessons):
			response.BadRequest(c, response.CodeInvalidParams, "课程暂无课节")
		default:
			response.InternalError(c)
		}
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, response.CodeCourseNotFound, "课程不存在")
	case errors.Is(err, service.ErrCourseTeacherInvalid):
		response.BadRequest(c, response.CodeTeacherInvalid, "授课教师不存在")
	case errors.Is(err, service.ErrLessonNotFound):
		response.BadRequest(c, response.CodeLessonNotFound, err.Error())
	case errors.Is(err, service.ErrLessonHasLeaves):
		response.BadRequest(c, response.CodeLessonHasLeaves, err.Error())
	case errors.Is(err, service.ErrLessonTimeInvalid), errors.Is(err, service.ErrLessonTimeRange):
		response.BadRequest(c, response.CodeLessonBadTime, err.Error())
	default:
		response.InternalError(c)
	}
}
