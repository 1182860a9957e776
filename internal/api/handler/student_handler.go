package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/service"
	"arts-admin/backend/pkg/response"
)

// StudentHandler 学员模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	exportSvc  service.ExportService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, exportSvc service.ExportService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, exportSvc: exportSvc}
}

// Create 创建学员
// POST /api/v1/students
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	result, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, result)
}

// GetByID 学员详情
// GET /api/v1/students/:id
func (h *StudentHandler) GetByID(c *gin.Context) {
	result, err := h.studentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, result)
}

// List 学员列表（支持姓名/手机号关键字）
// GET /api/v1/students
func (h *StudentHandler) List(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	list, total, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Delete 删除学员（档案与账号一并删除）
// DELETE /api/v1/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, nil)
}

// Import 批量导入学员（Excel 上传）
// POST /api/v1/students/import
// 响应为分块 NDJSON 事件流：init → progress×N → complete；解析失败时为单条 error
func (h *StudentHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "缺少上传文件（字段名 file）")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, response.CodeImportFailed, "无法读取上传文件")
		return
	}
	defer file.Close()

	rows, err := h.studentSvc.ParseImportFile(file)
	if err != nil {
		// 解析阶段失败仍是普通 JSON 响应，尚未开始流式输出
		switch {
		case errors.Is(err, service.ErrImportBadFile),
			errors.Is(err, service.ErrImportBadHeader),
			errors.Is(err, service.ErrImportNoData),
			errors.Is(err, service.ErrImportTooLarge):
			response.BadRequest(c, response.CodeImportFailed, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	// 进入流式阶段：逐事件写出 NDJSON 并即时 Flush
	c.Header("Content-Type", "application/x-ndjson; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	emit := func(event dto.ImportEvent) {
		_ = enc.Encode(event)
		c.Writer.Flush()
	}

	result, err := h.studentSvc.ImportStudents(c.Request.Context(), rows, emit)
	if err != nil {
		emit(dto.ImportEvent{Type: dto.ImportEventError, Message: "导入中断"})
		return
	}

	emit(dto.ImportEvent{Type: dto.ImportEventComplete, Total: result.Total, Result: result})
}

// DownloadTemplate 下载学员导入模板
// GET /api/v1/students/template
func (h *StudentHandler) DownloadTemplate(c *gin.Context) {
	buf, filename, err := h.exportSvc.StudentTemplate()
	if err != nil {
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, response.CodeUserNotFound, "学员不存在")
	case errors.Is(err, service.ErrStudentPhoneExists):
		response.BadRequest(c, response.CodePhoneTaken, "手机号已被注册")
	case errors.Is(err, service.ErrBirthdayInvalid):
		response.BadRequest(c, response.CodeInvalidParams, "出生日期格式无效")
	default:
		response.InternalError(c)
	}
}
