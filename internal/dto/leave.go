package dto

// ── 请假模块 DTO ──

// CreateLeaveRequest 创建请假记录请求
type CreateLeaveRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	LessonID  string `json:"lesson_id"  binding:"required,uuid"`
	Reason    string `json:"reason"     binding:"omitempty,max=500"`
}

// LeaveListRequest 请假记录查询参数
type LeaveListRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	LessonID  string `form:"lesson_id"  binding:"omitempty,uuid"`
}

// LeaveResponse 请假记录响应
type LeaveResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	LessonID    string `json:"lesson_id"`
	LessonTitle string `json:"lesson_title,omitempty"`
	Reason      string `json:"reason,omitempty"`
	CreatedAt   string `json:"created_at"`
}
