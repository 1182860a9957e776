package dto

// ── 课程模块 DTO ──

// LessonSpec 课节提交项
// ID 为空代表新增课节；非空代表更新既有课节
type LessonSpec struct {
	ID        string       `json:"id"         binding:"omitempty,uuid"`
	Title     string       `json:"title"      binding:"required,max=100"`
	Subtitle  string       `json:"subtitle"   binding:"omitempty,max=200"`
	StartTime string       `json:"start_time" binding:"required"` // 格式 2006-01-02 15:04
	EndTime   string       `json:"end_time"   binding:"required"`
	Status    LessonStatus `json:"status"     binding:"omitempty"`
}

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Title     string       `json:"title"      binding:"required,max=100"`
	Subtitle  string       `json:"subtitle"   binding:"omitempty,max=200"`
	Category  Category     `json:"category"   binding:"required"`
	Year      int          `json:"year"       binding:"required,min=2000,max=2100"`
	Term      Term         `json:"term"       binding:"required"`
	Price     int64        `json:"price"      binding:"min=0"` // 单位：分
	TeacherID string       `json:"teacher_id" binding:"required,uuid"`
	Address   string       `json:"address"    binding:"omitempty,max=200"`
	Status    CourseStatus `json:"status"     binding:"omitempty"`
	Lessons   []LessonSpec `json:"lessons"    binding:"omitempty,dive"`
}

// UpdateCourseRequest 更新课程请求（课程标量字段 + 目标课节全量列表）
// 课节列表与库内现状做差异对账：缺席者删除、带 ID 者更新、无 ID 者新增
type UpdateCourseRequest struct {
	Title     string       `json:"title"      binding:"required,max=100"`
	Subtitle  string       `json:"subtitle"   binding:"omitempty,max=200"`
	Category  Category     `json:"category"   binding:"required"`
	Year      int          `json:"year"       binding:"required,min=2000,max=2100"`
	Term      Term         `json:"term"       binding:"required"`
	Price     int64        `json:"price"      binding:"min=0"`
	TeacherID string       `json:"teacher_id" binding:"required,uuid"`
	Address   string       `json:"address"    binding:"omitempty,max=200"`
	Status    CourseStatus `json:"status"     binding:"omitempty"`
	Lessons   []LessonSpec `json:"lessons"    binding:"omitempty,dive"`
}

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	PaginationRequest
	Category string `form:"category" binding:"omitempty,oneof=dance painting speech music"`
	Status   string `form:"status"   binding:"omitempty,oneof=draft open completed archived"`
	Year     int    `form:"year"     binding:"omitempty,min=2000,max=2100"`
	Keyword  string `form:"keyword"  binding:"omitempty,max=50"`
}

// CourseBriefResponse 课程简要响应（创建/更新成功后返回）
type CourseBriefResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// LessonResponse 课节信息响应
type LessonResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// CourseResponse 课程详情响应
type CourseResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Subtitle    string           `json:"subtitle,omitempty"`
	Category    string           `json:"category"`
	Year        int              `json:"year"`
	Term        string           `json:"term"`
	Price       int64            `json:"price"`
	TeacherID   string           `json:"teacher_id"`
	TeacherName string           `json:"teacher_name,omitempty"`
	Address     string           `json:"address,omitempty"`
	Status      string           `json:"status"`
	Lessons     []LessonResponse `json:"lessons,omitempty"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}
