package dto

// ── 学员模块 DTO ──

// GuardianSpec 监护人信息
type GuardianSpec struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Phone    string `json:"phone"    binding:"required,len=11"`
	Relation string `json:"relation" binding:"required,max=20"` // 父亲 | 母亲 | 本人 等
}

// CreateStudentRequest 创建学员请求
type CreateStudentRequest struct {
	Name      string        `json:"name"      binding:"required,max=100"`
	Phone     string        `json:"phone"     binding:"required,len=11"`
	Email     string        `json:"email"     binding:"omitempty,email"`
	Gender    int           `json:"gender"    binding:"omitempty,oneof=0 1 2"`
	Birthday  string        `json:"birthday"  binding:"omitempty"` // 格式 2006-01-02
	Guardian1 *GuardianSpec `json:"guardian1" binding:"omitempty"`
	Guardian2 *GuardianSpec `json:"guardian2" binding:"omitempty"`
}

// StudentListRequest 学员列表查询参数
type StudentListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// StudentResponse 学员详情响应
type StudentResponse struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email,omitempty"`
	Gender            int    `json:"gender"`
	Birthday          string `json:"birthday,omitempty"`
	Guardian1Name     string `json:"guardian1_name,omitempty"`
	Guardian1Phone    string `json:"guardian1_phone,omitempty"`
	Guardian1Relation string `json:"guardian1_relation,omitempty"`
	Guardian2Name     string `json:"guardian2_name,omitempty"`
	Guardian2Phone    string `json:"guardian2_phone,omitempty"`
	Guardian2Relation string `json:"guardian2_relation,omitempty"`
	CreatedAt         string `json:"created_at"`
}

// ── 批量导入 ──

// ImportRowIssue 导入行问题详情（跳过或失败）
type ImportRowIssue struct {
	Row    int    `json:"row"` // Excel 行号（从 1 起，含表头）
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// ImportStudentResponse 批量导入汇总结果
type ImportStudentResponse struct {
	Total    int              `json:"total"`    // 候选行数（通过行级校验）
	Imported int              `json:"imported"` // 成功创建
	Skipped  []ImportRowIssue `json:"skipped,omitempty"`
	Failed   []ImportRowIssue `json:"failed,omitempty"`
}

// ── 导入进度事件（流式推送）──

// 事件类型取值
const (
	ImportEventInit     = "init"
	ImportEventProgress = "progress"
	ImportEventComplete = "complete"
	ImportEventError    = "error"
)

// ImportEvent 导入进度事件
// Handler 以分块 NDJSON 逐条写出，前端据此渲染实时进度条
type ImportEvent struct {
	Type      string                 `json:"type"` // init | progress | complete | error
	Total     int                    `json:"total,omitempty"`
	Processed int                    `json:"processed,omitempty"`
	Name      string                 `json:"name,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Result    *ImportStudentResponse `json:"result,omitempty"`
}
