package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Name     string `json:"name"     binding:"required,max=100"`
	Phone    string `json:"phone"    binding:"required,len=11"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Gender   int    `json:"gender"   binding:"omitempty,oneof=0 1 2"`
	Position string `json:"position" binding:"omitempty,oneof=full_time part_time"`
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Gender    int    `json:"gender"`
	Position  string `json:"position,omitempty"`
	CreatedAt string `json:"created_at"`
}
