package dto

// ── 工作台统计 DTO ──

// CategoryRevenue 按课程类别汇总的订单金额
type CategoryRevenue struct {
	Category string `json:"category"`
	Orders   int64  `json:"orders"`
	Revenue  int64  `json:"revenue"` // 单位：分
}

// DashboardResponse 工作台统计响应
type DashboardResponse struct {
	StudentCount int64             `json:"student_count"`
	TeacherCount int64             `json:"teacher_count"`
	CourseCount  int64             `json:"course_count"`
	OrderCount   int64             `json:"order_count"`
	PaidRevenue  int64             `json:"paid_revenue"` // paid 订单总金额（分）
	ByCategory   []CategoryRevenue `json:"by_category"`
}
