package dto

// ── 订单模块 DTO ──

// CreateOrderRequest 创建报名订单请求
// amount 缺省取课程当前价格；pay_time 缺省取当前时间
type CreateOrderRequest struct {
	StudentID string      `json:"student_id" binding:"required,uuid"`
	CourseID  string      `json:"course_id"  binding:"required,uuid"`
	Amount    *int64      `json:"amount"     binding:"omitempty,min=0"` // 单位：分
	Status    OrderStatus `json:"status"     binding:"omitempty"`
	PayTime   string      `json:"pay_time"   binding:"omitempty"` // 格式 2006-01-02 15:04
}

// UpdateOrderRequest 更新订单请求
type UpdateOrderRequest struct {
	StudentID string      `json:"student_id" binding:"required,uuid"`
	CourseID  string      `json:"course_id"  binding:"required,uuid"`
	Amount    int64       `json:"amount"     binding:"min=0"`
	Status    OrderStatus `json:"status"     binding:"required"`
	PayTime   string      `json:"pay_time"   binding:"omitempty"`
}

// OrderListRequest 订单列表查询参数
type OrderListRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	CourseID  string `form:"course_id"  binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=unpaid paid"`
}

// CreateOrderResponse 创建订单响应
type CreateOrderResponse struct {
	ID          string `json:"id"`
	StudentName string `json:"student_name"`
	CourseTitle string `json:"course_title"`
	Amount      int64  `json:"amount"`
}

// OrderResponse 订单详情响应
type OrderResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	CourseID    string `json:"course_id"`
	CourseTitle string `json:"course_title,omitempty"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	PayTime     string `json:"pay_time,omitempty"`
	CreatedAt   string `json:"created_at"`
}
