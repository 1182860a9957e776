package model

import "time"

// ── 订单状态 ──

const (
	OrderStatusUnpaid = "unpaid"
	OrderStatusPaid   = "paid"
)

// Order 报名订单表 — 对应 orders
// 同一（学员, 课程）最多一条 paid 状态的有效订单，创建时校验
type Order struct {
	OrderID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"order_id"`
	StudentID string     `gorm:"type:uuid;not null;index"                       json:"student_id"`
	CourseID  string     `gorm:"type:uuid;not null;index"                       json:"course_id"`
	Amount    int64      `gorm:"not null"                                       json:"amount"` // 单位：分
	Status    string     `gorm:"type:varchar(20);not null;default:'unpaid'"     json:"status"` // unpaid | paid
	PayTime   *time.Time `json:"pay_time,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string { return "orders" }
