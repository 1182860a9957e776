package repository

import (
	"context"

	"gorm.io/gorm"

	"arts-admin/backend/internal/model"
)

// OrderRepository 报名订单数据访问接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// GetPaidByStudentAndCourse 查找某（学员, 课程）的 paid 状态订单，用于重复报名校验
	GetPaidByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter, offset, limit int) ([]model.Order, int64, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	SumPaidAmount(ctx context.Context) (int64, error)
	RevenueByCategory(ctx context.Context) ([]CategoryRevenueRow, error)
}

// OrderFilter 订单列表过滤条件
type OrderFilter struct {
	StudentID string
	CourseID  string
	Status    string
}

// CategoryRevenueRow 按课程类别聚合的订单数与金额
type CategoryRevenueRow struct {
	Category string
	Orders   int64
	Revenue  int64
}

// orderRepo OrderRepository 的 GORM 实现
type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo 创建 OrderRepository 实例
func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Student.User").
		Preload("Course").
		Where("order_id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) GetPaidByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, model.OrderStatusPaid).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter OrderFilter, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.StudentID != "" {
		db = db.Where("student_id = ?", filter.StudentID)
	}
	if filter.CourseID != "" {
		db = db.Where("course_id = ?", filter.CourseID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").Preload("Student.User").
		Preload("Course").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("order_id = ?", order.OrderID).
		Updates(map[string]interface{}{
			"student_id": order.StudentID,
			"course_id":  order.CourseID,
			"amount":     order.Amount,
			"status":     order.Status,
			"pay_time":   order.PayTime,
		}).Error
}

func (r *orderRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&model.Order{}).Error
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	return total, err
}

func (r *orderRepo) SumPaidAmount(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("status = ?", model.OrderStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *orderRepo) RevenueByCategory(ctx context.Context) ([]CategoryRevenueRow, error) {
	var rows []CategoryRevenueRow
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("courses.category AS category, COUNT(*) AS orders, COALESCE(SUM(orders.amount), 0) AS revenue").
		Joins("JOIN courses ON courses.course_id = orders.course_id").
		Where("orders.status = ?", model.OrderStatusPaid).
		Group("courses.category").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}
