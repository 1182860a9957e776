package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
	"arts-admin/backend/internal/repository"
)

// ── 订单模块业务错误 ──

var (
	ErrOrderNotFound       = errors.New("订单不存在")
	ErrOrderStudentInvalid = errors.New("学员不存在")
	ErrOrderCourseInvalid  = errors.New("课程不存在")
	ErrOrderDuplicate      = errors.New("该学员已报名此课程")
	ErrOrderPayTimeInvalid = errors.New("支付时间格式无效")
)

// orderTimeLayout 支付时间入参格式
const orderTimeLayout = "2006-01-02 15:04"

// OrderService 报名订单业务接口
type OrderService interface {
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.OrderResponse, error)
	List(ctx context.Context, req *dto.OrderListRequest) ([]dto.OrderResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOrderService 创建 OrderService 实例
func NewOrderService(repo *repository.Repository, logger *zap.Logger) OrderService {
	return &orderService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────
//
// 缺省规则：amount 取课程当前价格；pay_time 取当前时间；status 取 paid。
// 重复报名校验：同（学员, 课程）已存在 paid 订单时拒绝创建。

func (s *orderService) Create(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	student, course, err := s.resolveRefs(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}

	// 重复报名校验（仅创建时；更新不校验）
	if _, err := s.repo.Order.GetPaidByStudentAndCourse(ctx, req.StudentID, req.CourseID); err == nil {
		return nil, ErrOrderDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询已有订单失败", zap.Error(err))
		return nil, err
	}

	amount := course.Price
	if req.Amount != nil {
		amount = *req.Amount
	}

	status := string(req.Status)
	if status == "" {
		status = model.OrderStatusPaid
	}

	payTime := time.Now()
	if req.PayTime != "" {
		payTime, err = time.Parse(orderTimeLayout, req.PayTime)
		if err != nil {
			return nil, ErrOrderPayTimeInvalid
		}
	}

	order := &model.Order{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Amount:    amount,
		Status:    status,
		PayTime:   &payTime,
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.logger.Error("创建订单失败", zap.Error(err))
		return nil, err
	}

	studentName := ""
	if student.User != nil {
		studentName = student.User.Name
	}

	return &dto.CreateOrderResponse{
		ID:          order.OrderID,
		StudentName: studentName,
		CourseTitle: course.Title,
		Amount:      order.Amount,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *orderService) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := s.repo.Order.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("查询订单失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toOrderResponse(order), nil
}

// ────────────────────── List ──────────────────────

func (s *orderService) List(ctx context.Context, req *dto.OrderListRequest) ([]dto.OrderResponse, int64, error) {
	filter := repository.OrderFilter{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    req.Status,
	}

	orders, total, err := s.repo.Order.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询订单列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, *s.toOrderResponse(&orders[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *orderService) Update(ctx context.Context, id string, req *dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.repo.Order.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("查询订单失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if _, _, err := s.resolveRefs(ctx, req.StudentID, req.CourseID); err != nil {
		return nil, err
	}

	order.StudentID = req.StudentID
	order.CourseID = req.CourseID
	order.Amount = req.Amount
	order.Status = string(req.Status)

	if req.PayTime != "" {
		payTime, err := time.Parse(orderTimeLayout, req.PayTime)
		if err != nil {
			return nil, ErrOrderPayTimeInvalid
		}
		order.PayTime = &payTime
	} else {
		order.PayTime = nil
	}

	if err := s.repo.Order.Update(ctx, order); err != nil {
		s.logger.Error("更新订单失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

// Delete 无条件删除：订单在本模型中没有依赖方
func (s *orderService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Order.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("查询订单失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Order.Delete(ctx, id); err != nil {
		s.logger.Error("删除订单失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// resolveRefs 校验学员与课程引用，均需存在
func (s *orderService) resolveRefs(ctx context.Context, studentID, courseID string) (*model.Student, *model.Course, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderStudentInvalid
		}
		s.logger.Error("查询学员失败", zap.String("id", studentID), zap.Error(err))
		return nil, nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderCourseInvalid
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, nil, err
	}

	return student, course, nil
}

func (s *orderService) toOrderResponse(order *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:        order.OrderID,
		StudentID: order.StudentID,
		CourseID:  order.CourseID,
		Amount:    order.Amount,
		Status:    order.Status,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
	}

	if order.Student != nil && order.Student.User != nil {
		resp.StudentName = order.Student.User.Name
	}
	if order.Course != nil {
		resp.CourseTitle = order.Course.Title
	}
	if order.PayTime != nil {
		resp.PayTime = order.PayTime.Format(orderTimeLayout)
	}

	return resp
}
