package service

import (
	"context"

	"go.uber.org/zap"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/repository"
)

// StatsService 工作台统计业务接口
type StatsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

// Dashboard 汇总工作台统计：各实体总数 + paid 订单按课程类别聚合
func (s *statsService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	studentCount, err := s.repo.Student.Count(ctx)
	if err != nil {
		s.logger.Error("统计学员数失败", zap.Error(err))
		return nil, err
	}
	teacherCount, err := s.repo.Teacher.Count(ctx)
	if err != nil {
		s.logger.Error("统计教师数失败", zap.Error(err))
		return nil, err
	}
	courseCount, err := s.repo.Course.Count(ctx)
	if err != nil {
		s.logger.Error("统计课程数失败", zap.Error(err))
		return nil, err
	}
	orderCount, err := s.repo.Order.Count(ctx)
	if err != nil {
		s.logger.Error("统计订单数失败", zap.Error(err))
		return nil, err
	}
	paidRevenue, err := s.repo.Order.SumPaidAmount(ctx)
	if err != nil {
		s.logger.Error("统计订单金额失败", zap.Error(err))
		return nil, err
	}
	rows, err := s.repo.Order.RevenueByCategory(ctx)
	if err != nil {
		s.logger.Error("按类别聚合订单失败", zap.Error(err))
		return nil, err
	}

	byCategory := make([]dto.CategoryRevenue, 0, len(rows))
	for _, row := range rows {
		byCategory = append(byCategory, dto.CategoryRevenue{
			Category: row.Category,
			Orders:   row.Orders,
			Revenue:  row.Revenue,
		})
	}

	return &dto.DashboardResponse{
		StudentCount: studentCount,
		TeacherCount: teacherCount,
		CourseCount:  courseCount,
		OrderCount:   orderCount,
		PaidRevenue:  paidRevenue,
		ByCategory:   byCategory,
	}, nil
}
