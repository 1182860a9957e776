package service

import (
	"go.uber.org/zap"

	"arts-admin/backend/config"
	"arts-admin/backend/internal/repository"
	"arts-admin/backend/pkg/jwt"
	"arts-admin/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Course  CourseService
	Order   OrderService
	Student StudentService
	Teacher TeacherService
	Leave   LeaveService
	Stats   StatsService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Course:  NewCourseService(repo, logger),
		Order:   NewOrderService(repo, logger),
		Student: NewStudentService(repo, logger),
		Teacher: NewTeacherService(repo, logger),
		Leave:   NewLeaveService(repo, logger),
		Stats:   NewStatsService(repo, logger),
		Export:  NewExportService(repo, logger),
	}
}
