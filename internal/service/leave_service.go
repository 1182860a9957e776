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

// ── 请假模块业务错误 ──

var (
	ErrLeaveStudentInvalid = errors.New("学员不存在")
	ErrLeaveLessonInvalid  = errors.New("课节不存在")
)

// LeaveService 请假业务接口
// 请假记录只增不改；课节对账引擎只读它做删除约束
type LeaveService interface {
	Create(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error)
	List(ctx context.Context, req *dto.LeaveListRequest) ([]dto.LeaveResponse, int64, error)
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService 创建 LeaveService 实例
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

func (s *leaveService) Create(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveStudentInvalid
		}
		s.logger.Error("查询学员失败", zap.String("id", req.StudentID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Lesson.GetByID(ctx, req.LessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveLessonInvalid
		}
		s.logger.Error("查询课节失败", zap.String("id", req.LessonID), zap.Error(err))
		return nil, err
	}

	leave := &model.Leave{
		StudentID: req.StudentID,
		LessonID:  req.LessonID,
		Reason:    req.Reason,
	}

	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("创建请假记录失败", zap.Error(err))
		return nil, err
	}

	return s.toLeaveResponse(leave), nil
}

func (s *leaveService) List(ctx context.Context, req *dto.LeaveListRequest) ([]dto.LeaveResponse, int64, error) {
	leaves, total, err := s.repo.Leave.List(ctx, req.StudentID, req.LessonID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询请假记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		result = append(result, *s.toLeaveResponse(&leaves[i]))
	}

	return result, total, nil
}

func (s *leaveService) toLeaveResponse(leave *model.Leave) *dto.LeaveResponse {
	resp := &dto.LeaveResponse{
		ID:        leave.LeaveID,
		StudentID: leave.StudentID,
		LessonID:  leave.LessonID,
		Reason:    leave.Reason,
		CreatedAt: leave.CreatedAt.Format(time.RFC3339),
	}
	if leave.Student != nil && leave.Student.User != nil {
		resp.StudentName = leave.Student.User.Name
	}
	if leave.Lesson != nil {
		resp.LessonTitle = leave.Lesson.Title
	}
	return resp
}
