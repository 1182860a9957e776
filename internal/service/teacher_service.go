package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
	"arts-admin/backend/internal/repository"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound    = errors.New("教师不存在")
	ErrTeacherPhoneExists = errors.New("手机号已被注册")
	ErrTeacherHasCourses  = errors.New("教师仍有授课课程，无法删除")
)

// TeacherService 教师业务接口
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.TeacherResponse, int64, error)
	Delete(ctx context.Context, id string) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	if _, err := s.repo.User.GetByPhone(ctx, req.Phone); err == nil {
		return nil, ErrTeacherPhoneExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultStudentPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Gender:       req.Gender,
		Role:         model.RoleTeacher,
		PasswordHash: string(hash),
	}
	teacher := &model.Teacher{Position: req.Position}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.User.Create(ctx, user); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}
	teacher.UserID = user.UserID
	if err := txRepo.Teacher.Create(ctx, teacher); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建教师档案失败", zap.Error(err))
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	teacher.User = user
	return s.toTeacherResponse(teacher), nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.TeacherResponse, int64, error) {
	teachers, total, err := s.repo.Teacher.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *s.toTeacherResponse(&teachers[i]))
	}

	return result, total, nil
}

// Delete 删除教师档案及其用户账号（一个事务）
// 仍被课程引用的教师不能删除，外键无级联
func (s *teacherService) Delete(ctx context.Context, id string) error {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Course.CountByTeacher(ctx, id)
	if err != nil {
		s.logger.Error("统计授课课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrTeacherHasCourses
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Teacher.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除教师档案失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := txRepo.User.Delete(ctx, teacher.UserID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除用户失败", zap.String("id", teacher.UserID), zap.Error(err))
		return err
	}

	if tx == nil {
		return nil
	}
	return tx.Commit().Error
}

func (s *teacherService) toTeacherResponse(teacher *model.Teacher) *dto.TeacherResponse {
	resp := &dto.TeacherResponse{
		ID:        teacher.TeacherID,
		UserID:    teacher.UserID,
		Position:  teacher.Position,
		CreatedAt: teacher.CreatedAt.Format(time.RFC3339),
	}
	if teacher.User != nil {
		resp.Name = teacher.User.Name
		resp.Phone = teacher.User.Phone
		resp.Email = teacher.User.Email
		resp.Gender = teacher.User.Gender
	}
	return resp
}
