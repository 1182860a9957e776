package repository

import (
	"context"

	"gorm.io/gorm"

	"arts-admin/backend/internal/model"
)

// LeaveRepository 请假记录数据访问接口
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	// CountByLesson 统计引用某课节的请假记录数，课节删除前置校验用
	CountByLesson(ctx context.Context, lessonID string) (int64, error)
	List(ctx context.Context, studentID, lessonID string, offset, limit int) ([]model.Leave, int64, error)
}

// leaveRepo LeaveRepository 的 GORM 实现
type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, leave *model.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepo) CountByLesson(ctx context.Context, lessonID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Where("lesson_id = ?", lessonID).
		Count(&total).Error
	return total, err
}

func (r *leaveRepo) List(ctx context.Context, studentID, lessonID string, offset, limit int) ([]model.Leave, int64, error) {
	var leaves []model.Leave
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Leave{})
	if studentID != "" {
		db = db.Where("student_id = ?", studentID)
	}
	if lessonID != "" {
		db = db.Where("lesson_id = ?", lessonID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").Preload("Student.User").
		Preload("Lesson").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, 0, err
	}

	return leaves, total, nil
}
