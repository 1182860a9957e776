package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User    UserRepository
	Student StudentRepository
	Teacher TeacherRepository
	Course  CourseRepository
	Lesson  LessonRepository
	Order   OrderRepository
	Leave   LeaveRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:    NewUserRepo(db),
		Student: NewStudentRepo(db),
		Teacher: NewTeacherRepo(db),
		Course:  NewCourseRepo(db),
		Lesson:  NewLessonRepo(db),
		Order:   NewOrderRepo(db),
		Leave:   NewLeaveRepo(db),
		db:      db,
	}
}

// BeginTx 开启数据库事务，返回事务连接
// 调用方通过 WithTx 获得绑定该事务的 Repository，自行负责 Commit/Rollback
// 无底层连接时（单元测试注入 mock）返回 nil 事务，调用方按非事务模式执行
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定指定事务连接的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
