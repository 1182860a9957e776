package repository

import (
	"context"

	"gorm.io/gorm"

	"arts-admin/backend/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, filter CourseFilter, offset, limit int) ([]model.Course, int64, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByTeacher(ctx context.Context, teacherID string) (int64, error)
}

// CourseFilter 课程列表过滤条件
type CourseFilter struct {
	Category string
	Status   string
	Year     int
	Keyword  string
}

// LessonRepository 课节数据访问接口
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id string) (*model.Lesson, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Lesson, error)
	ListIDsByCourse(ctx context.Context, courseID string) ([]string, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

// ── Course Repository 实现 ──

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Teacher").Preload("Teacher.User").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context, filter CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Course{})
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Year > 0 {
		db = db.Where("year = ?", filter.Year)
	}
	if filter.Keyword != "" {
		db = db.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Teacher").Preload("Teacher.User").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Update 覆盖课程标量字段（不触碰课节关联）
func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("course_id = ?", course.CourseID).
		Updates(map[string]interface{}{
			"title":      course.Title,
			"subtitle":   course.Subtitle,
			"category":   course.Category,
			"year":       course.Year,
			"term":       course.Term,
			"price":      course.Price,
			"teacher_id": course.TeacherID,
			"address":    course.Address,
			"status":     course.Status,
		}).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&total).Error
	return total, err
}

func (r *courseRepo) CountByTeacher(ctx context.Context, teacherID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("teacher_id = ?", teacherID).
		Count(&total).Error
	return total, err
}

// ── Lesson Repository 实现 ──

type lessonRepo struct {
	db *gorm.DB
}

// NewLessonRepo 创建 LessonRepository 实例
func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("start_time ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ListIDsByCourse(ctx context.Context, courseID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("course_id = ?", courseID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("lesson_id = ? AND course_id = ?", lesson.LessonID, lesson.CourseID).
		Updates(map[string]interface{}{
			"title":      lesson.Title,
			"subtitle":   lesson.Subtitle,
			"start_time": lesson.StartTime,
			"end_time":   lesson.EndTime,
			"status":     lesson.Status,
		}).Error
}

func (r *lessonRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("lesson_id IN ?", ids).
		Delete(&model.Lesson{}).Error
}
