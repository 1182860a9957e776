package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
	"arts-admin/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound       = errors.New("课程不存在")
	ErrCourseTeacherInvalid = errors.New("授课教师不存在")
	ErrLessonNotFound       = errors.New("课节不存在")
	ErrLessonHasLeaves      = errors.New("课节存在请假记录，无法删除")
	ErrLessonTimeInvalid    = errors.New("课节时间格式无效")
	ErrLessonTimeRange      = errors.New("课节结束时间必须晚于开始时间")
)

// lessonTimeLayout 课节时间入参格式
const lessonTimeLayout = "2006-01-02 15:04"

// CourseService 课程业务接口
//
// Update 是课节对账的唯一入口：提交的课节列表即目标全集，
// 与库内现状做差异计算后在一个事务内落库，任一步失败整体回滚。
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseBriefResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseBriefResponse, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseBriefResponse, error) {
	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	lessons, err := buildLessons(req.Lessons)
	if err != nil {
		return nil, err
	}

	status := string(req.Status)
	if status == "" {
		status = model.CourseStatusDraft
	}

	course := &model.Course{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Category:  string(req.Category),
		Year:      req.Year,
		Term:      string(req.Term),
		Price:     req.Price,
		TeacherID: req.TeacherID,
		Address:   req.Address,
		Status:    status,
		Lessons:   lessons,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return &dto.CourseBriefResponse{ID: course.CourseID, Title: course.Title}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error) {
	filter := repository.CourseFilter{
		Category: req.Category,
		Status:   req.Status,
		Year:     req.Year,
		Keyword:  req.Keyword,
	}

	courses, total, err := s.repo.Course.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *s.toCourseResponse(&courses[i]))
	}

	return result, total, nil
}

// ────────────────────── Update（课节对账）──────────────────────
//
// 步骤：
//  1. 校验授课教师引用（事务外，零副作用）
//  2. 校验课程存在（事务外）
//  3. 开启事务：
//     a. 更新课程标量字段
//     b. 计算待删除集 = 库内课节 − 提交列表携带的 ID
//     c. 对整个待删除集逐一检查请假引用；任一命中即整体回滚
//     d. 删除待删除集
//     e. 按提交顺序校验时间区间并更新/新增课节
//  4. 提交，返回课程 ID 与标题
//
// 同一目标列表重复提交为幂等空操作（差异集为空）。

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseBriefResponse, error) {
	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := s.reconcile(ctx, txRepo, course, req); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	return &dto.CourseBriefResponse{ID: course.CourseID, Title: req.Title}, nil
}

// reconcile 在事务内执行课程标量更新与课节差异对账
func (s *courseService) reconcile(ctx context.Context, txRepo *repository.Repository, course *model.Course, req *dto.UpdateCourseRequest) error {
	// 更新课程标量字段
	course.Title = req.Title
	course.Subtitle = req.Subtitle
	course.Category = string(req.Category)
	course.Year = req.Year
	course.Term = string(req.Term)
	course.Price = req.Price
	course.TeacherID = req.TeacherID
	course.Address = req.Address
	if req.Status != "" {
		course.Status = string(req.Status)
	}

	if err := txRepo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", course.CourseID), zap.Error(err))
		return err
	}

	// 差异计算：existing − keep = toDelete
	existingIDs, err := txRepo.Lesson.ListIDsByCourse(ctx, course.CourseID)
	if err != nil {
		s.logger.Error("查询课节列表失败", zap.String("id", course.CourseID), zap.Error(err))
		return err
	}

	existing := make(map[string]bool, len(existingIDs))
	for _, lessonID := range existingIDs {
		existing[lessonID] = true
	}

	// 携带 ID 的提交项必须指向本课程的现有课节
	keep := make(map[string]bool, len(req.Lessons))
	for _, spec := range req.Lessons {
		if spec.ID == "" {
			continue
		}
		if !existing[spec.ID] {
			return fmt.Errorf("%w（课节 %s）", ErrLessonNotFound, spec.ID)
		}
		keep[spec.ID] = true
	}

	var toDelete []string
	for _, lessonID := range existingIDs {
		if !keep[lessonID] {
			toDelete = append(toDelete, lessonID)
		}
	}

	// 删除前置校验：先检完整个删除集，再执行任何删除
	for _, lessonID := range toDelete {
		count, err := txRepo.Leave.CountByLesson(ctx, lessonID)
		if err != nil {
			s.logger.Error("统计请假记录失败", zap.String("lesson_id", lessonID), zap.Error(err))
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w（课节 %s）", ErrLessonHasLeaves, lessonID)
		}
	}

	if err := txRepo.Lesson.DeleteByIDs(ctx, toDelete); err != nil {
		s.logger.Error("删除课节失败", zap.Error(err))
		return err
	}

	// 按提交顺序更新/新增
	for _, spec := range req.Lessons {
		start, end, err := parseLessonTimes(spec)
		if err != nil {
			return err
		}

		status := string(spec.Status)
		if status == "" {
			status = model.LessonStatusPending
		}

		lesson := &model.Lesson{
			LessonID:  spec.ID,
			CourseID:  course.CourseID,
			Title:     spec.Title,
			Subtitle:  spec.Subtitle,
			StartTime: start,
			EndTime:   end,
			Status:    status,
		}

		if spec.ID != "" {
			err = txRepo.Lesson.Update(ctx, lesson)
		} else {
			err = txRepo.Lesson.Create(ctx, lesson)
		}
		if err != nil {
			s.logger.Error("写入课节失败", zap.String("title", spec.Title), zap.Error(err))
			return err
		}
	}

	return nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除课程，课节与订单随外键级联删除
// 课节级联同样受请假约束：任一课节仍被请假记录引用时整体拒绝
func (s *courseService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	lessonIDs, err := s.repo.Lesson.ListIDsByCourse(ctx, id)
	if err != nil {
		s.logger.Error("查询课节列表失败", zap.String("id", id), zap.Error(err))
		return err
	}
	for _, lessonID := range lessonIDs {
		count, err := s.repo.Leave.CountByLesson(ctx, lessonID)
		if err != nil {
			s.logger.Error("统计请假记录失败", zap.String("lesson_id", lessonID), zap.Error(err))
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w（课节 %s）", ErrLessonHasLeaves, lessonID)
		}
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// checkTeacher 校验授课教师引用有效
func (s *courseService) checkTeacher(ctx context.Context, teacherID string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseTeacherInvalid
		}
		s.logger.Error("查询教师失败", zap.String("id", teacherID), zap.Error(err))
		return err
	}
	return nil
}

// parseLessonTimes 解析并校验课节时间区间
func parseLessonTimes(spec dto.LessonSpec) (time.Time, time.Time, error) {
	start, err := time.Parse(lessonTimeLayout, spec.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w（课节「%s」）", ErrLessonTimeInvalid, spec.Title)
	}
	end, err := time.Parse(lessonTimeLayout, spec.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w（课节「%s」）", ErrLessonTimeInvalid, spec.Title)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w（课节「%s」）", ErrLessonTimeRange, spec.Title)
	}
	return start, end, nil
}

// buildLessons 将课节提交项转为模型（创建课程时随课程一并写入）
func buildLessons(specs []dto.LessonSpec) ([]model.Lesson, error) {
	lessons := make([]model.Lesson, 0, len(specs))
	for _, spec := range specs {
		start, end, err := parseLessonTimes(spec)
		if err != nil {
			return nil, err
		}
		status := string(spec.Status)
		if status == "" {
			status = model.LessonStatusPending
		}
		lessons = append(lessons, model.Lesson{
			Title:     spec.Title,
			Subtitle:  spec.Subtitle,
			StartTime: start,
			EndTime:   end,
			Status:    status,
		})
	}
	return lessons, nil
}

func (s *courseService) toCourseResponse(course *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:        course.CourseID,
		Title:     course.Title,
		Subtitle:  course.Subtitle,
		Category:  course.Category,
		Year:      course.Year,
		Term:      course.Term,
		Price:     course.Price,
		TeacherID: course.TeacherID,
		Address:   course.Address,
		Status:    course.Status,
		CreatedAt: course.CreatedAt.Format(time.RFC3339),
		UpdatedAt: course.UpdatedAt.Format(time.RFC3339),
	}

	if course.Teacher != nil && course.Teacher.User != nil {
		resp.TeacherName = course.Teacher.User.Name
	}

	for _, lesson := range course.Lessons {
		resp.Lessons = append(resp.Lessons, dto.LessonResponse{
			ID:        lesson.LessonID,
			Title:     lesson.Title,
			Subtitle:  lesson.Subtitle,
			StartTime: lesson.StartTime.Format(lessonTimeLayout),
			EndTime:   lesson.EndTime.Format(lessonTimeLayout),
			Status:    lesson.Status,
		})
	}

	return resp
}
