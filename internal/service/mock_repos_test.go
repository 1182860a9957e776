package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"arts-admin/backend/internal/model"
	"arts-admin/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	seq       int
	createErr error // 非 nil 时 Create 直接返回该错误
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("stu-%03d", m.seq)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, _ string, _, _ int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
	seq      int
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		m.seq++
		teacher.TeacherID = fmt.Sprintf("tea-%03d", m.seq)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, _, _ int) ([]model.Teacher, int64, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	delete(m.teachers, id)
	return nil
}

func (m *mockTeacherRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.teachers)), nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%03d", m.seq)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, filter repository.CourseFilter, _, _ int) ([]model.Course, int64, error) {
	var result []model.Course
	for _, c := range m.courses {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) CountByTeacher(_ context.Context, teacherID string) (int64, error) {
	var total int64
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			total++
		}
	}
	return total, nil
}

// ── Mock LessonRepository ──

// order 记录插入顺序，保证 ListIDsByCourse 结果稳定
type mockLessonRepo struct {
	lessons map[string]*model.Lesson
	order   []string
	seq     int
}

func newMockLessonRepo() *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[string]*model.Lesson)}
}

func (m *mockLessonRepo) Create(_ context.Context, lesson *model.Lesson) error {
	if lesson.LessonID == "" {
		m.seq++
		lesson.LessonID = fmt.Sprintf("lesson-%03d", m.seq)
	}
	m.lessons[lesson.LessonID] = lesson
	m.order = append(m.order, lesson.LessonID)
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id string) (*model.Lesson, error) {
	if l, ok := m.lessons[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonRepo) ListByCourse(_ context.Context, courseID string) ([]model.Lesson, error) {
	var result []model.Lesson
	for _, id := range m.order {
		if l, ok := m.lessons[id]; ok && l.CourseID == courseID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLessonRepo) ListIDsByCourse(_ context.Context, courseID string) ([]string, error) {
	var result []string
	for _, id := range m.order {
		if l, ok := m.lessons[id]; ok && l.CourseID == courseID {
			result = append(result, id)
		}
	}
	return result, nil
}

// Update 与真实实现一致：按 (lesson_id, course_id) 匹配，未命中即零行更新、不报错
func (m *mockLessonRepo) Update(_ context.Context, lesson *model.Lesson) error {
	existing, ok := m.lessons[lesson.LessonID]
	if !ok || existing.CourseID != lesson.CourseID {
		return nil
	}
	m.lessons[lesson.LessonID] = lesson
	return nil
}

func (m *mockLessonRepo) DeleteByIDs(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.lessons, id)
	}
	return nil
}

// ── Mock OrderRepository ──

type mockOrderRepo struct {
	orders map[string]*model.Order
	seq    int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	if order.OrderID == "" {
		m.seq++
		order.OrderID = fmt.Sprintf("order-%03d", m.seq)
	}
	m.orders[order.OrderID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) GetPaidByStudentAndCourse(_ context.Context, studentID, courseID string) (*model.Order, error) {
	for _, o := range m.orders {
		if o.StudentID == studentID && o.CourseID == courseID && o.Status == model.OrderStatusPaid {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) List(_ context.Context, filter repository.OrderFilter, _, _ int) ([]model.Order, int64, error) {
	var result []model.Order
	for _, o := range m.orders {
		if filter.StudentID != "" && o.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != "" && o.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *model.Order) error {
	m.orders[order.OrderID] = order
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id string) error {
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.orders)), nil
}

func (m *mockOrderRepo) SumPaidAmount(_ context.Context) (int64, error) {
	var sum int64
	for _, o := range m.orders {
		if o.Status == model.OrderStatusPaid {
			sum += o.Amount
		}
	}
	return sum, nil
}

func (m *mockOrderRepo) RevenueByCategory(_ context.Context) ([]repository.CategoryRevenueRow, error) {
	return nil, nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves []*model.Leave
	seq    int
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.Leave) error {
	if leave.LeaveID == "" {
		m.seq++
		leave.LeaveID = fmt.Sprintf("leave-%03d", m.seq)
	}
	m.leaves = append(m.leaves, leave)
	return nil
}

func (m *mockLeaveRepo) CountByLesson(_ context.Context, lessonID string) (int64, error) {
	var count int64
	for _, l := range m.leaves {
		if l.LessonID == lessonID {
			count++
		}
	}
	return count, nil
}

func (m *mockLeaveRepo) List(_ context.Context, studentID, lessonID string, _, _ int) ([]model.Leave, int64, error) {
	var result []model.Leave
	for _, l := range m.leaves {
		if studentID != "" && l.StudentID != studentID {
			continue
		}
		if lessonID != "" && l.LessonID != lessonID {
			continue
		}
		result = append(result, *l)
	}
	return result, int64(len(result)), nil
}

// ── 聚合构造 ──

type mockRepos struct {
	user    *mockUserRepo
	student *mockStudentRepo
	teacher *mockTeacherRepo
	course  *mockCourseRepo
	lesson  *mockLessonRepo
	order   *mockOrderRepo
	leave   *mockLeaveRepo
}

// newMockRepository 组装一个无底层数据库连接的 Repository
// BeginTx 在该形态下返回 nil 事务，Service 按非事务模式执行
func newMockRepository() (*repository.Repository, *mockRepos) {
	mocks := &mockRepos{
		user:    newMockUserRepo(),
		student: newMockStudentRepo(),
		teacher: newMockTeacherRepo(),
		course:  newMockCourseRepo(),
		lesson:  newMockLessonRepo(),
		order:   newMockOrderRepo(),
		leave:   newMockLeaveRepo(),
	}
	repo := &repository.Repository{
		User:    mocks.user,
		Student: mocks.student,
		Teacher: mocks.teacher,
		Course:  mocks.course,
		Lesson:  mocks.lesson,
		Order:   mocks.order,
		Leave:   mocks.leave,
	}
	return repo, mocks
}
