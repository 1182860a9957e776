package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
)

func setupTestTeacherService(t *testing.T) (TeacherService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepository()
	svc := NewTeacherService(repo, zap.NewNop())
	return svc, mocks
}

func TestTeacherService_Create_Success(t *testing.T) {
	svc, mocks := setupTestTeacherService(t)

	result, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		Name:     "李老师",
		Phone:    "13700000001",
		Email:    "li@example.com",
		Gender:   2,
		Position: "full_time",
	})
	if err != nil {
		t.Fatalf("创建教师应成功: %v", err)
	}
	if result.Name != "李老师" || result.Position != "full_time" {
		t.Errorf("返回信息不符: %+v", result)
	}

	user, ok := mocks.user.users[result.UserID]
	if !ok {
		t.Fatal("应同时创建用户账号")
	}
	if user.Role != model.RoleTeacher {
		t.Errorf("期望角色=teacher，实际=%s", user.Role)
	}
	// 初始密码与学员导入一致
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(defaultStudentPassword)) != nil {
		t.Error("初始密码应为默认密码")
	}
}

func TestTeacherService_Create_PhoneExists(t *testing.T) {
	svc, mocks := setupTestTeacherService(t)
	_ = mocks.user.Create(context.Background(), &model.User{Name: "占用者", Phone: "13700000001", Role: model.RoleTeacher})

	_, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{Name: "李老师", Phone: "13700000001"})
	if !errors.Is(err, ErrTeacherPhoneExists) {
		t.Errorf("期望 ErrTeacherPhoneExists，实际: %v", err)
	}
}

func TestTeacherService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestTeacherService(t)

	if _, err := svc.GetByID(context.Background(), "tea-ghost"); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

func TestTeacherService_List(t *testing.T) {
	svc, _ := setupTestTeacherService(t)

	seed := []dto.CreateTeacherRequest{
		{Name: "张老师", Phone: "13700000001"},
		{Name: "王老师", Phone: "13700000002"},
	}
	for i := range seed {
		if _, err := svc.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("准备数据失败: %v", err)
		}
	}

	result, total, err := svc.List(context.Background(), &dto.PaginationRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("查询列表应成功: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("期望 2 条记录，total=%d len=%d", total, len(result))
	}
}

func TestTeacherService_Delete(t *testing.T) {
	svc, mocks := setupTestTeacherService(t)

	created, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{Name: "李老师", Phone: "13700000001"})
	if err != nil {
		t.Fatalf("准备数据失败: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("删除应成功: %v", err)
	}
	if _, ok := mocks.teacher.teachers[created.ID]; ok {
		t.Error("教师档案应已删除")
	}
	if _, ok := mocks.user.users[created.UserID]; ok {
		t.Error("关联用户账号应一并删除")
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("重复删除期望 ErrTeacherNotFound，实际: %v", err)
	}
}

func TestTeacherService_Delete_BlockedByCourses(t *testing.T) {
	svc, mocks := setupTestTeacherService(t)

	created, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{Name: "李老师", Phone: "13700000001"})
	if err != nil {
		t.Fatalf("准备数据失败: %v", err)
	}

	// 教师仍有授课课程时不得删除
	_ = mocks.course.Create(context.Background(), &model.Course{
		Title:     "少儿舞蹈基础班",
		TeacherID: created.ID,
		Status:    model.CourseStatusOpen,
	})

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrTeacherHasCourses) {
		t.Fatalf("期望 ErrTeacherHasCourses，实际: %v", err)
	}
	if _, ok := mocks.teacher.teachers[created.ID]; !ok {
		t.Error("教师档案不应被删除")
	}
	if _, ok := mocks.user.users[created.UserID]; !ok {
		t.Error("关联用户账号不应被删除")
	}
}
