package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
)

func setupTestLeaveService(t *testing.T) (LeaveService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepository()
	svc := NewLeaveService(repo, zap.NewNop())
	return svc, mocks
}

func seedLeaveRefs(t *testing.T, mocks *mockRepos) {
	t.Helper()
	ctx := context.Background()
	_ = mocks.student.Create(ctx, &model.Student{StudentID: "stu-001", UserID: "user-001"})
	start := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	_ = mocks.lesson.Create(ctx, &model.Lesson{
		LessonID:  "lesson-001",
		CourseID:  "course-001",
		Title:     "第一节",
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	})
}

func TestLeaveService_Create_Success(t *testing.T) {
	svc, mocks := setupTestLeaveService(t)
	seedLeaveRefs(t, mocks)

	result, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		StudentID: "stu-001",
		LessonID:  "lesson-001",
		Reason:    "感冒发烧",
	})
	if err != nil {
		t.Fatalf("创建请假记录应成功: %v", err)
	}
	if result.StudentID != "stu-001" || result.LessonID != "lesson-001" || result.Reason != "感冒发烧" {
		t.Errorf("返回信息不符: %+v", result)
	}

	count, _ := mocks.leave.CountByLesson(context.Background(), "lesson-001")
	if count != 1 {
		t.Errorf("课节请假数期望=1，实际=%d", count)
	}
}

func TestLeaveService_Create_BadRefs(t *testing.T) {
	svc, mocks := setupTestLeaveService(t)
	seedLeaveRefs(t, mocks)

	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{StudentID: "stu-ghost", LessonID: "lesson-001"})
	if !errors.Is(err, ErrLeaveStudentInvalid) {
		t.Errorf("期望 ErrLeaveStudentInvalid，实际: %v", err)
	}

	_, err = svc.Create(context.Background(), &dto.CreateLeaveRequest{StudentID: "stu-001", LessonID: "lesson-ghost"})
	if !errors.Is(err, ErrLeaveLessonInvalid) {
		t.Errorf("期望 ErrLeaveLessonInvalid，实际: %v", err)
	}
}

func TestLeaveService_List_Filters(t *testing.T) {
	svc, mocks := setupTestLeaveService(t)
	seedLeaveRefs(t, mocks)
	ctx := context.Background()
	_ = mocks.student.Create(ctx, &model.Student{StudentID: "stu-002", UserID: "user-002"})
	_ = mocks.lesson.Create(ctx, &model.Lesson{LessonID: "lesson-002", CourseID: "course-001", Title: "第二节"})

	seed := []dto.CreateLeaveRequest{
		{StudentID: "stu-001", LessonID: "lesson-001"},
		{StudentID: "stu-001", LessonID: "lesson-002"},
		{StudentID: "stu-002", LessonID: "lesson-001"},
	}
	for i := range seed {
		if _, err := svc.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("准备数据失败: %v", err)
		}
	}

	result, total, err := svc.List(ctx, &dto.LeaveListRequest{StudentID: "stu-001"})
	if err != nil {
		t.Fatalf("按学员查询应成功: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("学员筛选期望 2 条，total=%d len=%d", total, len(result))
	}

	result, total, err = svc.List(ctx, &dto.LeaveListRequest{LessonID: "lesson-001"})
	if err != nil {
		t.Fatalf("按课节查询应成功: %v", err)
	}
	if total != 2 || len(result) != 2 {
		t.Errorf("课节筛选期望 2 条，total=%d len=%d", total, len(result))
	}

	_, total, err = svc.List(ctx, &dto.LeaveListRequest{})
	if err != nil {
		t.Fatalf("全量查询应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("全量期望 3 条，实际=%d", total)
	}
}
