package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestStudentService(t *testing.T) (StudentService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepository()
	svc := NewStudentService(repo, zap.NewNop())
	return svc, mocks
}

// buildImportExcel 在内存中构造导入用 Excel 文件
func buildImportExcel(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("写入测试 Excel 失败: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("生成测试 Excel 失败: %v", err)
	}
	return buf
}

// ── Create 测试 ──

func TestStudentService_Create_Success(t *testing.T) {
	svc, mocks := setupTestStudentService(t)

	req := &dto.CreateStudentRequest{
		Name:     "王小明",
		Phone:    "13800000001",
		Gender:   1,
		Birthday: "2015-06-01",
		Guardian1: &dto.GuardianSpec{
			Name: "王大明", Phone: "13900000001", Relation: "父亲",
		},
	}

	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "王小明" {
		t.Errorf("期望Name=王小明，实际=%s", result.Name)
	}

	student := mocks.student.students[result.ID]
	if student == nil {
		t.Fatal("学员档案未写入")
	}
	if student.Guardian1Relation != "父亲" {
		t.Errorf("期望监护人关系=父亲，实际=%s", student.Guardian1Relation)
	}

	// 账号使用初始密码
	user := mocks.user.users[student.UserID]
	if user == nil {
		t.Fatal("用户账号未写入")
	}
	if user.Role != model.RoleStudent {
		t.Errorf("期望角色=student，实际=%s", user.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("123456")) != nil {
		t.Error("初始密码应为 123456")
	}
}

func TestStudentService_Create_PhoneExists(t *testing.T) {
	svc, mocks := setupTestStudentService(t)
	_ = mocks.user.Create(context.Background(), &model.User{Name: "已存在", Phone: "13800000001"})

	req := &dto.CreateStudentRequest{Name: "王小明", Phone: "13800000001"}
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrStudentPhoneExists) {
		t.Errorf("期望 ErrStudentPhoneExists，实际: %v", err)
	}
}

func TestStudentService_Create_BadBirthday(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	req := &dto.CreateStudentRequest{Name: "王小明", Phone: "13800000001", Birthday: "2015/06/01"}
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrBirthdayInvalid) {
		t.Errorf("期望 ErrBirthdayInvalid，实际: %v", err)
	}
}

// ── ParseImportFile 测试 ──

func TestStudentService_ParseImportFile(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	buf := buildImportExcel(t, [][]interface{}{
		{"姓名", "手机号", "性别"},
		{"张三", "13800000001", 1},
		{"", "", ""}, // 全空行静默跳过
		{"李四", "13900000002", 2},
	})

	rows, err := svc.ParseImportFile(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseImportFile 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望 2 个数据行，实际=%d", len(rows))
	}
	if rows[0].Name != "张三" || rows[0].Phone != "13800000001" {
		t.Errorf("第一行解析有误: %+v", rows[0])
	}
	if rows[1].Row != 4 {
		t.Errorf("行号应保留 Excel 原始行号 4，实际=%d", rows[1].Row)
	}
}

func TestStudentService_ParseImportFile_EnglishHeader(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	buf := buildImportExcel(t, [][]interface{}{
		{"name", "phone"},
		{"张三", "13800000001"},
	})

	rows, err := svc.ParseImportFile(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("英文表头应被接受: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("期望 1 个数据行，实际=%d", len(rows))
	}
}

func TestStudentService_ParseImportFile_BadHeader(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	buf := buildImportExcel(t, [][]interface{}{
		{"学生姓名", "联系电话"}, // 非精确匹配列名
		{"张三", "13800000001"},
	})

	_, err := svc.ParseImportFile(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrImportBadHeader) {
		t.Errorf("期望 ErrImportBadHeader，实际: %v", err)
	}
}

func TestStudentService_ParseImportFile_NoData(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	buf := buildImportExcel(t, [][]interface{}{
		{"姓名", "手机号", "性别"},
	})

	_, err := svc.ParseImportFile(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrImportNoData) {
		t.Errorf("期望 ErrImportNoData，实际: %v", err)
	}
}

func TestStudentService_ParseImportFile_NotExcel(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	_, err := svc.ParseImportFile(bytes.NewReader([]byte("这不是一个Excel文件")))
	if !errors.Is(err, ErrImportBadFile) {
		t.Errorf("期望 ErrImportBadFile，实际: %v", err)
	}
}

// ── ImportStudents 测试 ──

func TestStudentService_Import_MixedOutcome(t *testing.T) {
	svc, mocks := setupTestStudentService(t)

	// 已占用的手机号
	_ = mocks.user.Create(context.Background(), &model.User{Name: "老学员", Phone: "13800000003"})

	rows := []ImportStudentRow{
		{Row: 2, Name: "张三", Phone: "13800000001", Gender: "1"},
		{Row: 3, Name: "", Phone: "13800000002"},              // 姓名为空 → Skipped
		{Row: 4, Name: "王五", Phone: "13800000003"},           // 手机号已占用 → Failed
		{Row: 5, Name: "赵六", Phone: "0755-1234567"},          // 手机号格式无效 → Skipped
		{Row: 6, Name: "钱七", Phone: "13800000004", Gender: "男"}, // 性别格式无效 → Skipped
		{Row: 7, Name: "孙八", Phone: "13800000005", Gender: "2"},
	}

	result, err := svc.ImportStudents(context.Background(), rows, nil)
	if err != nil {
		t.Fatalf("ImportStudents 应成功: %v", err)
	}

	if result.Total != 3 {
		t.Errorf("候选行数期望=3，实际=%d", result.Total)
	}
	if result.Imported != 2 {
		t.Errorf("成功数期望=2，实际=%d", result.Imported)
	}
	if len(result.Skipped) != 3 {
		t.Errorf("跳过数期望=3，实际=%d", len(result.Skipped))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("失败数期望=1，实际=%d", len(result.Failed))
	}
	if result.Failed[0].Reason != "手机号已被注册" {
		t.Errorf("失败原因期望=手机号已被注册，实际=%s", result.Failed[0].Reason)
	}

	// 成功导入的学员档案：缺省监护人为学员本人
	user, err := mocks.user.GetByPhone(context.Background(), "13800000001")
	if err != nil {
		t.Fatalf("导入的用户应存在: %v", err)
	}
	student, err := mocks.student.GetByUserID(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("导入的学员档案应存在: %v", err)
	}
	if student.Guardian1Name != "张三" || student.Guardian1Relation != "本人" {
		t.Errorf("缺省监护人应为学员本人，实际=%s/%s", student.Guardian1Name, student.Guardian1Relation)
	}
}

func TestStudentService_Import_ProgressEvents(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	rows := []ImportStudentRow{
		{Row: 2, Name: "张三", Phone: "13800000001"},
		{Row: 3, Name: "李四", Phone: "13800000002"},
	}

	var events []dto.ImportEvent
	_, err := svc.ImportStudents(context.Background(), rows, func(e dto.ImportEvent) {
		events = append(events, e)
	})
	if err != nil {
		t.Fatalf("ImportStudents 应成功: %v", err)
	}

	// init + 每候选行一条 progress
	if len(events) != 3 {
		t.Fatalf("期望 3 条事件，实际=%d", len(events))
	}
	if events[0].Type != dto.ImportEventInit || events[0].Total != 2 {
		t.Errorf("首条应为 init(total=2)，实际=%+v", events[0])
	}
	if events[1].Type != dto.ImportEventProgress || events[1].Processed != 1 {
		t.Errorf("第二条应为 progress(processed=1)，实际=%+v", events[1])
	}
	if events[2].Processed != 2 || events[2].Name != "李四" {
		t.Errorf("末条应为 progress(processed=2, name=李四)，实际=%+v", events[2])
	}
}

func TestStudentService_Import_DuplicateWithinBatch(t *testing.T) {
	svc, _ := setupTestStudentService(t)

	// 批内重复手机号：第一行成功，第二行 Failed
	rows := []ImportStudentRow{
		{Row: 2, Name: "张三", Phone: "13800000001"},
		{Row: 3, Name: "张三三", Phone: "13800000001"},
	}

	result, err := svc.ImportStudents(context.Background(), rows, nil)
	if err != nil {
		t.Fatalf("ImportStudents 应成功: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("成功数期望=1，实际=%d", result.Imported)
	}
	if len(result.Failed) != 1 || result.Failed[0].Row != 3 {
		t.Errorf("第二行应记为 Failed，实际=%+v", result.Failed)
	}
}

func TestStudentService_Import_RowFailureDoesNotAbortBatch(t *testing.T) {
	svc, mocks := setupTestStudentService(t)
	_ = mocks.user.Create(context.Background(), &model.User{Name: "老学员", Phone: "13800000001"})

	rows := []ImportStudentRow{
		{Row: 2, Name: "张三", Phone: "13800000001"}, // Failed
		{Row: 3, Name: "李四", Phone: "13800000002"}, // 应继续导入
	}

	result, err := svc.ImportStudents(context.Background(), rows, nil)
	if err != nil {
		t.Fatalf("ImportStudents 应成功: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("单行失败不应中断批次，成功数期望=1，实际=%d", result.Imported)
	}
}
