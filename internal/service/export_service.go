package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"arts-admin/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportCourseNotFound = errors.New("课程不存在")
	ErrExportNoLessons      = errors.New("课程暂无课节")
	ErrExportGenerateFail   = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 学员导入模板：三列（姓名/手机号/性别），附两行示例数据
//   - 课程课表：课节列表渲染为标准 iCalendar (RFC 5545)
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// StudentTemplate 生成学员批量导入的 Excel 模板
	StudentTemplate() (*bytes.Buffer, string, error)
	// CourseCalendar 将课程的课节导出为 ICS 日历
	CourseCalendar(ctx context.Context, courseID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── StudentTemplate ──────────────────────

func (s *exportService) StudentTemplate() (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{"姓名", "手机号", "性别"},
		{"张三", "13800000001", 1},
		{"李四", "13900000002", 2},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, "", ErrExportGenerateFail
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	// 列宽调整便于直接填写
	if err := f.SetColWidth(sheet, "A", "C", 16); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成导入模板失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "student_import_template.xlsx", nil
}

// ────────────────────── CourseCalendar ──────────────────────

func (s *exportService) CourseCalendar(ctx context.Context, courseID string) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, "", err
	}
	if len(course.Lessons) == 0 {
		return nil, "", ErrExportNoLessons
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//arts-admin//course-calendar//CN")

	for _, lesson := range course.Lessons {
		event := cal.AddEvent(fmt.Sprintf("lesson-%s@arts-admin", lesson.LessonID))
		event.SetSummary(fmt.Sprintf("%s - %s", course.Title, lesson.Title))
		event.SetStartAt(lesson.StartTime)
		event.SetEndAt(lesson.EndTime)
		if lesson.Subtitle != "" {
			event.SetDescription(lesson.Subtitle)
		}
		if course.Address != "" {
			event.SetLocation(course.Address)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("course-%s.ics", course.CourseID)

	return buf, filename, nil
}
