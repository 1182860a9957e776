package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
	"arts-admin/backend/internal/repository"
)

// ── 学员模块业务错误 ──

var (
	ErrStudentNotFound    = errors.New("学员不存在")
	ErrStudentPhoneExists = errors.New("手机号已被注册")
	ErrBirthdayInvalid    = errors.New("出生日期格式无效")

	ErrImportBadFile   = errors.New("无法解析Excel文件")
	ErrImportBadHeader = errors.New("Excel表头缺少必要列（姓名/手机号）")
	ErrImportNoData    = errors.New("Excel文件无数据行（第一行为表头）")
	ErrImportTooLarge  = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
)

const (
	maxImportRows = 1000

	// defaultStudentPassword 批量导入学员的统一初始密码（入库前 bcrypt 哈希）
	defaultStudentPassword = "123456"

	// guardianSelfRelation 导入学员缺省监护人关系：学员本人
	guardianSelfRelation = "本人"

	birthdayLayout = "2006-01-02"
)

// phonePattern 大陆手机号格式
var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ImportStudentRow Excel 导入解析后的单行数据
type ImportStudentRow struct {
	Row    int // Excel 行号（从 1 起，含表头）
	Name   string
	Phone  string
	Gender string
}

// ProgressFunc 导入进度回调
// 引擎对每个候选行推送一条 progress 事件；传输层（分块 HTTP、WebSocket 等）
// 自行决定如何消费，引擎不关心具体传输方式
type ProgressFunc func(event dto.ImportEvent)

// StudentService 学员业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	Delete(ctx context.Context, id string) error

	ParseImportFile(reader io.Reader) ([]ImportStudentRow, error)
	ImportStudents(ctx context.Context, rows []ImportStudentRow, emit ProgressFunc) (*dto.ImportStudentResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if _, err := s.repo.User.GetByPhone(ctx, req.Phone); err == nil {
		return nil, ErrStudentPhoneExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	var birthday *time.Time
	if req.Birthday != "" {
		t, err := time.Parse(birthdayLayout, req.Birthday)
		if err != nil {
			return nil, ErrBirthdayInvalid
		}
		birthday = &t
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
		Role:         model.RoleStudent,
		PasswordHash: string(hash),
	}
	student := &model.Student{Birthday: birthday}
	if req.Guardian1 != nil {
		student.Guardian1Name = req.Guardian1.Name
		student.Guardian1Phone = req.Guardian1.Phone
		student.Guardian1Relation = req.Guardian1.Relation
	}
	if req.Guardian2 != nil {
		student.Guardian2Name = req.Guardian2.Name
		student.Guardian2Phone = req.Guardian2.Phone
		student.Guardian2Relation = req.Guardian2.Relation
	}

	if err := s.createUserWithProfile(ctx, user, student); err != nil {
		s.logger.Error("创建学员失败", zap.Error(err))
		return nil, err
	}

	student.User = user
	return s.toStudentResponse(student), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toStudentResponse(student), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询学员列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *s.toStudentResponse(&students[i]))
	}

	return result, total, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除学员档案及其用户账号（一个事务）
func (s *studentService) Delete(ctx context.Context, id string) error {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.String("id", id), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Student.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除学员档案失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := txRepo.User.Delete(ctx, student.UserID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除用户失败", zap.String("id", student.UserID), zap.Error(err))
		return err
	}

	if tx == nil {
		return nil
	}
	return tx.Commit().Error
}

// ────────────────────── ParseImportFile ──────────────────────

// importHeaderIndex 解析 Excel 表头，返回列名 → 列索引映射
// 列名精确匹配（区分大小写），姓名/手机号必填，性别可选
func importHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"name":   -1,
		"phone":  -1,
		"gender": -1,
	}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "姓名", "name":
			idx["name"] = i
		case "手机号", "phone":
			idx["phone"] = i
		case "性别", "gender":
			idx["gender"] = i
		}
	}
	return idx
}

// ParseImportFile 解析导入 Excel 文件，返回非空数据行
// 全空行静默跳过，不计入任何统计
func (s *studentService) ParseImportFile(reader io.Reader) ([]ImportStudentRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportBadFile, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	if len(excelRows) == 0 {
		return nil, ErrImportNoData
	}

	colIndex := importHeaderIndex(excelRows[0])
	if colIndex["name"] < 0 || colIndex["phone"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportStudentRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportStudentRow{Row: i + 1}

		if idx := colIndex["name"]; idx < len(row) {
			item.Name = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["phone"]; idx < len(row) {
			item.Phone = strings.TrimSpace(row[idx])
		}
		if idx := colIndex["gender"]; idx >= 0 && idx < len(row) {
			item.Gender = strings.TrimSpace(row[idx])
		}

		// 跳过全空行
		if item.Name == "" && item.Phone == "" && item.Gender == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooLarge
	}

	return rows, nil
}

// ────────────────────── ImportStudents ──────────────────────
//
// 批量导入按行尽力而为：单行失败不影响其他行，批次整体不包事务。
// 流程：
//  1. 行级校验（姓名非空、手机号格式、性别数字），不通过记为 Skipped
//  2. 通过校验的候选行严格按输入顺序处理：
//     手机号查重（读后写，无批级事务保护；库表手机号唯一索引兜底）
//     → 命中记 Failed；未命中在单行事务内创建 User + Student 档案
//  3. 每处理完一个候选行推送一条 progress 事件

func (s *studentService) ImportStudents(ctx context.Context, rows []ImportStudentRow, emit ProgressFunc) (*dto.ImportStudentResponse, error) {
	resp := &dto.ImportStudentResponse{}

	// 行级校验
	type candidate struct {
		row    ImportStudentRow
		gender int
	}
	var candidates []candidate

	for _, row := range rows {
		if row.Name == "" {
			resp.Skipped = append(resp.Skipped, dto.ImportRowIssue{
				Row: row.Row, Reason: "姓名为空",
			})
			continue
		}
		if !phonePattern.MatchString(row.Phone) {
			resp.Skipped = append(resp.Skipped, dto.ImportRowIssue{
				Row: row.Row, Name: row.Name, Reason: "手机号格式无效",
			})
			continue
		}
		gender := 0
		if row.Gender != "" {
			n, err := strconv.Atoi(row.Gender)
			if err != nil || n < 0 || n > 2 {
				resp.Skipped = append(resp.Skipped, dto.ImportRowIssue{
					Row: row.Row, Name: row.Name, Reason: "性别格式无效",
				})
				continue
			}
			gender = n
		}
		candidates = append(candidates, candidate{row: row, gender: gender})
	}

	resp.Total = len(candidates)

	if emit != nil {
		emit(dto.ImportEvent{Type: dto.ImportEventInit, Total: resp.Total})
	}

	// 统一初始密码只哈希一次
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultStudentPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 候选行严格按输入顺序处理
	for i, c := range candidates {
		if err := s.importOne(ctx, c.row, c.gender, string(hash)); err != nil {
			if errors.Is(err, ErrStudentPhoneExists) {
				resp.Failed = append(resp.Failed, dto.ImportRowIssue{
					Row: c.row.Row, Name: c.row.Name, Reason: "手机号已被注册",
				})
			} else {
				s.logger.Error("导入学员失败",
					zap.Int("row", c.row.Row),
					zap.String("name", c.row.Name),
					zap.Error(err),
				)
				resp.Failed = append(resp.Failed, dto.ImportRowIssue{
					Row: c.row.Row, Name: c.row.Name, Reason: "写入失败",
				})
			}
		} else {
			resp.Imported++
		}

		if emit != nil {
			emit(dto.ImportEvent{
				Type:      dto.ImportEventProgress,
				Total:     resp.Total,
				Processed: i + 1,
				Name:      c.row.Name,
			})
		}
	}

	return resp, nil
}

// importOne 处理单个候选行：手机号查重 + 单行事务内创建 User 与 Student
func (s *studentService) importOne(ctx context.Context, row ImportStudentRow, gender int, passwordHash string) error {
	if _, err := s.repo.User.GetByPhone(ctx, row.Phone); err == nil {
		return ErrStudentPhoneExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := &model.User{
		Name:         row.Name,
		Phone:        row.Phone,
		Gender:       gender,
		Role:         model.RoleStudent,
		PasswordHash: passwordHash,
	}
	// 缺省监护人：学员本人
	student := &model.Student{
		Guardian1Name:     row.Name,
		Guardian1Phone:    row.Phone,
		Guardian1Relation: guardianSelfRelation,
	}

	return s.createUserWithProfile(ctx, user, student)
}

// createUserWithProfile 在一个事务内创建用户与学员档案
func (s *studentService) createUserWithProfile(ctx context.Context, user *model.User, student *model.Student) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.User.Create(ctx, user); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	student.UserID = user.UserID
	if err := txRepo.Student.Create(ctx, student); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx == nil {
		return nil
	}
	return tx.Commit().Error
}

// ── 内部辅助方法 ──

func (s *studentService) toStudentResponse(student *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:                student.StudentID,
		UserID:            student.UserID,
		Guardian1Name:     student.Guardian1Name,
		Guardian1Phone:    student.Guardian1Phone,
		Guardian1Relation: student.Guardian1Relation,
		Guardian2Name:     student.Guardian2Name,
		Guardian2Phone:    student.Guardian2Phone,
		Guardian2Relation: student.Guardian2Relation,
		CreatedAt:         student.CreatedAt.Format(time.RFC3339),
	}

	if student.Birthday != nil {
		resp.Birthday = student.Birthday.Format(birthdayLayout)
	}
	if student.User != nil {
		resp.Name = student.User.Name
		resp.Phone = student.User.Phone
		resp.Email = student.User.Email
		resp.Gender = student.User.Gender
	}

	return resp
}
