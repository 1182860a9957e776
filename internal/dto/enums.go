package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"arts-admin/backend/internal/model"
)

// ── 枚举字段归一化 ──────────────────────────────────────────
//
// 前端不同调用点对同一枚举既可能传字符串标签（"dance"），也可能传
// 数字编码（1）。在 DTO 反序列化边界统一归一为规范字符串，Service
// 层之后不再出现类型分支。
// ─────────────────────────────────────────────────────────────

// decodeFlexEnum 将 JSON 原始值（字符串或数字）归一为规范枚举值
func decodeFlexEnum(data []byte, name string, byCode map[int]string, byLabel map[string]string) (string, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return "", nil
	}

	// 数字编码
	if n, err := strconv.Atoi(raw); err == nil {
		if v, ok := byCode[n]; ok {
			return v, nil
		}
		return "", fmt.Errorf("无效的%s编码: %d", name, n)
	}

	// 字符串标签
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("无效的%s: %s", name, raw)
	}
	if v, ok := byLabel[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	return "", fmt.Errorf("无效的%s: %s", name, s)
}

// Category 课程类别（dance | painting | speech | music）
type Category string

var categoryByCode = map[int]string{
	1: model.CategoryDance,
	2: model.CategoryPainting,
	3: model.CategorySpeech,
	4: model.CategoryMusic,
}

var categoryByLabel = map[string]string{
	model.CategoryDance:    model.CategoryDance,
	model.CategoryPainting: model.CategoryPainting,
	model.CategorySpeech:   model.CategorySpeech,
	model.CategoryMusic:    model.CategoryMusic,
	"舞蹈":                   model.CategoryDance,
	"美术":                   model.CategoryPainting,
	"口才":                   model.CategorySpeech,
	"音乐":                   model.CategoryMusic,
}

// UnmarshalJSON 接受字符串标签或数字编码
func (c *Category) UnmarshalJSON(data []byte) error {
	v, err := decodeFlexEnum(data, "课程类别", categoryByCode, categoryByLabel)
	if err != nil {
		return err
	}
	*c = Category(v)
	return nil
}

// Term 学期（spring | summer | autumn | winter）
type Term string

var termByCode = map[int]string{
	1: model.TermSpring,
	2: model.TermSummer,
	3: model.TermAutumn,
	4: model.TermWinter,
}

var termByLabel = map[string]string{
	model.TermSpring: model.TermSpring,
	model.TermSummer: model.TermSummer,
	model.TermAutumn: model.TermAutumn,
	model.TermWinter: model.TermWinter,
	"春季":             model.TermSpring,
	"暑期":             model.TermSummer,
	"秋季":             model.TermAutumn,
	"寒假":             model.TermWinter,
}

func (t *Term) UnmarshalJSON(data []byte) error {
	v, err := decodeFlexEnum(data, "学期", termByCode, termByLabel)
	if err != nil {
		return err
	}
	*t = Term(v)
	return nil
}

// CourseStatus 课程状态（draft | open | completed | archived）
type CourseStatus string

var courseStatusByCode = map[int]string{
	1: model.CourseStatusDraft,
	2: model.CourseStatusOpen,
	3: model.CourseStatusCompleted,
	4: model.CourseStatusArchived,
}

var courseStatusByLabel = map[string]string{
	model.CourseStatusDraft:     model.CourseStatusDraft,
	model.CourseStatusOpen:      model.CourseStatusOpen,
	model.CourseStatusCompleted: model.CourseStatusCompleted,
	model.CourseStatusArchived:  model.CourseStatusArchived,
}

func (s *CourseStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeFlexEnum(data, "课程状态", courseStatusByCode, courseStatusByLabel)
	if err != nil {
		return err
	}
	*s = CourseStatus(v)
	return nil
}

// LessonStatus 课节状态（pending | completed）
type LessonStatus string

var lessonStatusByCode = map[int]string{
	0: model.LessonStatusPending,
	1: model.LessonStatusCompleted,
}

var lessonStatusByLabel = map[string]string{
	model.LessonStatusPending:   model.LessonStatusPending,
	model.LessonStatusCompleted: model.LessonStatusCompleted,
}

func (s *LessonStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeFlexEnum(data, "课节状态", lessonStatusByCode, lessonStatusByLabel)
	if err != nil {
		return err
	}
	*s = LessonStatus(v)
	return nil
}

// OrderStatus 订单状态（unpaid | paid）
type OrderStatus string

var orderStatusByCode = map[int]string{
	0: model.OrderStatusUnpaid,
	1: model.OrderStatusPaid,
}

var orderStatusByLabel = map[string]string{
	model.OrderStatusUnpaid: model.OrderStatusUnpaid,
	model.OrderStatusPaid:   model.OrderStatusPaid,
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeFlexEnum(data, "订单状态", orderStatusByCode, orderStatusByLabel)
	if err != nil {
		return err
	}
	*s = OrderStatus(v)
	return nil
}
