package model

import "time"

// ── 课程枚举取值 ──

const (
	CategoryDance    = "dance"    // 舞蹈
	CategoryPainting = "painting" // 美术
	CategorySpeech   = "speech"   // 口才
	CategoryMusic    = "music"    // 音乐
)

const (
	TermSpring = "spring"
	TermSummer = "summer"
	TermAutumn = "autumn"
	TermWinter = "winter"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusOpen      = "open"
	CourseStatusCompleted = "completed"
	CourseStatusArchived  = "archived"
)

const (
	LessonStatusPending   = "pending"
	LessonStatusCompleted = "completed"
)

// Course 课程表 — 对应 courses
// 价格以最小货币单位（分）存储，展示层再除以 100
type Course struct {
	CourseID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Title     string `gorm:"type:varchar(100);not null"                     json:"title"`
	Subtitle  string `gorm:"type:varchar(200)"                              json:"subtitle,omitempty"`
	Category  string `gorm:"type:varchar(20);not null"                      json:"category"` // dance | painting | speech | music
	Year      int    `gorm:"type:smallint;not null"                         json:"year"`
	Term      string `gorm:"type:varchar(10);not null"                      json:"term"` // spring | summer | autumn | winter
	Price     int64  `gorm:"not null;default:0"                             json:"price"`
	TeacherID string `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Address   string `gorm:"type:varchar(200)"                              json:"address,omitempty"`
	Status    string `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | open | completed | archived
	BaseModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID"           json:"teacher,omitempty"`
	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"     json:"lessons,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// Lesson 课节表 — 对应 lessons
// 删除受请假记录约束：存在关联 Leave 时禁止删除（Service 层前置校验）
type Lesson struct {
	LessonID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	CourseID  string    `gorm:"type:uuid;not null;index"                       json:"course_id"`
	Title     string    `gorm:"type:varchar(100);not null"                     json:"title"`
	Subtitle  string    `gorm:"type:varchar(200)"                              json:"subtitle,omitempty"`
	StartTime time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime   time.Time `gorm:"not null"                                       json:"end_time"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | completed
	BaseModel
}

func (Lesson) TableName() string { return "lessons" }
