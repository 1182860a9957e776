package model

import "time"

// ── 用户角色 ──

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleBoss    = "boss"
)

// User 用户表 — 对应 users
// 学员/教师在此表之上各有一张 1:1 扩展档案表
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Phone        string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"phone"`
	Email        string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Gender       int    `gorm:"type:smallint;not null;default:0"               json:"gender"` // 0=未知 1=男 2=女
	Role         string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Student 学员档案表 — 对应 students（users 的 1:1 扩展）
type Student struct {
	StudentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	Birthday  *time.Time `gorm:"type:date"                                      json:"birthday,omitempty"`

	// 监护人信息（最多两位）
	Guardian1Name     string `gorm:"type:varchar(100)" json:"guardian1_name,omitempty"`
	Guardian1Phone    string `gorm:"type:varchar(20)"  json:"guardian1_phone,omitempty"`
	Guardian1Relation string `gorm:"type:varchar(20)"  json:"guardian1_relation,omitempty"`
	Guardian2Name     string `gorm:"type:varchar(100)" json:"guardian2_name,omitempty"`
	Guardian2Phone    string `gorm:"type:varchar(20)"  json:"guardian2_phone,omitempty"`
	Guardian2Relation string `gorm:"type:varchar(20)"  json:"guardian2_relation,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Student) TableName() string { return "students" }

// Teacher 教师档案表 — 对应 teachers（users 的 1:1 扩展）
type Teacher struct {
	TeacherID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	Position  string `gorm:"type:varchar(50)"                               json:"position,omitempty"` // full_time | part_time
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Teacher) TableName() string { return "teachers" }
