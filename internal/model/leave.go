package model

import "time"

// Leave 请假记录表 — 对应 leaves
// 只增不改：由请假流程创建，课节调整时仅作为删除约束被读取
type Leave struct {
	LeaveID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_id"`
	StudentID string    `gorm:"type:uuid;not null;index"                       json:"student_id"`
	LessonID  string    `gorm:"type:uuid;not null;index"                       json:"lesson_id"`
	Reason    string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Lesson  *Lesson  `gorm:"foreignKey:LessonID;references:LessonID"   json:"lesson,omitempty"`
}

// TableName 指定表名
func (Leave) TableName() string { return "leaves" }
