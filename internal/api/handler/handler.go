package handler

import "arts-admin/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Course  *CourseHandler
	Order   *OrderHandler
	Student *StudentHandler
	Teacher *TeacherHandler
	Leave   *LeaveHandler
	Stats   *StatsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Course:  NewCourseHandler(svc.Course, svc.Export),
		Order:   NewOrderHandler(svc.Order),
		Student: NewStudentHandler(svc.Student, svc.Export),
		Teacher: NewTeacherHandler(svc.Teacher),
		Leave:   NewLeaveHandler(svc.Leave),
		Stats:   NewStatsHandler(svc.Stats),
	}
}
