package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arts-admin/backend/config"
	"arts-admin/backend/internal/api/handler"
	"arts-admin/backend/internal/api/middleware"
	"arts-admin/backend/internal/model"
	"arts-admin/backend/pkg/jwt"
	"arts-admin/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Import.MaxFileSize))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 后台全员角色（学员/教师无后台访问权限）
	staff := middleware.RoleAuth(model.RoleAdmin, model.RoleBoss)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// 以下均为后台管理接口
			admin := authorized.Group("")
			admin.Use(staff)

			// 学员模块
			students := admin.Group("/students")
			{
				students.GET("", h.Student.List)
				students.GET("/template", h.Student.DownloadTemplate)
				students.GET("/:id", h.Student.GetByID)
				students.POST("", h.Student.Create)
				students.POST("/import", h.Student.Import)
				students.DELETE("/:id", middleware.RoleAuth(model.RoleBoss), h.Student.Delete)
			}

			// 教师模块
			teachers := admin.Group("/teachers")
			{
				teachers.GET("", h.Teacher.List)
				teachers.GET("/:id", h.Teacher.GetByID)
				teachers.POST("", h.Teacher.Create)
				teachers.DELETE("/:id", middleware.RoleAuth(model.RoleBoss), h.Teacher.Delete)
			}

			// 课程模块（含课节对账与日历导出）
			courses := admin.Group("/courses")
			{
				courses.GET("", h.Course.List)
				courses.GET("/:id", h.Course.GetByID)
				courses.GET("/:id/calendar.ics", h.Course.ExportCalendar)
				courses.POST("", h.Course.Create)
				courses.PUT("/:id", h.Course.Update)
				courses.DELETE("/:id", middleware.RoleAuth(model.RoleBoss), h.Course.Delete)
			}

			// 订单模块
			orders := admin.Group("/orders")
			{
				orders.GET("", h.Order.List)
				orders.GET("/:id", h.Order.GetByID)
				orders.POST("", h.Order.Create)
				orders.PUT("/:id", h.Order.Update)
				orders.DELETE("/:id", middleware.RoleAuth(model.RoleBoss), h.Order.Delete)
			}

			// 请假模块
			leaves := admin.Group("/leaves")
			{
				leaves.GET("", h.Leave.List)
				leaves.POST("", h.Leave.Create)
			}

			// 统计模块
			admin.GET("/stats/dashboard", h.Stats.Dashboard)
		}
	}

	return r
}
