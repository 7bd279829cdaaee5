package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jhart328/study-forge/config"
	"github.com/Jhart328/study-forge/internal/api/handler"
	"github.com/Jhart328/study-forge/internal/api/middleware"
)

// maxBodyBytes 请求体上限（大纲纯文本 + JSON 包装）
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 教学大纲模块
		syllabus := v1.Group("/syllabus")
		{
			syllabus.POST("/parse", h.Syllabus.Parse)
			syllabus.POST("/import", h.Syllabus.Import)
		}

		// 任务模块
		assignments := v1.Group("/assignments")
		{
			assignments.POST("", h.Assignment.Create)
			assignments.GET("", h.Assignment.List)
			assignments.GET("/:id", h.Assignment.Get)
			assignments.PATCH("/:id", h.Assignment.Update)
			assignments.DELETE("/:id", h.Assignment.Delete)
			assignments.POST("/:id/complete", h.Assignment.Complete)
			assignments.POST("/purge-completed", h.Assignment.PurgeCompleted)
		}

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.PUT("", h.Course.Upsert)
			courses.GET("", h.Course.List)
			courses.GET("/:code", h.Course.Get)
			courses.PUT("/:code/weights", h.Course.SetWeights)
			courses.DELETE("/:code", h.Course.Delete)
		}

		// 计划偏好模块
		prefs := v1.Group("/prefs")
		{
			prefs.GET("", h.Prefs.Get)
			prefs.PATCH("", h.Prefs.Update)
		}

		// 学习计划模块
		plan := v1.Group("/plan")
		{
			plan.POST("/generate", h.Plan.Generate)
			plan.GET("/week", h.Plan.Week)
			plan.GET("/export/ics", h.Export.ExportICS)
			plan.GET("/export/xlsx", h.Export.ExportXLSX)
		}

		// 学习追踪模块
		study := v1.Group("/study")
		{
			study.GET("/tracker", h.Study.Tracker)
			study.GET("/streak", h.Study.Streak)
			study.PUT("/:id/target", h.Study.SetTarget)
			study.POST("/:id/log", h.Study.LogMinutes)
		}

		// 成绩模块
		grades := v1.Group("/grades")
		{
			grades.GET("/:course/projection", h.Grade.Projection)
		}

		// 仪表盘
		v1.GET("/dashboard", h.Grade.Dashboard)
	}

	return r
}
