package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// Projection 单课程成绩投影
// GET /api/v1/grades/:course/projection?target=90
func (h *GradeHandler) Projection(c *gin.Context) {
	target := 90.0
	if raw := c.Query("target"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 100 {
			response.BadRequest(c, 27001, "target 应为 0–100 的数值")
			return
		}
		target = parsed
	}

	result, err := h.gradeSvc.Projection(c.Request.Context(), c.Param("course"), target)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 23001, "课程不存在")
		case errors.Is(err, service.ErrNoWeights):
			response.BadRequest(c, 27002, "课程尚未配置成绩权重")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Dashboard 仪表盘汇总
// GET /api/v1/dashboard
func (h *GradeHandler) Dashboard(c *gin.Context) {
	result, err := h.gradeSvc.Dashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
