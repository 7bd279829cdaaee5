package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

// PlanHandler 学习计划模块 HTTP 处理器
type PlanHandler struct {
	plannerSvc service.PlannerService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(plannerSvc service.PlannerService) *PlanHandler {
	return &PlanHandler{plannerSvc: plannerSvc}
}

// Generate 重新生成学习计划
// POST /api/v1/plan/generate
func (h *PlanHandler) Generate(c *gin.Context) {
	result, err := h.plannerSvc.Generate(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Week 周视图
// GET /api/v1/plan/week?start=YYYY-MM-DD
func (h *PlanHandler) Week(c *gin.Context) {
	var req dto.WeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.plannerSvc.Week(c.Request.Context(), req.Start)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *PlanHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPlannerPrefs):
		response.BadRequest(c, 25001, "计划偏好无效")
	case errors.Is(err, service.ErrAssignmentNoDueDate):
		response.Conflict(c, 25002, "存在缺少截止时间的任务，无法排程")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 25003, "日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
