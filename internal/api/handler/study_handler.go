package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

// StudyHandler 学习追踪模块 HTTP 处理器
type StudyHandler struct {
	studySvc service.StudyService
}

// NewStudyHandler 创建 StudyHandler
func NewStudyHandler(studySvc service.StudyService) *StudyHandler {
	return &StudyHandler{studySvc: studySvc}
}

// Tracker 学习追踪列表
// GET /api/v1/study/tracker
func (h *StudyHandler) Tracker(c *gin.Context) {
	result, err := h.studySvc.Tracker(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// SetTarget 设置学习目标分钟数
// PUT /api/v1/study/:id/target
func (h *StudyHandler) SetTarget(c *gin.Context) {
	var req dto.SetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.studySvc.SetTarget(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// LogMinutes 记录学习分钟数
// POST /api/v1/study/:id/log
func (h *StudyHandler) LogMinutes(c *gin.Context) {
	var req dto.LogMinutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.studySvc.LogMinutes(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Streak 连续学习状态
// GET /api/v1/study/streak
func (h *StudyHandler) Streak(c *gin.Context) {
	result, err := h.studySvc.Streak(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

func (h *StudyHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 22001, "任务不存在")
	case errors.Is(err, service.ErrNotTrackable):
		response.BadRequest(c, 26001, "仅考试/测验/项目可纳入学习追踪")
	default:
		response.InternalError(c)
	}
}
