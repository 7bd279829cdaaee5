package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

// PrefsHandler 计划偏好模块 HTTP 处理器
type PrefsHandler struct {
	prefsSvc service.PrefsService
}

// NewPrefsHandler 创建 PrefsHandler
func NewPrefsHandler(prefsSvc service.PrefsService) *PrefsHandler {
	return &PrefsHandler{prefsSvc: prefsSvc}
}

// Get 获取计划偏好
// GET /api/v1/prefs
func (h *PrefsHandler) Get(c *gin.Context) {
	result, err := h.prefsSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 部分更新计划偏好
// PATCH /api/v1/prefs
func (h *PrefsHandler) Update(c *gin.Context) {
	var req dto.UpdatePrefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.prefsSvc.Update(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimezone) {
			response.BadRequest(c, 24001, "时区无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
