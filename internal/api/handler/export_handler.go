package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportICS 导出学习计划为 iCalendar
// GET /api/v1/plan/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeAttachment(c, filename, contentTypeICS, buf.Bytes())
}

// ExportXLSX 导出学习计划为 Excel
// GET /api/v1/plan/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeAttachment(c, filename, contentTypeXLSX, buf.Bytes())
}

func writeAttachment(c *gin.Context, filename, contentType string, payload []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
	c.Data(http.StatusOK, contentType, payload)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmptyPlan):
		response.NotFound(c, 28001, "当前没有可导出的学习计划")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	case errors.Is(err, service.ErrInvalidPlannerPrefs):
		response.BadRequest(c, 25001, "计划偏好无效")
	case errors.Is(err, service.ErrAssignmentNoDueDate):
		response.Conflict(c, 25002, "存在缺少截止时间的任务，无法排程")
	default:
		response.InternalError(c)
	}
}
