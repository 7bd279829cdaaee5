package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/service"
	"github.com/Jhart328/study-forge/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Upsert 新建/更新课程
// PUT /api/v1/courses
func (h *CourseHandler) Upsert(c *gin.Context) {
	var req dto.UpsertCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Get 课程详情
// GET /api/v1/courses/:code
func (h *CourseHandler) Get(c *gin.Context) {
	result, err := h.courseSvc.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// List 课程列表
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	result, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// SetWeights 设置课程成绩权重
// PUT /api/v1/courses/:code/weights
func (h *CourseHandler) SetWeights(c *gin.Context) {
	var req dto.SetWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.SetWeights(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除课程
// DELETE /api/v1/courses/:code
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courseSvc.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CourseHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 23001, "课程不存在")
	case errors.Is(err, service.ErrInvalidWeights):
		response.BadRequest(c, 23002, "成绩权重无效，应为 0–100 的整数")
	default:
		response.InternalError(c)
	}
}
