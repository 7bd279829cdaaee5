package dto

// ── 课程模块请求 ──

// UpsertCourseRequest 新建/更新课程
type UpsertCourseRequest struct {
	Code    string  `json:"code"    binding:"required,max=20"`
	Credits float64 `json:"credits" binding:"omitempty,min=0.5,max=8"`
}

// SetWeightsRequest 设置课程成绩权重
type SetWeightsRequest struct {
	Weights map[string]int `json:"weights" binding:"required"`
}

// ── 课程模块响应 ──

// CourseResponse 课程响应
type CourseResponse struct {
	Code      string         `json:"code"`
	Credits   float64        `json:"credits"`
	Weights   map[string]int `json:"weights"`
	UpdatedAt string         `json:"updated_at"`
}
