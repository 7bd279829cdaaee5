package dto

// ── 任务模块请求 ──

// CreateAssignmentRequest 手动创建任务
// DueDate 使用 YYYY-MM-DD，入库时按偏好时区补 23:59:00
type CreateAssignmentRequest struct {
	Course     string  `json:"course"      binding:"required,max=20"`
	Title      string  `json:"title"       binding:"required,max=200"`
	Type       string  `json:"type"        binding:"omitempty,max=20"`
	DueDate    string  `json:"due_date"    binding:"required,len=10"`
	EstMinutes *int    `json:"est_minutes" binding:"omitempty,min=1"`
	Score      float64 `json:"score"       binding:"omitempty,min=0"`
	Possible   float64 `json:"possible"    binding:"omitempty,min=0"`
}

// UpdateAssignmentRequest 部分更新任务
type UpdateAssignmentRequest struct {
	Course     *string  `json:"course"      binding:"omitempty,max=20"`
	Title      *string  `json:"title"       binding:"omitempty,max=200"`
	Type       *string  `json:"type"        binding:"omitempty,max=20"`
	DueDate    *string  `json:"due_date"    binding:"omitempty,len=10"`
	EstMinutes *int     `json:"est_minutes" binding:"omitempty,min=1"`
	Score      *float64 `json:"score"       binding:"omitempty,min=0"`
	Possible   *float64 `json:"possible"    binding:"omitempty,min=0"`
	Completed  *bool    `json:"completed"`
}

// ListAssignmentsRequest 任务列表查询（标题/课程/类别模糊搜索）
type ListAssignmentsRequest struct {
	PaginationRequest
	Query string `form:"query" binding:"omitempty,max=100"`
}

// ── 任务模块响应 ──

// AssignmentResponse 任务响应
type AssignmentResponse struct {
	ID         string  `json:"id"`
	Course     string  `json:"course"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	DueAt      string  `json:"due_at"`
	EstMinutes int     `json:"est_minutes"`
	Score      float64 `json:"score"`
	Possible   float64 `json:"possible"`
	Completed  bool    `json:"completed"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// PurgeCompletedResponse 清理已完成过期任务响应
type PurgeCompletedResponse struct {
	Removed int64 `json:"removed"`
}
