package dto

// ── 学习追踪模块请求 ──

// SetTargetRequest 设置学习目标分钟数
type SetTargetRequest struct {
	TargetMinutes int `json:"target_minutes" binding:"required,min=1,max=1000"`
}

// LogMinutesRequest 记录学习分钟数
type LogMinutesRequest struct {
	Minutes int `json:"minutes" binding:"required,min=1,max=240"`
}

// ── 学习追踪模块响应 ──

// TrackerItemResponse 追踪列表中的一项（即将到来的考试/测验/项目）
type TrackerItemResponse struct {
	AssignmentID  string `json:"assignment_id"`
	Course        string `json:"course"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	DueAt         string `json:"due_at"`
	TargetMinutes int    `json:"target_minutes"`
	LoggedMinutes int    `json:"logged_minutes"`
}

// StreakResponse 连续学习状态响应
type StreakResponse struct {
	Current  int      `json:"current"`
	Longest  int      `json:"longest"`
	LastDate string   `json:"last_date"`
	Badges   []string `json:"badges"`
}

// LogMinutesResponse 记录学习后的最新进度与连续状态
type LogMinutesResponse struct {
	Progress TrackerItemResponse `json:"progress"`
	Streak   StreakResponse      `json:"streak"`
}
