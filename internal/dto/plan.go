package dto

// ── 学习计划模块 ──

// StudySession 排定的一次学习块
// 无独立生命周期：每次生成计划时整体替换，溢出块以 [OVERFLOW] 前缀标记
type StudySession struct {
	AssignmentID string `json:"assignment_id"`
	Label        string `json:"label"`
	Date         string `json:"date"` // YYYY-MM-DD
	Minutes      int    `json:"minutes"`
	Overflow     bool   `json:"overflow"`
}

// PlanResponse 计划生成响应
type PlanResponse struct {
	Sessions    []StudySession `json:"sessions"`
	HasOverflow bool           `json:"has_overflow"`
	GeneratedAt string         `json:"generated_at"`
}

// WeekRequest 周视图请求
type WeekRequest struct {
	Start string `form:"start" binding:"omitempty,len=10"` // YYYY-MM-DD，缺省为今天
}

// WeekDayResponse 周视图中的一天
type WeekDayResponse struct {
	Date     string         `json:"date"`
	Sessions []StudySession `json:"sessions"`
	Total    int            `json:"total_minutes"`
}

// WeekResponse 周视图响应
type WeekResponse struct {
	Days []WeekDayResponse `json:"days"`
}
