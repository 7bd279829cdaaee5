package dto

// ── 成绩模块响应 ──

// GradeProjectionResponse 课程成绩投影
// NeededAverage 为 nil 表示剩余权重已为 0，目标均分无意义
type GradeProjectionResponse struct {
	Course          string         `json:"course"`
	Weights         map[string]int `json:"weights"`
	AchievedPct     float64        `json:"achieved_pct"`
	RemainingWeight float64        `json:"remaining_weight_pct"`
	Target          float64        `json:"target"`
	NeededAverage   *float64       `json:"needed_average,omitempty"`
}

// DashboardResponse 仪表盘汇总
type DashboardResponse struct {
	TermGPA       *float64             `json:"term_gpa,omitempty"` // 无计分数据时为 nil
	CompletionPct float64              `json:"completion_pct"`
	Streak        StreakResponse       `json:"streak"`
	NextUp        *TrackerItemResponse `json:"next_up,omitempty"`
}
