package dto

// ── 教学大纲模块请求 ──

// ParseSyllabusRequest 大纲解析/导入请求
// Text 为外部文档读取器解码后的纯文本
type ParseSyllabusRequest struct {
	Text   string `json:"text"   binding:"required"`
	Course string `json:"course" binding:"required,max=20"`
}

// ── 教学大纲模块响应 ──

// SyllabusItemResponse 提取出的单个计分项（预览，未入库）
type SyllabusItemResponse struct {
	Course     string `json:"course"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	DueAt      string `json:"due_at"`
	EstMinutes int    `json:"est_minutes"`
}

// LineOutcomeResponse 单行解析结果
// 提取器按行尽力而为，未匹配的行不是错误，但结果需可观测
type LineOutcomeResponse struct {
	Line    int    `json:"line"`
	Matched bool   `json:"matched"`
	Reason  string `json:"reason,omitempty"`
}

// ParseSyllabusResponse 解析预览响应
type ParseSyllabusResponse struct {
	Items   []SyllabusItemResponse `json:"items"`
	Weights map[string]int         `json:"weights"`
	Lines   []LineOutcomeResponse  `json:"lines"`
}

// ImportSyllabusResponse 导入响应
type ImportSyllabusResponse struct {
	Imported       int            `json:"imported"`
	SkippedLines   int            `json:"skipped_lines"`
	WeightsApplied bool           `json:"weights_applied"`
	Weights        map[string]int `json:"weights,omitempty"`
	Assignments    []AssignmentResponse `json:"assignments"`
}
