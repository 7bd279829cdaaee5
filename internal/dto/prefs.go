package dto

// ── 计划偏好模块 ──

// UpdatePrefsRequest 部分更新计划偏好
type UpdatePrefsRequest struct {
	Timezone        *string `json:"timezone"          binding:"omitempty,max=64"`
	HorizonDays     *int    `json:"horizon_days"      binding:"omitempty,min=1,max=120"`
	ChunkMinutes    *int    `json:"chunk_minutes"     binding:"omitempty,min=15,max=240"`
	MaxDailyMinutes *int    `json:"max_daily_minutes" binding:"omitempty,min=30,max=960"`
	DueBufferHours  *int    `json:"due_buffer_hours"  binding:"omitempty,min=0,max=168"`
	SessionStart    *string `json:"session_start"     binding:"omitempty,len=5"`
}

// PrefsResponse 计划偏好响应
type PrefsResponse struct {
	Timezone        string `json:"timezone"`
	HorizonDays     int    `json:"horizon_days"`
	ChunkMinutes    int    `json:"chunk_minutes"`
	MaxDailyMinutes int    `json:"max_daily_minutes"`
	DueBufferHours  int    `json:"due_buffer_hours"`
	SessionStart    string `json:"session_start"`
	UpdatedAt       string `json:"updated_at"`
}
