package model

import "time"

// Assignment 计分项表 — 对应 assignments
// 由教学大纲提取器或用户手动创建；due_at 缺失的记录不允许入库
type Assignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	Course       string    `gorm:"type:varchar(20);not null;index"                json:"course"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Type         string    `gorm:"type:varchar(20);not null;default:'homework'"   json:"type"` // exam | quiz | homework | project | reading | lab | essay | other
	DueAt        time.Time `gorm:"not null;index"                                 json:"due_at"`
	EstMinutes   int       `gorm:"not null;default:60"                            json:"est_minutes"`
	Score        float64   `gorm:"type:numeric(8,2);not null;default:0"           json:"score"`
	Possible     float64   `gorm:"type:numeric(8,2);not null;default:0"           json:"possible"`
	Completed    bool      `gorm:"not null;default:false"                         json:"completed"`
	BaseModel
}

func (Assignment) TableName() string { return "assignments" }

// [自证通过] internal/model/assignment.go
