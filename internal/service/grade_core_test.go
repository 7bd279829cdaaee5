package service

import (
	"math"
	"testing"

	"github.com/Jhart328/study-forge/internal/model"
)

func gradedAssignment(typ string, score, possible float64) model.Assignment {
	return model.Assignment{
		AssignmentID: "asg-" + typ,
		Course:       "CS301",
		Title:        "Graded " + typ,
		Type:         typ,
		Score:        score,
		Possible:     possible,
	}
}

// ── 投影 ──

func TestGradeProjection_PartialGrades(t *testing.T) {
	weights := model.WeightMap{"homework": 60, "exam": 40}
	assignments := []model.Assignment{
		gradedAssignment("homework", 90, 100),
	}

	achieved, remaining := gradeProjection(assignments, weights)
	if math.Abs(achieved-54) > 1e-9 {
		t.Errorf("期望achieved=54，实际=%f", achieved)
	}
	if math.Abs(remaining-40) > 1e-9 {
		t.Errorf("期望remaining=40，实际=%f", remaining)
	}
}

func TestGradeProjection_CategoryAggregation(t *testing.T) {
	// 同类多条：按总分合并而非逐条平均
	weights := model.WeightMap{"quiz": 100}
	assignments := []model.Assignment{
		gradedAssignment("quiz", 8, 10),
		{AssignmentID: "q2", Type: "quiz", Score: 2, Possible: 10},
	}

	achieved, remaining := gradeProjection(assignments, weights)
	if math.Abs(achieved-50) > 1e-9 {
		t.Errorf("期望achieved=50（10/20），实际=%f", achieved)
	}
	if remaining != 0 {
		t.Errorf("期望remaining=0，实际=%f", remaining)
	}
}

func TestGradeProjection_UngradedIgnored(t *testing.T) {
	// possible=0 视为未计分，类别权重计入剩余
	weights := model.WeightMap{"exam": 40, "homework": 60}
	assignments := []model.Assignment{
		gradedAssignment("exam", 0, 0),
	}

	achieved, remaining := gradeProjection(assignments, weights)
	if achieved != 0 {
		t.Errorf("期望achieved=0，实际=%f", achieved)
	}
	if math.Abs(remaining-100) > 1e-9 {
		t.Errorf("期望remaining=100，实际=%f", remaining)
	}
}

// ── 目标均分 ──

func TestNeededAvgForTarget_Basic(t *testing.T) {
	needed := neededAvgForTarget(54, 40, 90)
	if needed == nil {
		t.Fatal("剩余权重>0时不应返回nil")
	}
	if math.Abs(*needed-90) > 1e-9 {
		t.Errorf("期望needed=90，实际=%f", *needed)
	}
}

func TestNeededAvgForTarget_NilWhenNothingRemains(t *testing.T) {
	if needed := neededAvgForTarget(85, 0, 90); needed != nil {
		t.Errorf("剩余权重=0时应返回nil，实际=%f", *needed)
	}
}

func TestNeededAvgForTarget_ClampedToZero(t *testing.T) {
	// 目标已稳拿
	needed := neededAvgForTarget(54, 40, 50)
	if needed == nil || *needed != 0 {
		t.Errorf("目标已达成时应钳制为0，实际=%v", needed)
	}
}

func TestNeededAvgForTarget_ClampedToHundred(t *testing.T) {
	// 数学上不可达
	needed := neededAvgForTarget(20, 40, 100)
	if needed == nil || *needed != 100 {
		t.Errorf("不可达目标应钳制为100，实际=%v", needed)
	}
}

// ── GPA 映射 ──

func TestPctToGPA_Boundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want float64
	}{
		{100, 4.0},
		{93, 4.0},
		{92.9, 3.7},
		{90, 3.7},
		{87, 3.3},
		{83, 3.0},
		{80, 2.7},
		{77, 2.3},
		{73, 2.0},
		{70, 1.7},
		{67, 1.3},
		{63, 1.0},
		{60, 0.7},
		{59.9, 0.0},
		{0, 0.0},
	}
	for _, tc := range cases {
		if got := pctToGPA(tc.pct); got != tc.want {
			t.Errorf("pctToGPA(%.1f)=%.1f，期望=%.1f", tc.pct, got, tc.want)
		}
	}
}

// ── 课程当前百分比外推 ──

func TestCoursePct_Extrapolates(t *testing.T) {
	weights := model.WeightMap{"homework": 60, "exam": 40}
	assignments := []model.Assignment{
		gradedAssignment("homework", 90, 100),
	}

	pct, ok := coursePct(assignments, weights)
	if !ok {
		t.Fatal("有计分数据时应返回百分比")
	}
	// 已获得54/60=0.9，外推剩余40 → 54 + 0.9*40 = 90
	if math.Abs(pct-90) > 1e-9 {
		t.Errorf("期望外推百分比=90，实际=%f", pct)
	}
}

func TestCoursePct_NoDataReturnsFalse(t *testing.T) {
	weights := model.WeightMap{"exam": 100}
	if _, ok := coursePct(nil, weights); ok {
		t.Error("完全无计分数据时应返回false")
	}
}
