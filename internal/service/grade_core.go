package service

import (
	"math"

	"github.com/Jhart328/study-forge/internal/model"
)

// ── 成绩计算 ────────────────────────────────────────────────
//
// 全部为纯函数：输入已计分项与权重表，不触达存储。
// 百分比一律以 0–100 标度传递。
// ─────────────────────────────────────────────────────────────

// gradeProjection 按权重表计算已获得百分比与剩余权重
//
// 对权重表中每个类别：取该类别下 possible > 0 的计分项，
// 类别得分率 = Σscore / Σpossible，贡献 = 得分率 × 类别权重。
// 尚无计分数据的类别权重计入剩余。
func gradeProjection(assignments []model.Assignment, weights model.WeightMap) (achieved, remaining float64) {
	for cat, w := range weights {
		var score, possible float64
		for i := range assignments {
			if assignments[i].Type != cat || assignments[i].Possible <= 0 {
				continue
			}
			score += assignments[i].Score
			possible += assignments[i].Possible
		}
		if possible > 0 {
			achieved += score / possible * float64(w)
		} else {
			remaining += float64(w)
		}
	}
	return achieved, remaining
}

// neededAvgForTarget 达到目标总评所需的剩余部分平均得分率
//
// 剩余权重为 0 时返回 nil（目标已不可改变）。
// 结果钳制到 [0, 100]：已稳拿目标时为 0，数学上不可达时为 100。
func neededAvgForTarget(achieved, remaining, target float64) *float64 {
	if remaining <= 0 {
		return nil
	}
	needed := (target - achieved) / remaining * 100
	needed = math.Max(0, math.Min(100, needed))
	return &needed
}

// pctToGPA 百分比成绩映射到 4.0 绩点标度
func pctToGPA(pct float64) float64 {
	switch {
	case pct >= 93:
		return 4.0
	case pct >= 90:
		return 3.7
	case pct >= 87:
		return 3.3
	case pct >= 83:
		return 3.0
	case pct >= 80:
		return 2.7
	case pct >= 77:
		return 2.3
	case pct >= 73:
		return 2.0
	case pct >= 70:
		return 1.7
	case pct >= 67:
		return 1.3
	case pct >= 63:
		return 1.0
	case pct >= 60:
		return 0.7
	default:
		return 0.0
	}
}

// coursePct 课程当前百分比：已获得 + 剩余按已获得比例外推
//
// 剩余权重按当前已计分部分的得分率外推；完全无计分数据时返回 false
func coursePct(assignments []model.Assignment, weights model.WeightMap) (float64, bool) {
	achieved, remaining := gradeProjection(assignments, weights)
	graded := float64(weights.Sum()) - remaining
	if graded <= 0 {
		return 0, false
	}
	rate := achieved / graded
	return achieved + rate*remaining, true
}
