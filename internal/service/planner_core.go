package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
)

// ── 排程引擎 ────────────────────────────────────────────────
//
// 职责：把一组计分项与时间预算偏好转为逐日学习块序列。
//
// 设计决策：
//   - 容量表覆盖 [今天, 今天+horizon]，每日初始化为 max_daily_minutes
//   - 任务按 (截止时间升序, 类别优先级降序) 稳定排序，先处理者先占容量
//   - 从 截止时间−due_buffer 所在日开始向过去逐日回填，
//     每日分配 min(chunk, 剩余需求, 当日余量)
//   - 回填越出容量表后仍有剩余需求时，在实际截止日落一条
//     [OVERFLOW] 块承载全部未排分钟数；溢出是信号而非失败
//   - 给定相同输入与相同 now，输出序列完全可复现
// ─────────────────────────────────────────────────────────────

const dayLayout = "2006-01-02"

var (
	// ErrInvalidPlannerPrefs 计划偏好配置错误（非正的 horizon/chunk/cap）
	ErrInvalidPlannerPrefs = errors.New("计划偏好无效")
	// ErrAssignmentNoDueDate 任务缺少有效截止时间，排程拒绝处理
	ErrAssignmentNoDueDate = errors.New("任务缺少有效截止时间")
)

// typePriorities 类别排程优先级：截止时间相同时高优先级先占容量
var typePriorities = map[string]int{
	model.TypeExam:     3,
	model.TypeProject:  2,
	model.TypeQuiz:     2,
	model.TypeLab:      2,
	model.TypeEssay:    2,
	model.TypeHomework: 1,
	model.TypeReading:  1,
}

func typePriority(typ string) int {
	if p, ok := typePriorities[typ]; ok {
		return p
	}
	return 1
}

// planSessions 生成学习块序列
//
// 纯函数：不触达存储，now 由调用方注入以保证可复现
func planSessions(assignments []model.Assignment, prefs *model.PlannerPrefs, now time.Time) ([]dto.StudySession, error) {
	if prefs.HorizonDays <= 0 {
		return nil, fmt.Errorf("%w: horizon_days=%d", ErrInvalidPlannerPrefs, prefs.HorizonDays)
	}
	if prefs.ChunkMinutes <= 0 {
		return nil, fmt.Errorf("%w: chunk_minutes=%d", ErrInvalidPlannerPrefs, prefs.ChunkMinutes)
	}
	if prefs.MaxDailyMinutes <= 0 {
		return nil, fmt.Errorf("%w: max_daily_minutes=%d", ErrInvalidPlannerPrefs, prefs.MaxDailyMinutes)
	}

	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone=%q", ErrInvalidPlannerPrefs, prefs.Timezone)
	}

	for i := range assignments {
		if assignments[i].DueAt.IsZero() {
			return nil, fmt.Errorf("%w: %s (%s)", ErrAssignmentNoDueDate, assignments[i].AssignmentID, assignments[i].Title)
		}
	}

	// 容量表：日期 → 当日剩余分钟数
	today := startOfDay(now.In(loc))
	caps := make(map[string]int, prefs.HorizonDays+1)
	for i := 0; i <= prefs.HorizonDays; i++ {
		caps[today.AddDate(0, 0, i).Format(dayLayout)] = prefs.MaxDailyMinutes
	}

	// 稳定排序：截止时间升序，同刻高优先级在前，其余保持输入顺序
	tasks := make([]model.Assignment, len(assignments))
	copy(tasks, assignments)
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].DueAt.Equal(tasks[j].DueAt) {
			return tasks[i].DueAt.Before(tasks[j].DueAt)
		}
		return typePriority(tasks[i].Type) > typePriority(tasks[j].Type)
	})

	var out []dto.StudySession
	buffer := time.Duration(prefs.DueBufferHours) * time.Hour

	for _, a := range tasks {
		due := a.DueAt.In(loc)
		target := due.Add(-buffer)
		need := a.EstMinutes
		if need <= 0 {
			need = typeEstimate(a.Type)
		}

		day := startOfDay(target)
		for need > 0 {
			key := day.Format(dayLayout)
			capLeft, inHorizon := caps[key]
			if !inHorizon {
				break
			}
			take := min(prefs.ChunkMinutes, need, capLeft)
			if take > 0 {
				out = append(out, dto.StudySession{
					AssignmentID: a.AssignmentID,
					Label:        sessionLabel(&a),
					Date:         key,
					Minutes:      take,
				})
				caps[key] -= take
				need -= take
			}
			day = day.AddDate(0, 0, -1)
		}

		// 剩余需求整体落在实际截止日，由调用方向用户示警
		if need > 0 {
			out = append(out, dto.StudySession{
				AssignmentID: a.AssignmentID,
				Label:        fmt.Sprintf("[OVERFLOW] %s: %s", a.Course, a.Title),
				Date:         due.Format(dayLayout),
				Minutes:      need,
				Overflow:     true,
			})
		}
	}

	return out, nil
}

// sessionLabel 常规学习块标签：[课程] 标题 — 类别
func sessionLabel(a *model.Assignment) string {
	return fmt.Sprintf("[%s] %s — %s", a.Course, a.Title, titleize(a.Type))
}

// titleize 首字母大写（类别展示用）
func titleize(s string) string {
	if s == "" {
		return "Study"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// startOfDay 截断到当日零点（保留时区）
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
