package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
	"github.com/Jhart328/study-forge/internal/repository"
)

var (
	// ErrCourseNotFound 课程不存在
	ErrCourseNotFound = errors.New("课程不存在")
	// ErrNoWeights 课程尚未配置成绩权重
	ErrNoWeights = errors.New("课程尚未配置成绩权重")
)

// GradeService 成绩投影服务接口
type GradeService interface {
	Projection(ctx context.Context, course string, target float64) (*dto.GradeProjectionResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type gradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
	nowFn  func() time.Time
}

// NewGradeService 创建成绩投影服务
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, logger: logger, nowFn: time.Now}
}

// ════════════════════════════════════════════
// Projection 单课程成绩投影
//
// 返回已获得百分比、剩余权重，以及达到目标总评
// 所需的剩余部分平均得分率（剩余为 0 时省略）。
// ════════════════════════════════════════════
func (s *gradeService) Projection(ctx context.Context, code string, target float64) (*dto.GradeProjectionResponse, error) {
	code = normalizeCourseCode(code)
	course, err := s.repo.Course.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	weights := course.Weights.Data()
	if len(weights) == 0 {
		return nil, ErrNoWeights
	}

	assignments, err := s.repo.Assignment.ListByCourse(ctx, code)
	if err != nil {
		return nil, err
	}

	achieved, remaining := gradeProjection(assignments, weights)

	return &dto.GradeProjectionResponse{
		Course:          code,
		Weights:         weights,
		AchievedPct:     round2(achieved),
		RemainingWeight: round2(remaining),
		Target:          target,
		NeededAverage:   roundPtr(neededAvgForTarget(achieved, remaining, target)),
	}, nil
}

// ════════════════════════════════════════════
// Dashboard 仪表盘汇总
//
// 学期 GPA 按学分加权，仅计入有计分数据的课程；
// 完成率为全部计分项中 completed 的比例。
// ════════════════════════════════════════════
func (s *gradeService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{}

	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		return nil, err
	}

	var gpaSum, creditSum float64
	for i := range courses {
		weights := courses[i].Weights.Data()
		if len(weights) == 0 {
			continue
		}
		assignments, err := s.repo.Assignment.ListByCourse(ctx, courses[i].Code)
		if err != nil {
			return nil, err
		}
		pct, ok := coursePct(assignments, weights)
		if !ok {
			continue
		}
		gpaSum += pctToGPA(pct) * courses[i].Credits
		creditSum += courses[i].Credits
	}
	if creditSum > 0 {
		gpa := round2(gpaSum / creditSum)
		resp.TermGPA = &gpa
	}

	all, err := s.repo.Assignment.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > 0 {
		done := 0
		for i := range all {
			if all[i].Completed {
				done++
			}
		}
		resp.CompletionPct = round2(float64(done) / float64(len(all)) * 100)
	}

	streak, err := s.repo.Study.GetStreak(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if streak == nil {
		streak = &model.Streak{}
	}
	resp.Streak = streakToResponse(streak)

	nextUp, err := s.nextUp(ctx)
	if err != nil {
		return nil, err
	}
	resp.NextUp = nextUp

	return resp, nil
}

// nextUp 最近一个未完成的重点任务（考试/测验/项目）
func (s *gradeService) nextUp(ctx context.Context) (*dto.TrackerItemResponse, error) {
	assignments, err := s.repo.Assignment.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	var pick *model.Assignment
	for i := range assignments {
		if !trackedType(assignments[i].Type) || assignments[i].DueAt.Before(now) {
			continue
		}
		if pick == nil || assignments[i].DueAt.Before(pick.DueAt) {
			pick = &assignments[i]
		}
	}
	if pick == nil {
		return nil, nil
	}

	item := dto.TrackerItemResponse{
		AssignmentID: pick.AssignmentID,
		Course:       pick.Course,
		Title:        pick.Title,
		Type:         pick.Type,
		DueAt:        pick.DueAt.UTC().Format(time.RFC3339),
	}
	progress, err := s.repo.Study.GetProgress(ctx, pick.AssignmentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if progress != nil {
		item.TargetMinutes = progress.TargetMinutes
		item.LoggedMinutes = progress.LoggedMinutes
	}
	return &item, nil
}

// trackedType 纳入学习追踪的任务类别
func trackedType(typ string) bool {
	return typ == model.TypeExam || typ == model.TypeQuiz || typ == model.TypeProject
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}

func streakToResponse(streak *model.Streak) dto.StreakResponse {
	badges := []string(streak.Badges)
	if badges == nil {
		badges = []string{}
	}
	return dto.StreakResponse{
		Current:  streak.Current,
		Longest:  streak.Longest,
		LastDate: streak.LastDate,
		Badges:   badges,
	}
}
