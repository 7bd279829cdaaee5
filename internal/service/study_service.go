package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/config"
	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
	"github.com/Jhart328/study-forge/internal/repository"
)

// ErrNotTrackable 仅考试/测验/项目可纳入学习追踪
var ErrNotTrackable = errors.New("该类别任务不纳入学习追踪")

// badgeThresholds 连续天数阈值从高到低，首个达标者生效
var badgeThresholds = []struct {
	days  int
	badge string
}{
	{30, "diamond"},
	{14, "gold"},
	{7, "silver"},
	{3, "bronze"},
}

// StudyService 学习追踪服务接口
type StudyService interface {
	Tracker(ctx context.Context) ([]dto.TrackerItemResponse, error)
	SetTarget(ctx context.Context, assignmentID string, req *dto.SetTargetRequest) (*dto.TrackerItemResponse, error)
	LogMinutes(ctx context.Context, assignmentID string, req *dto.LogMinutesRequest) (*dto.LogMinutesResponse, error)
	Streak(ctx context.Context) (*dto.StreakResponse, error)
}

type studyService struct {
	repo   *repository.Repository
	cfg    *config.Config
	logger *zap.Logger
	nowFn  func() time.Time
}

// NewStudyService 创建学习追踪服务
func NewStudyService(repo *repository.Repository, cfg *config.Config, logger *zap.Logger) StudyService {
	return &studyService{repo: repo, cfg: cfg, logger: logger, nowFn: time.Now}
}

// ════════════════════════════════════════════
// Tracker 学习追踪列表
//
// 未完成的考试/测验/项目按截止时间升序，附带进度
// ════════════════════════════════════════════
func (s *studyService) Tracker(ctx context.Context) ([]dto.TrackerItemResponse, error) {
	assignments, err := s.repo.Assignment.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}

	var tracked []model.Assignment
	ids := make([]string, 0, len(assignments))
	for i := range assignments {
		if trackedType(assignments[i].Type) {
			tracked = append(tracked, assignments[i])
			ids = append(ids, assignments[i].AssignmentID)
		}
	}
	sort.SliceStable(tracked, func(i, j int) bool {
		return tracked[i].DueAt.Before(tracked[j].DueAt)
	})

	progressList, err := s.repo.Study.ListProgress(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.StudyProgress, len(progressList))
	for i := range progressList {
		byID[progressList[i].AssignmentID] = &progressList[i]
	}

	out := make([]dto.TrackerItemResponse, 0, len(tracked))
	for i := range tracked {
		item := dto.TrackerItemResponse{
			AssignmentID: tracked[i].AssignmentID,
			Course:       tracked[i].Course,
			Title:        tracked[i].Title,
			Type:         tracked[i].Type,
			DueAt:        tracked[i].DueAt.UTC().Format(time.RFC3339),
		}
		if p, ok := byID[tracked[i].AssignmentID]; ok {
			item.TargetMinutes = p.TargetMinutes
			item.LoggedMinutes = p.LoggedMinutes
		}
		out = append(out, item)
	}
	return out, nil
}

// ════════════════════════════════════════════
// SetTarget 设置任务的学习目标分钟数
// ════════════════════════════════════════════
func (s *studyService) SetTarget(ctx context.Context, assignmentID string, req *dto.SetTargetRequest) (*dto.TrackerItemResponse, error) {
	assignment, progress, err := s.loadTracked(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	progress.TargetMinutes = req.TargetMinutes
	if err := s.repo.Study.UpsertProgress(ctx, progress); err != nil {
		return nil, err
	}

	return s.trackerItem(assignment, progress), nil
}

// ════════════════════════════════════════════
// LogMinutes 记录学习分钟数并推进连续状态
//
// 连续规则（按偏好时区的本地日期）：
//   - 当天已记录过：分钟数累加，连续天数不变
//   - 上次记录在昨天：连续天数 +1
//   - 否则：连续天数重置为 1
//
// 徽章只增不减，按当前连续天数取最高达标档
// ════════════════════════════════════════════
func (s *studyService) LogMinutes(ctx context.Context, assignmentID string, req *dto.LogMinutesRequest) (*dto.LogMinutesResponse, error) {
	assignment, progress, err := s.loadTracked(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	progress.LoggedMinutes += req.Minutes
	if err := s.repo.Study.UpsertProgress(ctx, progress); err != nil {
		return nil, err
	}

	streak, err := s.bumpStreak(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("学习记录已登记",
		zap.String("assignment_id", assignmentID),
		zap.Int("minutes", req.Minutes),
		zap.Int("streak", streak.Current))

	return &dto.LogMinutesResponse{
		Progress: *s.trackerItem(assignment, progress),
		Streak:   streakToResponse(streak),
	}, nil
}

// ════════════════════════════════════════════
// Streak 当前连续学习状态
// ════════════════════════════════════════════
func (s *studyService) Streak(ctx context.Context) (*dto.StreakResponse, error) {
	streak, err := s.repo.Study.GetStreak(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp := streakToResponse(&model.Streak{})
			return &resp, nil
		}
		return nil, err
	}
	resp := streakToResponse(streak)
	return &resp, nil
}

// loadTracked 加载任务并校验类别可追踪，返回现有或零值进度
func (s *studyService) loadTracked(ctx context.Context, assignmentID string) (*model.Assignment, *model.StudyProgress, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAssignmentNotFound
		}
		return nil, nil, err
	}
	if !trackedType(assignment.Type) {
		return nil, nil, ErrNotTrackable
	}

	progress, err := s.repo.Study.GetProgress(ctx, assignmentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		progress = &model.StudyProgress{AssignmentID: assignmentID}
	}
	return assignment, progress, nil
}

// bumpStreak 按本地日期推进连续状态并补发徽章
func (s *studyService) bumpStreak(ctx context.Context) (*model.Streak, error) {
	prefs, err := loadPrefs(ctx, s.repo, s.cfg)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return nil, ErrInvalidPlannerPrefs
	}

	streak, err := s.repo.Study.GetStreak(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		streak = &model.Streak{}
	}

	today := s.nowFn().In(loc).Format(dayLayout)
	yesterday := s.nowFn().In(loc).AddDate(0, 0, -1).Format(dayLayout)

	switch streak.LastDate {
	case today:
		// 当天重复记录不推进
	case yesterday:
		streak.Current++
		streak.LastDate = today
	default:
		streak.Current = 1
		streak.LastDate = today
	}
	if streak.Current > streak.Longest {
		streak.Longest = streak.Current
	}

	for _, t := range badgeThresholds {
		if streak.Current >= t.days {
			if !streak.HasBadge(t.badge) {
				streak.Badges = append(streak.Badges, t.badge)
				s.logger.Info("解锁学习徽章", zap.String("badge", t.badge), zap.Int("days", streak.Current))
			}
			break
		}
	}

	if err := s.repo.Study.SaveStreak(ctx, streak); err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *studyService) trackerItem(a *model.Assignment, p *model.StudyProgress) *dto.TrackerItemResponse {
	return &dto.TrackerItemResponse{
		AssignmentID:  a.AssignmentID,
		Course:        a.Course,
		Title:         a.Title,
		Type:          a.Type,
		DueAt:         a.DueAt.UTC().Format(time.RFC3339),
		TargetMinutes: p.TargetMinutes,
		LoggedMinutes: p.LoggedMinutes,
	}
}
