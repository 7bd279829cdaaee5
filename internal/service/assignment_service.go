package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/config"
	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
	"github.com/Jhart328/study-forge/internal/repository"
	redispkg "github.com/Jhart328/study-forge/pkg/redis"
)

var (
	// ErrAssignmentNotFound 任务不存在
	ErrAssignmentNotFound = errors.New("任务不存在")
	// ErrInvalidAssignmentType 未知的任务类别
	ErrInvalidAssignmentType = errors.New("任务类别无效")
)

// AssignmentService 任务服务接口
type AssignmentService interface {
	Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, req *dto.ListAssignmentsRequest) ([]dto.AssignmentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
	PurgeCompleted(ctx context.Context) (*dto.PurgeCompletedResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	cache  *redispkg.Client
	cfg    *config.Config
	logger *zap.Logger
	nowFn  func() time.Time
}

// NewAssignmentService 创建任务服务
func NewAssignmentService(repo *repository.Repository, cache *redispkg.Client, cfg *config.Config, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, cache: cache, cfg: cfg, logger: logger, nowFn: time.Now}
}

// ════════════════════════════════════════════
// Create 手动创建任务
//
// due_date 按偏好时区补 23:59:00 成为截止时刻；
// 类别缺省为 homework，预估分钟缺省为类别估值。
// ════════════════════════════════════════════
func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	typ := req.Type
	if typ == "" {
		typ = model.TypeHomework
	}
	if !model.IsValidType(typ) {
		return nil, ErrInvalidAssignmentType
	}

	dueAt, err := s.resolveDueDate(ctx, req.DueDate)
	if err != nil {
		return nil, err
	}

	estMinutes := typeEstimate(typ)
	if req.EstMinutes != nil {
		estMinutes = *req.EstMinutes
	}

	assignment := &model.Assignment{
		Course:     normalizeCourseCode(req.Course),
		Title:      req.Title,
		Type:       typ,
		DueAt:      dueAt,
		EstMinutes: estMinutes,
		Score:      req.Score,
		Possible:   req.Possible,
	}
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.invalidatePlan(ctx)
	s.logger.Info("任务已创建",
		zap.String("assignment_id", assignment.AssignmentID),
		zap.String("course", assignment.Course),
		zap.String("type", assignment.Type))

	return assignmentToResponse(assignment), nil
}

// ════════════════════════════════════════════
// Get 任务详情
// ════════════════════════════════════════════
func (s *assignmentService) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignmentToResponse(assignment), nil
}

// ════════════════════════════════════════════
// List 任务列表（分页 + 标题/课程/类别模糊搜索）
// ════════════════════════════════════════════
func (s *assignmentService) List(ctx context.Context, req *dto.ListAssignmentsRequest) ([]dto.AssignmentResponse, int64, error) {
	assignments, total, err := s.repo.Assignment.List(ctx, req.Query, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, *assignmentToResponse(&assignments[i]))
	}
	return out, total, nil
}

// ════════════════════════════════════════════
// Update 部分更新任务
//
// 为 nil 的字段保持原值；截止/预估/完成状态的变化
// 会使计划缓存失效。
// ════════════════════════════════════════════
func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if req.Type != nil {
		if !model.IsValidType(*req.Type) {
			return nil, ErrInvalidAssignmentType
		}
		assignment.Type = *req.Type
	}
	if req.Course != nil {
		assignment.Course = normalizeCourseCode(*req.Course)
	}
	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.DueDate != nil {
		dueAt, err := s.resolveDueDate(ctx, *req.DueDate)
		if err != nil {
			return nil, err
		}
		assignment.DueAt = dueAt
	}
	if req.EstMinutes != nil {
		assignment.EstMinutes = *req.EstMinutes
	}
	if req.Score != nil {
		assignment.Score = *req.Score
	}
	if req.Possible != nil {
		assignment.Possible = *req.Possible
	}
	if req.Completed != nil {
		assignment.Completed = *req.Completed
	}

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		return nil, err
	}

	s.invalidatePlan(ctx)
	return assignmentToResponse(assignment), nil
}

// ════════════════════════════════════════════
// Delete 删除任务及其学习进度
// ════════════════════════════════════════════
func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Assignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if err := s.repo.Study.DeleteProgress(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePlan(ctx)
	s.logger.Info("任务已删除", zap.String("assignment_id", id))
	return nil
}

// ════════════════════════════════════════════
// PurgeCompleted 清理已完成且已过截止时间的任务
// ════════════════════════════════════════════
func (s *assignmentService) PurgeCompleted(ctx context.Context) (*dto.PurgeCompletedResponse, error) {
	removed, err := s.repo.Assignment.DeletePastDueCompleted(ctx, s.nowFn())
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		s.invalidatePlan(ctx)
		s.logger.Info("已清理过期完成任务", zap.Int64("removed", removed))
	}
	return &dto.PurgeCompletedResponse{Removed: removed}, nil
}

// resolveDueDate 把 YYYY-MM-DD 解析为偏好时区下当日 23:59:00
func (s *assignmentService) resolveDueDate(ctx context.Context, date string) (time.Time, error) {
	prefs, err := loadPrefs(ctx, s.repo, s.cfg)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return time.Time{}, ErrInvalidPlannerPrefs
	}
	day, err := time.ParseInLocation(dayLayout, date, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, loc), nil
}

func (s *assignmentService) invalidatePlan(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePlan(ctx); err != nil {
		s.logger.Warn("计划缓存失效失败", zap.Error(err))
	}
}

func assignmentToResponse(a *model.Assignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:         a.AssignmentID,
		Course:     a.Course,
		Title:      a.Title,
		Type:       a.Type,
		DueAt:      a.DueAt.UTC().Format(time.RFC3339),
		EstMinutes: a.EstMinutes,
		Score:      a.Score,
		Possible:   a.Possible,
		Completed:  a.Completed,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
}
