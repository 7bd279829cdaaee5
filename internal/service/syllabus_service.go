package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/config"
	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
	"github.com/Jhart328/study-forge/internal/repository"
	redispkg "github.com/Jhart328/study-forge/pkg/redis"
)

// ErrNothingExtracted 文本中未提取到任何计分项
var ErrNothingExtracted = errors.New("未提取到任何计分项")

// SyllabusService 教学大纲服务接口
type SyllabusService interface {
	Parse(ctx context.Context, req *dto.ParseSyllabusRequest) (*dto.ParseSyllabusResponse, error)
	Import(ctx context.Context, req *dto.ParseSyllabusRequest) (*dto.ImportSyllabusResponse, error)
}

type syllabusService struct {
	repo   *repository.Repository
	cache  *redispkg.Client
	cfg    *config.Config
	logger *zap.Logger
	nowFn  func() time.Time
}

// NewSyllabusService 创建教学大纲服务
func NewSyllabusService(repo *repository.Repository, cache *redispkg.Client, cfg *config.Config, logger *zap.Logger) SyllabusService {
	return &syllabusService{repo: repo, cache: cache, cfg: cfg, logger: logger, nowFn: time.Now}
}

// ════════════════════════════════════════════
// Parse 解析预览
//
// 只提取不入库，返回逐行结果供用户核对后再导入
// ════════════════════════════════════════════
func (s *syllabusService) Parse(ctx context.Context, req *dto.ParseSyllabusRequest) (*dto.ParseSyllabusResponse, error) {
	items, weights, lines, err := s.extract(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &dto.ParseSyllabusResponse{
		Items:   make([]dto.SyllabusItemResponse, 0, len(items)),
		Weights: weights,
		Lines:   make([]dto.LineOutcomeResponse, 0, len(lines)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SyllabusItemResponse{
			Course:     item.Course,
			Title:      item.Title,
			Type:       item.Type,
			DueAt:      item.DueAt.UTC().Format(time.RFC3339),
			EstMinutes: item.EstMinutes,
		})
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.LineOutcomeResponse{
			Line:    line.Line,
			Matched: line.Matched,
			Reason:  line.Reason,
		})
	}
	return resp, nil
}

// ════════════════════════════════════════════
// Import 提取并入库
//
// 批量写入任务；捕获到权重表时落到课程记录；
// 考试/测验/项目按类别估值种入学习目标。
// 导入后计划缓存失效。
// ════════════════════════════════════════════
func (s *syllabusService) Import(ctx context.Context, req *dto.ParseSyllabusRequest) (*dto.ImportSyllabusResponse, error) {
	items, weights, lines, err := s.extract(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNothingExtracted
	}

	assignments := make([]model.Assignment, 0, len(items))
	for _, item := range items {
		assignments = append(assignments, model.Assignment{
			AssignmentID: uuid.New().String(),
			Course:       item.Course,
			Title:        item.Title,
			Type:         item.Type,
			DueAt:        item.DueAt,
			EstMinutes:   item.EstMinutes,
		})
	}
	if err := s.repo.Assignment.BatchCreate(ctx, assignments); err != nil {
		return nil, err
	}

	// 重点类别预置学习目标，供追踪面板直接使用
	for i := range assignments {
		if !trackedType(assignments[i].Type) {
			continue
		}
		progress := &model.StudyProgress{
			AssignmentID:  assignments[i].AssignmentID,
			TargetMinutes: typeEstimate(assignments[i].Type),
		}
		if err := s.repo.Study.UpsertProgress(ctx, progress); err != nil {
			return nil, err
		}
	}

	weightsApplied := false
	if len(weights) > 0 {
		if err := s.applyWeights(ctx, normalizeCourseCode(req.Course), weights); err != nil {
			return nil, err
		}
		weightsApplied = true
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePlan(ctx); err != nil {
			s.logger.Warn("计划缓存失效失败", zap.Error(err))
		}
	}

	skipped := 0
	for _, line := range lines {
		if !line.Matched {
			skipped++
		}
	}

	s.logger.Info("教学大纲已导入",
		zap.String("course", req.Course),
		zap.Int("imported", len(assignments)),
		zap.Int("skipped_lines", skipped),
		zap.Bool("weights_applied", weightsApplied))

	resp := &dto.ImportSyllabusResponse{
		Imported:       len(assignments),
		SkippedLines:   skipped,
		WeightsApplied: weightsApplied,
		Assignments:    make([]dto.AssignmentResponse, 0, len(assignments)),
	}
	if weightsApplied {
		resp.Weights = weights
	}
	for i := range assignments {
		resp.Assignments = append(resp.Assignments, *assignmentToResponse(&assignments[i]))
	}
	return resp, nil
}

// extract 按偏好时区执行提取
func (s *syllabusService) extract(ctx context.Context, req *dto.ParseSyllabusRequest) ([]syllabusItem, model.WeightMap, []lineOutcome, error) {
	prefs, err := loadPrefs(ctx, s.repo, s.cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return nil, nil, nil, ErrInvalidPlannerPrefs
	}
	items, weights, lines := parseSyllabus(req.Text, req.Course, s.nowFn(), loc)
	return items, weights, lines, nil
}

// applyWeights 把捕获的权重表落到课程记录，课程不存在时顺带建档
func (s *syllabusService) applyWeights(ctx context.Context, code string, weights model.WeightMap) error {
	course, err := s.repo.Course.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		course = &model.Course{Code: code, Credits: 3}
	}
	course.Weights = datatypes.NewJSONType(weights)
	return s.repo.Course.Upsert(ctx, course)
}
