package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
	"github.com/Jhart328/study-forge/internal/repository"
)

// ErrInvalidWeights 权重表含非法值
var ErrInvalidWeights = errors.New("成绩权重无效")

// CourseService 课程服务接口
type CourseService interface {
	Upsert(ctx context.Context, req *dto.UpsertCourseRequest) (*dto.CourseResponse, error)
	Get(ctx context.Context, code string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	SetWeights(ctx context.Context, code string, req *dto.SetWeightsRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, code string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建课程服务
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// normalizeCourseCode 课程代码统一去空白并大写
// 任务与课程按代码精确关联，所有入口必须走同一规范化
func normalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ════════════════════════════════════════════
// Upsert 新建或更新课程
//
// 课程代码为主键；已存在时仅更新学分，权重表不动
// ════════════════════════════════════════════
func (s *courseService) Upsert(ctx context.Context, req *dto.UpsertCourseRequest) (*dto.CourseResponse, error) {
	credits := req.Credits
	if credits == 0 {
		credits = 3
	}

	code := normalizeCourseCode(req.Code)
	course := &model.Course{Code: code, Credits: credits}
	if existing, err := s.repo.Course.GetByCode(ctx, code); err == nil {
		course.Weights = existing.Weights
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.repo.Course.Upsert(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("课程已保存", zap.String("code", course.Code), zap.Float64("credits", course.Credits))
	return courseToResponse(course), nil
}

// ════════════════════════════════════════════
// Get 课程详情
// ════════════════════════════════════════════
func (s *courseService) Get(ctx context.Context, code string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByCode(ctx, normalizeCourseCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return courseToResponse(course), nil
}

// ════════════════════════════════════════════
// List 课程列表
// ════════════════════════════════════════════
func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, *courseToResponse(&courses[i]))
	}
	return out, nil
}

// ════════════════════════════════════════════
// SetWeights 设置课程成绩权重
//
// 权重值须为 0–100 的整数；总和不做强制，
// 落在 [90,110] 区间时重缩放至 100（与提取器同一规则）
// ════════════════════════════════════════════
func (s *courseService) SetWeights(ctx context.Context, code string, req *dto.SetWeightsRequest) (*dto.CourseResponse, error) {
	code = normalizeCourseCode(code)
	course, err := s.repo.Course.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	weights := make(model.WeightMap, len(req.Weights))
	for cat, w := range req.Weights {
		if w < 0 || w > 100 {
			return nil, ErrInvalidWeights
		}
		weights[foldCategory(cat)] = w
	}
	normalizeWeights(weights)

	course.Weights = datatypes.NewJSONType(weights)
	if err := s.repo.Course.Upsert(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("课程权重已更新", zap.String("code", code), zap.Int("sum", weights.Sum()))
	return courseToResponse(course), nil
}

// ════════════════════════════════════════════
// Delete 删除课程（不级联删除其任务）
// ════════════════════════════════════════════
func (s *courseService) Delete(ctx context.Context, code string) error {
	code = normalizeCourseCode(code)
	if _, err := s.repo.Course.GetByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return s.repo.Course.Delete(ctx, code)
}

func courseToResponse(c *model.Course) *dto.CourseResponse {
	weights := c.Weights.Data()
	if weights == nil {
		weights = model.WeightMap{}
	}
	return &dto.CourseResponse{
		Code:      c.Code,
		Credits:   c.Credits,
		Weights:   weights,
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
