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

// ErrInvalidTimezone 时区名无法解析
var ErrInvalidTimezone = errors.New("时区无效")

// PrefsService 计划偏好服务接口
type PrefsService interface {
	Get(ctx context.Context) (*dto.PrefsResponse, error)
	Update(ctx context.Context, req *dto.UpdatePrefsRequest) (*dto.PrefsResponse, error)
}

type prefsService struct {
	repo   *repository.Repository
	cache  *redispkg.Client
	cfg    *config.Config
	logger *zap.Logger
}

// NewPrefsService 创建计划偏好服务
func NewPrefsService(repo *repository.Repository, cache *redispkg.Client, cfg *config.Config, logger *zap.Logger) PrefsService {
	return &prefsService{repo: repo, cache: cache, cfg: cfg, logger: logger}
}

// prefsFromConfig 用配置默认值构造偏好（单行表尚未落库时的种子）
func prefsFromConfig(cfg *config.Config) *model.PlannerPrefs {
	return &model.PlannerPrefs{
		Singleton:       true,
		Timezone:        cfg.Planner.Timezone,
		HorizonDays:     cfg.Planner.HorizonDays,
		ChunkMinutes:    cfg.Planner.ChunkMinutes,
		MaxDailyMinutes: cfg.Planner.MaxDailyMinutes,
		DueBufferHours:  cfg.Planner.DueBufferHours,
		SessionStart:    cfg.Planner.SessionStart,
	}
}

// loadPrefs 读取偏好单行；不存在时以配置默认值落库后返回
func loadPrefs(ctx context.Context, repo *repository.Repository, cfg *config.Config) (*model.PlannerPrefs, error) {
	prefs, err := repo.Prefs.Get(ctx)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	seeded := prefsFromConfig(cfg)
	if err := repo.Prefs.Create(ctx, seeded); err != nil {
		return nil, err
	}
	return seeded, nil
}

// ════════════════════════════════════════════
// Get 获取当前计划偏好
// ════════════════════════════════════════════
func (s *prefsService) Get(ctx context.Context) (*dto.PrefsResponse, error) {
	prefs, err := loadPrefs(ctx, s.repo, s.cfg)
	if err != nil {
		return nil, err
	}
	return prefsToResponse(prefs), nil
}

// ════════════════════════════════════════════
// Update 部分更新计划偏好
//
// 请求体中为 nil 的字段保持原值；时区在落库前校验可加载。
// 偏好变化会使计划缓存失效。
// ════════════════════════════════════════════
func (s *prefsService) Update(ctx context.Context, req *dto.UpdatePrefsRequest) (*dto.PrefsResponse, error) {
	prefs, err := loadPrefs(ctx, s.repo, s.cfg)
	if err != nil {
		return nil, err
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		prefs.Timezone = *req.Timezone
	}
	if req.HorizonDays != nil {
		prefs.HorizonDays = *req.HorizonDays
	}
	if req.ChunkMinutes != nil {
		prefs.ChunkMinutes = *req.ChunkMinutes
	}
	if req.MaxDailyMinutes != nil {
		prefs.MaxDailyMinutes = *req.MaxDailyMinutes
	}
	if req.DueBufferHours != nil {
		prefs.DueBufferHours = *req.DueBufferHours
	}
	if req.SessionStart != nil {
		prefs.SessionStart = *req.SessionStart
	}

	if err := s.repo.Prefs.Update(ctx, prefs); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePlan(ctx); err != nil {
			s.logger.Warn("计划缓存失效失败", zap.Error(err))
		}
	}

	s.logger.Info("计划偏好已更新",
		zap.String("timezone", prefs.Timezone),
		zap.Int("horizon_days", prefs.HorizonDays))

	return prefsToResponse(prefs), nil
}

func prefsToResponse(prefs *model.PlannerPrefs) *dto.PrefsResponse {
	return &dto.PrefsResponse{
		Timezone:        prefs.Timezone,
		HorizonDays:     prefs.HorizonDays,
		ChunkMinutes:    prefs.ChunkMinutes,
		MaxDailyMinutes: prefs.MaxDailyMinutes,
		DueBufferHours:  prefs.DueBufferHours,
		SessionStart:    prefs.SessionStart,
		UpdatedAt:       prefs.UpdatedAt.Format(time.RFC3339),
	}
}
