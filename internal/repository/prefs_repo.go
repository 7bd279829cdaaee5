package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/internal/model"
)

// PrefsRepository 计划偏好数据访问接口（单行表）
type PrefsRepository interface {
	Get(ctx context.Context) (*model.PlannerPrefs, error)
	Create(ctx context.Context, prefs *model.PlannerPrefs) error
	Update(ctx context.Context, prefs *model.PlannerPrefs) error
}

// ── Prefs Repository 实现 ──

type prefsRepo struct {
	db *gorm.DB
}

func NewPrefsRepo(db *gorm.DB) PrefsRepository {
	return &prefsRepo{db: db}
}

func (r *prefsRepo) Get(ctx context.Context) (*model.PlannerPrefs, error) {
	var prefs model.PlannerPrefs
	err := r.db.WithContext(ctx).First(&prefs).Error
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *prefsRepo) Create(ctx context.Context, prefs *model.PlannerPrefs) error {
	prefs.Singleton = true
	return r.db.WithContext(ctx).Create(prefs).Error
}

func (r *prefsRepo) Update(ctx context.Context, prefs *model.PlannerPrefs) error {
	return r.db.WithContext(ctx).
		Model(prefs).
		Where("singleton = TRUE").
		Updates(map[string]interface{}{
			"timezone":          prefs.Timezone,
			"horizon_days":      prefs.HorizonDays,
			"chunk_minutes":     prefs.ChunkMinutes,
			"max_daily_minutes": prefs.MaxDailyMinutes,
			"due_buffer_hours":  prefs.DueBufferHours,
			"session_start":     prefs.SessionStart,
		}).Error
}
