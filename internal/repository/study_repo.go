package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jhart328/study-forge/internal/model"
)

// StudyRepository 学习进度与连续记录数据访问接口
type StudyRepository interface {
	GetProgress(ctx context.Context, assignmentID string) (*model.StudyProgress, error)
	UpsertProgress(ctx context.Context, progress *model.StudyProgress) error
	ListProgress(ctx context.Context, assignmentIDs []string) ([]model.StudyProgress, error)
	DeleteProgress(ctx context.Context, assignmentID string) error
	GetStreak(ctx context.Context) (*model.Streak, error)
	SaveStreak(ctx context.Context, streak *model.Streak) error
}

// ── Study Repository 实现 ──

type studyRepo struct {
	db *gorm.DB
}

func NewStudyRepo(db *gorm.DB) StudyRepository {
	return &studyRepo{db: db}
}

func (r *studyRepo) GetProgress(ctx context.Context, assignmentID string) (*model.StudyProgress, error) {
	var progress model.StudyProgress
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *studyRepo) UpsertProgress(ctx context.Context, progress *model.StudyProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assignment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_minutes", "logged_minutes", "updated_at"}),
		}).
		Create(progress).Error
}

func (r *studyRepo) ListProgress(ctx context.Context, assignmentIDs []string) ([]model.StudyProgress, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}
	var progress []model.StudyProgress
	err := r.db.WithContext(ctx).
		Where("assignment_id IN ?", assignmentIDs).
		Find(&progress).Error
	return progress, err
}

func (r *studyRepo) DeleteProgress(ctx context.Context, assignmentID string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Delete(&model.StudyProgress{}).Error
}

func (r *studyRepo) GetStreak(ctx context.Context) (*model.Streak, error) {
	var streak model.Streak
	err := r.db.WithContext(ctx).First(&streak).Error
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

func (r *studyRepo) SaveStreak(ctx context.Context, streak *model.Streak) error {
	streak.Singleton = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton"}},
			DoUpdates: clause.AssignmentColumns([]string{"current", "longest", "last_date", "badges", "updated_at"}),
		}).
		Create(streak).Error
}
