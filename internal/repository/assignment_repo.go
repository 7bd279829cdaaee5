package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/internal/model"
)

// AssignmentRepository 计分项数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	BatchCreate(ctx context.Context, assignments []model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	List(ctx context.Context, query string, offset, limit int) ([]model.Assignment, int64, error)
	ListAll(ctx context.Context) ([]model.Assignment, error)
	ListByCourse(ctx context.Context, course string) ([]model.Assignment, error)
	ListIncomplete(ctx context.Context) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string) error
	DeletePastDueCompleted(ctx context.Context, now time.Time) (int64, error)
}

// ── Assignment Repository 实现 ──

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) BatchCreate(ctx context.Context, assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) List(ctx context.Context, query string, offset, limit int) ([]model.Assignment, int64, error) {
	var assignments []model.Assignment
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Assignment{})
	if query != "" {
		like := "%" + query + "%"
		db = db.Where("title ILIKE ? OR course ILIKE ? OR type ILIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("due_at ASC, course ASC, type ASC").
		Find(&assignments).Error
	return assignments, total, err
}

func (r *assignmentRepo) ListAll(ctx context.Context) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Order("due_at ASC, created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByCourse(ctx context.Context, course string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("course = ?", course).
		Order("due_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListIncomplete(ctx context.Context) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("completed = FALSE").
		Order("due_at ASC, created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).
		Model(assignment).
		Where("assignment_id = ?", assignment.AssignmentID).
		Updates(map[string]interface{}{
			"course":      assignment.Course,
			"title":       assignment.Title,
			"type":        assignment.Type,
			"due_at":      assignment.DueAt,
			"est_minutes": assignment.EstMinutes,
			"score":       assignment.Score,
			"possible":    assignment.Possible,
			"completed":   assignment.Completed,
		}).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) DeletePastDueCompleted(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("completed = TRUE AND due_at < ?", now).
		Delete(&model.Assignment{})
	return result.RowsAffected, result.Error
}
