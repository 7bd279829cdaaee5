package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
)

func setupTestGradeService(now time.Time) (*gradeService, *mockAssignmentRepo, *mockCourseRepo, *mockStudyRepo) {
	repo, assignmentRepo, courseRepo, _, studyRepo := newTestRepo()
	svc := &gradeService{
		repo:   repo,
		logger: zap.NewNop(),
		nowFn:  func() time.Time { return now },
	}
	return svc, assignmentRepo, courseRepo, studyRepo
}

func seedCourse(courseRepo *mockCourseRepo, code string, credits float64, weights model.WeightMap) {
	courseRepo.courses[code] = &model.Course{
		Code:    code,
		Credits: credits,
		Weights: datatypes.NewJSONType(weights),
	}
}

// ── 投影 ──

func TestGradeService_Projection_Success(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, assignmentRepo, courseRepo, _ := setupTestGradeService(now)
	seedCourse(courseRepo, "CS301", 3, model.WeightMap{"homework": 60, "exam": 40})
	assignmentRepo.assignments["hw"] = &model.Assignment{
		AssignmentID: "hw", Course: "CS301", Title: "HW", Type: "homework",
		DueAt: now, Score: 90, Possible: 100,
	}

	result, err := svc.Projection(context.Background(), "CS301", 90)
	if err != nil {
		t.Fatalf("Projection 应成功: %v", err)
	}
	if math.Abs(result.AchievedPct-54) > 1e-9 {
		t.Errorf("期望achieved=54，实际=%f", result.AchievedPct)
	}
	if math.Abs(result.RemainingWeight-40) > 1e-9 {
		t.Errorf("期望remaining=40，实际=%f", result.RemainingWeight)
	}
	if result.NeededAverage == nil || math.Abs(*result.NeededAverage-90) > 1e-9 {
		t.Errorf("期望needed=90，实际=%v", result.NeededAverage)
	}
}

func TestGradeService_Projection_LowercaseEntryCounts(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	repo, _, courseRepo, _, _ := newTestRepo()
	gradeSvc := &gradeService{repo: repo, logger: zap.NewNop(), nowFn: func() time.Time { return now }}
	assignmentSvc := &assignmentService{
		repo:   repo,
		cfg:    testConfig(),
		logger: zap.NewNop(),
		nowFn:  func() time.Time { return now },
	}
	seedCourse(courseRepo, "CS301", 3, model.WeightMap{"homework": 100})

	// 手动录入走小写课程代码，投影也用小写路径参数
	created, err := assignmentSvc.Create(context.Background(), &dto.CreateAssignmentRequest{
		Course: "cs301", Title: "HW 1", DueDate: "2026-03-10", Score: 95, Possible: 100,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if created.Course != "CS301" {
		t.Errorf("课程代码应规范化为CS301，实际=%s", created.Course)
	}

	result, err := gradeSvc.Projection(context.Background(), "cs301", 90)
	if err != nil {
		t.Fatalf("Projection 应成功: %v", err)
	}
	if math.Abs(result.AchievedPct-95) > 1e-9 {
		t.Errorf("小写录入的成绩应计入投影，期望achieved=95，实际=%f", result.AchievedPct)
	}
	if math.Abs(result.RemainingWeight-0) > 1e-9 {
		t.Errorf("期望remaining=0，实际=%f", result.RemainingWeight)
	}
}

func TestGradeService_Projection_CourseNotFound(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, _, _, _ := setupTestGradeService(now)

	_, err := svc.Projection(context.Background(), "NOPE", 90)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestGradeService_Projection_NoWeights(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, _, courseRepo, _ := setupTestGradeService(now)
	seedCourse(courseRepo, "CS301", 3, model.WeightMap{})

	_, err := svc.Projection(context.Background(), "CS301", 90)
	if !errors.Is(err, ErrNoWeights) {
		t.Errorf("期望 ErrNoWeights，实际: %v", err)
	}
}

// ── 仪表盘 ──

func TestGradeService_Dashboard_TermGPACreditWeighted(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, assignmentRepo, courseRepo, _ := setupTestGradeService(now)

	// CS301 (4学分)：当前93% → 4.0
	seedCourse(courseRepo, "CS301", 4, model.WeightMap{"homework": 100})
	assignmentRepo.assignments["hw1"] = &model.Assignment{
		AssignmentID: "hw1", Course: "CS301", Type: "homework",
		DueAt: now, Score: 93, Possible: 100, Completed: true,
	}
	// MATH201 (2学分)：当前60% → 0.7
	seedCourse(courseRepo, "MATH201", 2, model.WeightMap{"quiz": 100})
	assignmentRepo.assignments["q1"] = &model.Assignment{
		AssignmentID: "q1", Course: "MATH201", Type: "quiz",
		DueAt: now, Score: 60, Possible: 100,
	}

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if result.TermGPA == nil {
		t.Fatal("有计分课程时TermGPA不应为nil")
	}
	// (4.0*4 + 0.7*2) / 6 = 2.9
	if math.Abs(*result.TermGPA-2.9) > 1e-9 {
		t.Errorf("期望GPA=2.9，实际=%f", *result.TermGPA)
	}
	if math.Abs(result.CompletionPct-50) > 1e-9 {
		t.Errorf("2项任务完成1项，期望完成率50，实际=%f", result.CompletionPct)
	}
}

func TestGradeService_Dashboard_EmptyState(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, _, _, _ := setupTestGradeService(now)

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if result.TermGPA != nil {
		t.Errorf("无计分数据时TermGPA应为nil，实际=%f", *result.TermGPA)
	}
	if result.CompletionPct != 0 {
		t.Errorf("无任务时完成率应为0，实际=%f", result.CompletionPct)
	}
	if result.NextUp != nil {
		t.Errorf("无任务时NextUp应为nil，实际=%+v", result.NextUp)
	}
}

func TestGradeService_Dashboard_NextUpPicksEarliestTracked(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, assignmentRepo, _, studyRepo := setupTestGradeService(now)

	assignmentRepo.assignments["hw"] = &model.Assignment{
		AssignmentID: "hw", Course: "CS301", Type: "homework",
		DueAt: mustTime("2026-03-03T23:59:00Z"),
	}
	assignmentRepo.assignments["exam"] = &model.Assignment{
		AssignmentID: "exam", Course: "CS301", Title: "Midterm", Type: "exam",
		DueAt: mustTime("2026-03-10T23:59:00Z"),
	}
	assignmentRepo.assignments["quiz-past"] = &model.Assignment{
		AssignmentID: "quiz-past", Course: "CS301", Type: "quiz",
		DueAt: mustTime("2026-02-20T23:59:00Z"),
	}
	studyRepo.progress["exam"] = &model.StudyProgress{AssignmentID: "exam", TargetMinutes: 300, LoggedMinutes: 120}

	result, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard 应成功: %v", err)
	}
	if result.NextUp == nil {
		t.Fatal("期望NextUp非nil")
	}
	// homework 不纳入追踪，过期 quiz 被跳过
	if result.NextUp.AssignmentID != "exam" {
		t.Errorf("期望NextUp=exam，实际=%s", result.NextUp.AssignmentID)
	}
	if result.NextUp.LoggedMinutes != 120 {
		t.Errorf("期望附带进度120分钟，实际=%d", result.NextUp.LoggedMinutes)
	}
}
