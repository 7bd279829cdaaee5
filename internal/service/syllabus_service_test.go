package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Jhart328/study-forge/internal/dto"
)

func setupTestSyllabusService(now time.Time) (*syllabusService, *mockAssignmentRepo, *mockCourseRepo, *mockStudyRepo) {
	repo, assignmentRepo, courseRepo, _, studyRepo := newTestRepo()
	svc := &syllabusService{
		repo:   repo,
		cfg:    testConfig(),
		logger: zap.NewNop(),
		nowFn:  func() time.Time { return now },
	}
	return svc, assignmentRepo, courseRepo, studyRepo
}

var sampleSyllabus = strings.Join([]string{
	"CS 301 — Algorithms, Fall 2026",
	"",
	"Grading:",
	"Homework: 40%",
	"Quizzes: 20%",
	"Final Exam: 40%",
	"",
	"Schedule:",
	"HW 1 due 9/9",
	"Reading quiz Sep 16",
	"Midterm Exam 2026-10-15",
	"HW 2 due 10/28",
}, "\n")

// ── Parse ──

func TestSyllabusService_Parse_PreviewDoesNotPersist(t *testing.T) {
	now := mustTime("2026-08-28T12:00:00Z")
	svc, assignmentRepo, _, _ := setupTestSyllabusService(now)

	result, err := svc.Parse(context.Background(), &dto.ParseSyllabusRequest{Text: sampleSyllabus, Course: "cs301"})
	if err != nil {
		t.Fatalf("Parse 应成功: %v", err)
	}
	if len(result.Items) != 4 {
		t.Errorf("期望提取4条计分项，实际=%d", len(result.Items))
	}
	if len(assignmentRepo.assignments) != 0 {
		t.Error("Parse 只预览，不应入库")
	}
	if result.Weights["homework"] != 40 || result.Weights["quiz"] != 20 || result.Weights["exam"] != 40 {
		t.Errorf("权重表不符，实际=%v", result.Weights)
	}
}

// ── Import ──

func TestSyllabusService_Import_PersistsEverything(t *testing.T) {
	now := mustTime("2026-08-28T12:00:00Z")
	svc, assignmentRepo, courseRepo, studyRepo := setupTestSyllabusService(now)

	result, err := svc.Import(context.Background(), &dto.ParseSyllabusRequest{Text: sampleSyllabus, Course: "cs301"})
	if err != nil {
		t.Fatalf("Import 应成功: %v", err)
	}
	if result.Imported != 4 {
		t.Errorf("期望导入4条，实际=%d", result.Imported)
	}
	if len(assignmentRepo.assignments) != 4 {
		t.Errorf("期望落库4条，实际=%d", len(assignmentRepo.assignments))
	}

	// 权重表落到课程记录
	if !result.WeightsApplied {
		t.Error("期望应用权重表")
	}
	course, err := courseRepo.GetByCode(context.Background(), "CS301")
	if err != nil {
		t.Fatalf("课程应自动建档: %v", err)
	}
	if course.Weights.Data()["exam"] != 40 {
		t.Errorf("课程权重不符，实际=%v", course.Weights.Data())
	}

	// 考试/测验预置学习目标，homework 不预置
	seeded := 0
	for _, p := range studyRepo.progress {
		if p.TargetMinutes <= 0 {
			t.Errorf("预置目标应为正数，实际=%+v", p)
		}
		seeded++
	}
	if seeded != 2 {
		t.Errorf("期望为2条重点任务预置目标（quiz+exam），实际=%d", seeded)
	}
}

func TestSyllabusService_Import_NothingExtracted(t *testing.T) {
	now := mustTime("2026-08-28T12:00:00Z")
	svc, _, _, _ := setupTestSyllabusService(now)

	_, err := svc.Import(context.Background(), &dto.ParseSyllabusRequest{Text: "No dates here at all", Course: "CS301"})
	if !errors.Is(err, ErrNothingExtracted) {
		t.Errorf("期望 ErrNothingExtracted，实际: %v", err)
	}
}

func TestSyllabusService_Import_CountsSkippedLines(t *testing.T) {
	now := mustTime("2026-08-28T12:00:00Z")
	svc, _, _, _ := setupTestSyllabusService(now)

	result, err := svc.Import(context.Background(), &dto.ParseSyllabusRequest{Text: sampleSyllabus, Course: "CS301"})
	if err != nil {
		t.Fatalf("Import 应成功: %v", err)
	}
	// 非空且无日期的行：课程标题、Grading:、3条权重行、Schedule:
	if result.SkippedLines != 6 {
		t.Errorf("期望跳过6行，实际=%d", result.SkippedLines)
	}
}
