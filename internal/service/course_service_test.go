package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Jhart328/study-forge/internal/dto"
	"github.com/Jhart328/study-forge/internal/model"
)

func setupTestCourseService() (*courseService, *mockCourseRepo) {
	repo, _, courseRepo, _, _ := newTestRepo()
	svc := &courseService{repo: repo, logger: zap.NewNop()}
	return svc, courseRepo
}

// ── Upsert ──

func TestCourseService_Upsert_NormalizesCode(t *testing.T) {
	svc, courseRepo := setupTestCourseService()

	result, err := svc.Upsert(context.Background(), &dto.UpsertCourseRequest{Code: " cs301 "})
	if err != nil {
		t.Fatalf("Upsert 应成功: %v", err)
	}
	if result.Code != "CS301" {
		t.Errorf("课程代码应规范化为CS301，实际=%s", result.Code)
	}
	if _, ok := courseRepo.courses["CS301"]; !ok {
		t.Error("课程应以规范化代码入库")
	}
	if result.Credits != 3 {
		t.Errorf("缺省学分应为3，实际=%f", result.Credits)
	}
}

// ── SetWeights / Delete ──

func TestCourseService_SetWeights_LowercaseCode(t *testing.T) {
	svc, courseRepo := setupTestCourseService()
	courseRepo.courses["CS301"] = &model.Course{Code: "CS301", Credits: 3}

	result, err := svc.SetWeights(context.Background(), "cs301", &dto.SetWeightsRequest{
		Weights: map[string]int{"homework": 60, "exam": 40},
	})
	if err != nil {
		t.Fatalf("SetWeights 应成功: %v", err)
	}
	if result.Weights["homework"] != 60 || result.Weights["exam"] != 40 {
		t.Errorf("权重应写入规范化代码的课程，实际=%v", result.Weights)
	}
}

func TestCourseService_Delete_LowercaseCode(t *testing.T) {
	svc, courseRepo := setupTestCourseService()
	courseRepo.courses["CS301"] = &model.Course{Code: "CS301", Credits: 3}

	if err := svc.Delete(context.Background(), "cs301"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := courseRepo.courses["CS301"]; ok {
		t.Error("课程应被删除")
	}
}

func TestCourseService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.Get(context.Background(), "NOPE")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}
