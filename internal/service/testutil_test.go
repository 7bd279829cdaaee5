package service

import (
	"time"

	"github.com/Jhart328/study-forge/config"
	"github.com/Jhart328/study-forge/internal/model"
	"github.com/Jhart328/study-forge/internal/repository"
)

// ── 测试辅助 ──

func newTestRepo() (*repository.Repository, *mockAssignmentRepo, *mockCourseRepo, *mockPrefsRepo, *mockStudyRepo) {
	assignmentRepo := newMockAssignmentRepo()
	courseRepo := newMockCourseRepo()
	prefsRepo := newMockPrefsRepo()
	studyRepo := newMockStudyRepo()
	repo := &repository.Repository{
		Assignment: assignmentRepo,
		Course:     courseRepo,
		Prefs:      prefsRepo,
		Study:      studyRepo,
	}
	return repo, assignmentRepo, courseRepo, prefsRepo, studyRepo
}

// testConfig 测试用配置：UTC 时区避免本地时区影响断言
func testConfig() *config.Config {
	return &config.Config{
		Planner: config.PlannerConfig{
			Timezone:        "UTC",
			HorizonDays:     21,
			ChunkMinutes:    60,
			MaxDailyMinutes: 300,
			DueBufferHours:  36,
			SessionStart:    "07:00",
		},
	}
}

func testPrefs() *model.PlannerPrefs {
	return &model.PlannerPrefs{
		Singleton:       true,
		Timezone:        "UTC",
		HorizonDays:     21,
		ChunkMinutes:    60,
		MaxDailyMinutes: 300,
		DueBufferHours:  36,
		SessionStart:    "07:00",
	}
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
