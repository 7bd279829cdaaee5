package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Jhart328/study-forge/internal/model"
)

func setupTestExportService(now time.Time) (*exportService, *mockAssignmentRepo) {
	repo, assignmentRepo, _, _, _ := newTestRepo()
	planner := &plannerService{
		repo:   repo,
		cfg:    testConfig(),
		logger: zap.NewNop(),
		nowFn:  func() time.Time { return now },
	}
	svc := &exportService{
		planner: planner,
		logger:  zap.NewNop(),
		nowFn:   func() time.Time { return now },
	}
	return svc, assignmentRepo
}

func TestExportService_ICS_ContainsSessions(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, assignmentRepo := setupTestExportService(now)
	assignmentRepo.assignments["a1"] = &model.Assignment{
		AssignmentID: "a1", Course: "CS301", Title: "HW 1",
		Type: model.TypeHomework, DueAt: mustTime("2026-03-06T23:59:00Z"), EstMinutes: 120,
	}

	buf, filename, err := svc.ExportICS(context.Background())
	if err != nil {
		t.Fatalf("ExportICS 应成功: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("输出应为iCalendar格式")
	}
	if strings.Count(content, "BEGIN:VEVENT") != 2 {
		t.Errorf("120分钟按60分块应产生2个事件，实际=%d", strings.Count(content, "BEGIN:VEVENT"))
	}
	if !strings.Contains(content, "[CS301] HW 1") {
		t.Error("事件摘要应含学习块标签")
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应以.ics结尾，实际=%s", filename)
	}
}

func TestExportService_ICS_EmptyPlan(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, _ := setupTestExportService(now)

	_, _, err := svc.ExportICS(context.Background())
	if !errors.Is(err, ErrExportEmptyPlan) {
		t.Errorf("期望 ErrExportEmptyPlan，实际: %v", err)
	}
}

func TestExportService_XLSX_RowsMatchSessions(t *testing.T) {
	now := mustTime("2026-03-02T08:00:00Z")
	svc, assignmentRepo := setupTestExportService(now)
	assignmentRepo.assignments["a1"] = &model.Assignment{
		AssignmentID: "a1", Course: "CS301", Title: "HW 1",
		Type: model.TypeHomework, DueAt: mustTime("2026-03-06T23:59:00Z"), EstMinutes: 120,
	}

	buf, filename, err := svc.ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportXLSX 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以.xlsx结尾，实际=%s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("输出应为合法xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("学习计划")
	if err != nil {
		t.Fatalf("读取Sheet失败: %v", err)
	}
	// 标题 + 表头 + 2个学习块 + 合计
	if len(rows) != 5 {
		t.Errorf("期望5行，实际=%d", len(rows))
	}
}
