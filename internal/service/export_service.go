package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Jhart328/study-forge/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyPlan    = errors.New("当前没有可导出的学习计划")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 学习计划导出接口
//
// 设计说明：
//   - 导出的是当前计划快照（缓存命中则直接用，否则重算）
//   - ICS 中每个学习块是一个 VEVENT，从偏好的 session_start 起
//     按当日顺序首尾相接排布
//   - Excel 为单 Sheet 平铺：日期 / 学习块 / 分钟数 / 溢出标记
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	ExportICS(ctx context.Context) (*bytes.Buffer, string, error)
	ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	planner PlannerService
	logger  *zap.Logger
	nowFn   func() time.Time
}

// NewExportService 创建导出服务
func NewExportService(planner PlannerService, logger *zap.Logger) ExportService {
	return &exportService{planner: planner, logger: logger, nowFn: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 学习计划导出为 iCalendar
// ═══════════════════════════════════════════════════════════
func (s *exportService) ExportICS(ctx context.Context) (*bytes.Buffer, string, error) {
	sessions, prefs, err := s.planner.CurrentPlan(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportEmptyPlan
	}

	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		return nil, "", ErrInvalidPlannerPrefs
	}
	startHour, startMin := parseSessionStart(prefs.SessionStart)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//StudyForge//Study Plan//EN")

	// 同日学习块从 session_start 起首尾相接
	cursor := make(map[string]time.Time, len(sessions))
	stamp := s.nowFn().UTC()

	for _, sess := range sessions {
		begin, ok := cursor[sess.Date]
		if !ok {
			day, err := time.ParseInLocation(dayLayout, sess.Date, loc)
			if err != nil {
				continue
			}
			begin = time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, loc)
		}
		end := begin.Add(time.Duration(sess.Minutes) * time.Minute)

		event := cal.AddEvent(uuid.New().String())
		event.SetDtStampTime(stamp)
		event.SetStartAt(begin)
		event.SetEndAt(end)
		event.SetSummary(sess.Label)
		if sess.Overflow {
			event.SetDescription("排程容量不足，剩余学习量整体落在截止日")
		}

		cursor[sess.Date] = end
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("study_plan_%s.ics", s.nowFn().In(loc).Format(dayLayout))

	s.logger.Info("学习计划已导出为 ICS", zap.Int("events", len(sessions)))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX — 学习计划导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "学习计划"：日期 / 学习块 / 分钟数 / 溢出
//   - 行按日期升序，同日保持排程顺序
//   - 末行合计总分钟数

func (s *exportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	sessions, prefs, err := s.planner.CurrentPlan(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportEmptyPlan
	}

	ordered := make([]dto.StudySession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学习计划"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 48)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 8)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", "学习计划")
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "日期")
	f.SetCellValue(sheetName, cell("B", row), "学习块")
	f.SetCellValue(sheetName, cell("C", row), "分钟数")
	f.SetCellValue(sheetName, cell("D", row), "溢出")

	total := 0
	row = 3
	for _, sess := range ordered {
		f.SetCellValue(sheetName, cell("A", row), sess.Date)
		f.SetCellValue(sheetName, cell("B", row), sess.Label)
		f.SetCellValue(sheetName, cell("C", row), sess.Minutes)
		if sess.Overflow {
			f.SetCellValue(sheetName, cell("D", row), "是")
		} else {
			f.SetCellValue(sheetName, cell("D", row), "-")
		}
		total += sess.Minutes
		row++
	}

	f.SetCellValue(sheetName, cell("B", row), "合计")
	f.SetCellValue(sheetName, cell("C", row), total)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	loc, locErr := time.LoadLocation(prefs.Timezone)
	if locErr != nil {
		loc = time.UTC
	}
	filename := fmt.Sprintf("study_plan_%s.xlsx", s.nowFn().In(loc).Format(dayLayout))

	s.logger.Info("学习计划已导出为 Excel", zap.Int("rows", len(ordered)))
	return buf, filename, nil
}

// ── 辅助函数 ──

// parseSessionStart 解析 HH:MM，格式异常时退到 07:00
func parseSessionStart(v string) (hour, minute int) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 7, 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 7, 0
	}
	return h, m
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
