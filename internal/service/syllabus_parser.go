package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Jhart328/study-forge/internal/model"
)

// ── 教学大纲解析器 ──────────────────────────────────────────
//
// 职责：将解码后的大纲纯文本逐行解析为计分项列表与成绩权重表。
//
// 设计决策：
//   - 日期识别三种字面形式：ISO YYYY-MM-DD、斜杠 M/D[/YY[YY]]、月名 Mon D[, YYYY]
//   - 每行只取第一个日期匹配；无日期的行不产生计分项
//   - 类别判定使用有序规则表，首个命中的类别生效，缺省 homework
//   - 源文本缺年份时以哨兵年 2000 探测，命中后回填当前年
//   - 权重行独立于日期识别，同行可捕获多条，同类后者覆盖前者
//   - 权重总和落在 [90,110] 时重缩放至 100，否则保持原样
//   - 逐行尽力而为：解析失败只标记 skipped，不报错
// ─────────────────────────────────────────────────────────────

const (
	sentinelYear  = 2000
	titleMaxRunes = 200
)

var (
	datePattern = regexp.MustCompile(`(?i)(\b\d{4}-\d{1,2}-\d{1,2}\b|\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b|\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\s+\d{1,2}(?:,\s*\d{4})?)`)

	weightPattern = regexp.MustCompile(`(?i)(exam|exams|final|midterm|quiz|quizzes|homework|assignments|labs?|projects?|readings?|essays?)\s*[:\-]?\s*(\d{1,3})\s*%+`)
)

// typeRule 类别判定规则：有序表，首个关键词命中的类别生效
type typeRule struct {
	name     string
	keywords []string
}

var typeRules = []typeRule{
	{model.TypeExam, []string{"exam", "midterm", "final"}},
	{model.TypeQuiz, []string{"quiz"}},
	{model.TypeHomework, []string{"homework", "hw", "problem set", "pset", "assignment"}},
	{model.TypeProject, []string{"project", "milestone", "presentation"}},
	{model.TypeReading, []string{"reading", "chapter", "ch."}},
	{model.TypeLab, []string{"lab", "practicum"}},
	{model.TypeEssay, []string{"essay", "paper", "draft"}},
}

// typeEstimates 类别的默认学习分钟数
var typeEstimates = map[string]int{
	model.TypeExam:     300,
	model.TypeProject:  240,
	model.TypeLab:      180,
	model.TypeEssay:    240,
	model.TypeQuiz:     90,
	model.TypeHomework: 120,
	model.TypeReading:  60,
}

// typeEstimate 返回类别的默认学习分钟数，未知类别回退 60
func typeEstimate(typ string) int {
	if est, ok := typeEstimates[strings.ToLower(typ)]; ok {
		return est
	}
	return 60
}

// syllabusItem 提取出的单个计分项（入库前的中间结构）
type syllabusItem struct {
	Course     string
	Title      string
	Type       string
	DueAt      time.Time
	EstMinutes int
}

// lineOutcome 单行解析结果
type lineOutcome struct {
	Line    int
	Matched bool
	Reason  string
}

// parseSyllabus 逐行解析大纲文本
//
// 参数：
//   - text: 已解码的大纲纯文本
//   - defaultCourse: 所有条目归属的课程代码
//   - now: 年份回填与相对判断的参考时间
//   - loc: 截止时间所在时区
func parseSyllabus(text, defaultCourse string, now time.Time, loc *time.Location) ([]syllabusItem, model.WeightMap, []lineOutcome) {
	course := normalizeCourseCode(defaultCourse)

	var items []syllabusItem
	weights := model.WeightMap{}
	var outcomes []lineOutcome

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1

		// 日期识别：只取首个匹配
		if m := datePattern.FindString(line); m != "" {
			due, ok := resolveDate(m, now, loc)
			if ok {
				typ := guessType(line)
				items = append(items, syllabusItem{
					Course:     course,
					Title:      collapseTitle(line),
					Type:       typ,
					DueAt:      due,
					EstMinutes: typeEstimate(typ),
				})
				outcomes = append(outcomes, lineOutcome{Line: lineNo, Matched: true})
			} else {
				outcomes = append(outcomes, lineOutcome{Line: lineNo, Matched: false, Reason: "日期无法解析"})
			}
		} else {
			outcomes = append(outcomes, lineOutcome{Line: lineNo, Matched: false, Reason: "无日期"})
		}

		// 权重识别：与日期识别相互独立，同行可多条
		for _, wm := range weightPattern.FindAllStringSubmatch(line, -1) {
			pct, err := strconv.Atoi(wm[2])
			if err != nil {
				continue
			}
			weights[foldCategory(wm[1])] = pct
		}
	}

	normalizeWeights(weights)
	return items, weights, outcomes
}

// guessType 按有序规则表判定类别，无命中时缺省 homework
func guessType(line string) string {
	low := strings.ToLower(line)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(low, kw) {
				return rule.name
			}
		}
	}
	return model.TypeHomework
}

// foldCategory 将权重行中的类别词折叠到封闭类别集合
func foldCategory(cat string) string {
	c := strings.ToLower(cat)
	switch {
	case strings.Contains(c, "exam"), c == "final", c == "midterm":
		return model.TypeExam
	case strings.Contains(c, "quiz"):
		return model.TypeQuiz
	case strings.Contains(c, "homework"), strings.Contains(c, "assign"):
		return model.TypeHomework
	case strings.Contains(c, "lab"):
		return model.TypeLab
	case strings.Contains(c, "project"):
		return model.TypeProject
	case strings.Contains(c, "reading"):
		return model.TypeReading
	case strings.Contains(c, "essay"):
		return model.TypeEssay
	default:
		return c
	}
}

// normalizeWeights 权重总和落在 [90,110] 时按比例重缩放至 100
// 区间外的总和保持原样（对凌乱大纲的刻意宽容，不视为错误）
func normalizeWeights(weights model.WeightMap) {
	sum := weights.Sum()
	if sum == 0 || sum < 90 || sum > 110 {
		return
	}
	for k, v := range weights {
		weights[k] = int(math.Round(100 * float64(v) / float64(sum)))
	}
}

// collapseTitle 将行文本折叠为单空格并截断到 200 字符
func collapseTitle(line string) string {
	collapsed := strings.Join(strings.Fields(line), " ")
	runes := []rune(collapsed)
	if len(runes) > titleMaxRunes {
		return string(runes[:titleMaxRunes])
	}
	return collapsed
}

// ── 日期解析 ──

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// resolveDate 解析日期匹配串并定位到当日 23:59:00
// 源文本缺年份时先落在哨兵年 2000，再回填 now 的年份
func resolveDate(s string, now time.Time, loc *time.Location) (time.Time, bool) {
	year, month, day, ok := splitDate(s)
	if !ok {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if year == sentinelYear {
		year = now.Year()
	}
	t := time.Date(year, time.Month(month), day, 23, 59, 0, 0, loc)
	// time.Date 会规整溢出日期（如 2月31日），回读校验拒绝这类输入
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// splitDate 将匹配串拆为年/月/日；缺年份时置哨兵年
func splitDate(s string) (year, month, day int, ok bool) {
	s = strings.TrimSpace(s)

	// ISO: YYYY-MM-DD
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		y, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		d, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, 0, 0, false
		}
		return y, m, d, true
	}

	// 斜杠: M/D 或 M/D/YY[YY]
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 2 && len(parts) != 3 {
			return 0, 0, 0, false
		}
		m, err1 := strconv.Atoi(parts[0])
		d, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, 0, 0, false
		}
		y := sentinelYear
		if len(parts) == 3 {
			yy, err := strconv.Atoi(parts[2])
			if err != nil {
				return 0, 0, 0, false
			}
			if yy < 100 {
				yy += 2000
			}
			y = yy
		}
		return y, m, d, true
	}

	// 月名: Mon D[, YYYY]
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) < 2 {
		return 0, 0, 0, false
	}
	monthWord := strings.ToLower(fields[0])
	if len(monthWord) < 3 {
		return 0, 0, 0, false
	}
	m, found := monthsByPrefix[monthWord[:3]]
	if !found {
		return 0, 0, 0, false
	}
	d, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, false
	}
	y := sentinelYear
	if len(fields) >= 3 {
		yy, err := strconv.Atoi(fields[2])
		if err != nil {
			return 0, 0, 0, false
		}
		y = yy
	}
	return y, int(m), d, true
}
