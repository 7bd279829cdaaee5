package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Jhart328/study-forge/internal/model"
)

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("asg-%03d", m.seq)
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) BatchCreate(ctx context.Context, assignments []model.Assignment) error {
	for i := range assignments {
		a := assignments[i]
		if err := m.Create(ctx, &a); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) List(_ context.Context, query string, offset, limit int) ([]model.Assignment, int64, error) {
	all := m.sorted()
	var filtered []model.Assignment
	q := strings.ToLower(query)
	for _, a := range all {
		if q == "" ||
			strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Course), q) ||
			strings.Contains(strings.ToLower(a.Type), q) {
			filtered = append(filtered, a)
		}
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockAssignmentRepo) ListAll(_ context.Context) ([]model.Assignment, error) {
	return m.sorted(), nil
}

func (m *mockAssignmentRepo) ListByCourse(_ context.Context, course string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.sorted() {
		if a.Course == course {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListIncomplete(_ context.Context) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.sorted() {
		if !a.Completed {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	if _, ok := m.assignments[assignment.AssignmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) DeletePastDueCompleted(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, a := range m.assignments {
		if a.Completed && a.DueAt.Before(now) {
			delete(m.assignments, id)
			removed++
		}
	}
	return removed, nil
}

// sorted 按 due_at 升序返回，保证与 SQL 排序一致的确定性
func (m *mockAssignmentRepo) sorted() []model.Assignment {
	var result []model.Assignment
	for _, a := range m.assignments {
		result = append(result, *a)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].DueAt.Equal(result[j].DueAt) {
			return result[i].DueAt.Before(result[j].DueAt)
		}
		return result[i].AssignmentID < result[j].AssignmentID
	})
	return result
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Upsert(_ context.Context, course *model.Course) error {
	m.courses[course.Code] = course
	return nil
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	if c, ok := m.courses[code]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockCourseRepo) Delete(_ context.Context, code string) error {
	delete(m.courses, code)
	return nil
}

// ── Mock PrefsRepository ──

type mockPrefsRepo struct {
	prefs *model.PlannerPrefs
}

func newMockPrefsRepo() *mockPrefsRepo {
	return &mockPrefsRepo{}
}

func (m *mockPrefsRepo) Get(_ context.Context) (*model.PlannerPrefs, error) {
	if m.prefs == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.prefs, nil
}

func (m *mockPrefsRepo) Create(_ context.Context, prefs *model.PlannerPrefs) error {
	prefs.Singleton = true
	m.prefs = prefs
	return nil
}

func (m *mockPrefsRepo) Update(_ context.Context, prefs *model.PlannerPrefs) error {
	m.prefs = prefs
	return nil
}

// ── Mock StudyRepository ──

type mockStudyRepo struct {
	progress map[string]*model.StudyProgress
	streak   *model.Streak
}

func newMockStudyRepo() *mockStudyRepo {
	return &mockStudyRepo{progress: make(map[string]*model.StudyProgress)}
}

func (m *mockStudyRepo) GetProgress(_ context.Context, assignmentID string) (*model.StudyProgress, error) {
	if p, ok := m.progress[assignmentID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudyRepo) UpsertProgress(_ context.Context, progress *model.StudyProgress) error {
	m.progress[progress.AssignmentID] = progress
	return nil
}

func (m *mockStudyRepo) ListProgress(_ context.Context, assignmentIDs []string) ([]model.StudyProgress, error) {
	var result []model.StudyProgress
	for _, id := range assignmentIDs {
		if p, ok := m.progress[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockStudyRepo) DeleteProgress(_ context.Context, assignmentID string) error {
	delete(m.progress, assignmentID)
	return nil
}

func (m *mockStudyRepo) GetStreak(_ context.Context) (*model.Streak, error) {
	if m.streak == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.streak, nil
}

func (m *mockStudyRepo) SaveStreak(_ context.Context, streak *model.Streak) error {
	streak.Singleton = true
	m.streak = streak
	return nil
}
