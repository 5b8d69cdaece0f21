package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zschool/planner/internal/match"
	"github.com/zschool/planner/internal/models"
)

type fakeCatalog struct {
	courses    []models.Course
	coursesErr error
	modules    map[int][]models.Module
	items      map[int][]models.ModuleItem // keyed by moduleID

	courseCalls int
	moduleCalls int
	itemCalls   int
}

func (f *fakeCatalog) Courses(_ context.Context) ([]models.Course, error) {
	f.courseCalls++
	return f.courses, f.coursesErr
}

func (f *fakeCatalog) Modules(_ context.Context, courseID int) []models.Module {
	f.moduleCalls++
	return f.modules[courseID]
}

func (f *fakeCatalog) ModuleItems(_ context.Context, _, moduleID int) []models.ModuleItem {
	f.itemCalls++
	return f.items[moduleID]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const canvasBase = "https://learning.example.edu"

func mathsCatalog() *fakeCatalog {
	return &fakeCatalog{
		courses: []models.Course{
			{ID: 20564, Name: "Stage 3 Mathematics"},
			{ID: 20354, Name: "Stage 3 English"},
		},
		modules: map[int][]models.Module{
			20564: {{ID: 7, Name: "Topic 9 Fractions"}},
		},
		items: map[int][]models.ModuleItem{
			7: {
				{ID: 71, Title: "Lesson B1 Equivalent Fractions", HTMLURL: canvasBase + "/courses/20564/modules/items/71", URL: "https://api.example.edu/items/71",
					CompletionRequirement: &models.CompletionRequirement{Type: "must_mark_done", Completed: true}},
				{ID: 72, Title: "Lesson B2 Comparing Fractions", HTMLURL: canvasBase + "/courses/20564/modules/items/72"},
			},
		},
	}
}

func TestEnhanceEmptyClassworkMakesNoCalls(t *testing.T) {
	catalog := mathsCatalog()
	e := NewEnhancer(catalog, match.New(nil), canvasBase, testLogger())

	result := e.Enhance(context.Background(), nil)

	assert.Empty(t, result)
	assert.Zero(t, catalog.courseCalls)
	assert.Zero(t, catalog.moduleCalls)
	assert.Zero(t, catalog.itemCalls)
}

func TestEnhanceFullResolution(t *testing.T) {
	e := NewEnhancer(mathsCatalog(), match.New(nil), canvasBase, testLogger())

	result := e.Enhance(context.Background(), []models.ClassworkEntry{
		{Subject: "Maths", Topic: "Topic 9", Lessons: []string{"B1", "B2"}},
	})

	require.Len(t, result, 1)
	entry := result[0]
	assert.Equal(t, 20564, entry.CourseID)
	assert.Equal(t, 7, entry.ModuleID)
	assert.Equal(t, canvasBase+"/courses/20564/modules/items/71", entry.CanvasURLs["B1"])
	assert.Equal(t, canvasBase+"/courses/20564/modules/items/72", entry.CanvasURLs["B2"])
	assert.True(t, entry.CompletionStatus["B1"])
	assert.False(t, entry.CompletionStatus["B2"])
	assert.Equal(t, "https://api.example.edu/items/71", entry.LessonAPIURLs["B1"])
	_, hasB2API := entry.LessonAPIURLs["B2"]
	assert.False(t, hasB2API, "items without an API URL get no entry")
}

func TestEnhanceUnresolvedSubjectFallsBack(t *testing.T) {
	catalog := mathsCatalog()
	e := NewEnhancer(catalog, match.New(nil), canvasBase, testLogger())

	result := e.Enhance(context.Background(), []models.ClassworkEntry{
		{Subject: "Interpretive Dance", Lessons: []string{"1", "2"}},
	})

	require.Len(t, result, 1)
	entry := result[0]
	assert.Equal(t, canvasBase, entry.CanvasURLs["1"])
	assert.Equal(t, canvasBase, entry.CanvasURLs["2"])
	assert.False(t, entry.CompletionStatus["1"])
	assert.False(t, entry.CompletionStatus["2"])
	assert.Zero(t, entry.CourseID)
	assert.Zero(t, catalog.moduleCalls, "unresolved subject should not fetch modules")
}

func TestEnhanceUnresolvedModuleGetsCourseURL(t *testing.T) {
	e := NewEnhancer(mathsCatalog(), match.New(nil), canvasBase, testLogger())

	result := e.Enhance(context.Background(), []models.ClassworkEntry{
		{Subject: "Maths", Unit: "Unit 99", Topic: "Topic 42", Lessons: []string{"1"}},
	})

	require.Len(t, result, 1)
	entry := result[0]
	assert.Equal(t, 20564, entry.CourseID)
	assert.Zero(t, entry.ModuleID)
	assert.Equal(t, canvasBase+"/courses/20564", entry.CanvasURLs["1"])
}

func TestEnhanceUnresolvedLessonGetsModuleURL(t *testing.T) {
	// item titles deliberately avoid the word "lesson" so the word-level
	// fallback in the matcher cannot fire
	catalog := &fakeCatalog{
		courses: []models.Course{{ID: 20564, Name: "Stage 3 Mathematics"}},
		modules: map[int][]models.Module{20564: {{ID: 7, Name: "Topic 9 Fractions"}}},
		items: map[int][]models.ModuleItem{
			7: {{ID: 71, Title: "B1 Equivalent Fractions", HTMLURL: canvasBase + "/courses/20564/modules/items/71"}},
		},
	}
	e := NewEnhancer(catalog, match.New(nil), canvasBase, testLogger())

	result := e.Enhance(context.Background(), []models.ClassworkEntry{
		{Subject: "Maths", Topic: "Topic 9", Lessons: []string{"B1", "Z9"}},
	})

	require.Len(t, result, 1)
	entry := result[0]
	assert.Equal(t, canvasBase+"/courses/20564/modules/items/71", entry.CanvasURLs["B1"])
	assert.Equal(t, canvasBase+"/courses/20564/modules/7", entry.CanvasURLs["Z9"])
	assert.False(t, entry.CompletionStatus["Z9"])
}

func TestEnhanceCourseListingFailureDegradesWholeBatch(t *testing.T) {
	catalog := &fakeCatalog{coursesErr: errors.New("canvas down")}
	e := NewEnhancer(catalog, match.New(nil), canvasBase, testLogger())

	result := e.Enhance(context.Background(), []models.ClassworkEntry{
		{Subject: "Maths", Lessons: []string{"1"}},
		{Subject: "English", Lessons: []string{"2"}},
	})

	require.Len(t, result, 2)
	for _, entry := range result {
		for _, lesson := range entry.Lessons {
			assert.Equal(t, canvasBase, entry.CanvasURLs[lesson])
			assert.False(t, entry.CompletionStatus[lesson])
		}
	}
	assert.Zero(t, catalog.moduleCalls)
}

func TestEnhanceAppliesSubjectAliases(t *testing.T) {
	catalog := &fakeCatalog{
		courses: []models.Course{{ID: 31, Name: "Stage 3 HPE"}},
		modules: map[int][]models.Module{31: {{ID: 5, Name: "Unit 3"}}},
		items:   map[int][]models.ModuleItem{5: {{ID: 51, Title: "Lesson 3 Ball Games", HTMLURL: canvasBase + "/items/51"}}},
	}
	e := NewEnhancer(catalog, match.New(nil), canvasBase, testLogger())

	result := e.Enhance(context.Background(), []models.ClassworkEntry{
		{Subject: "PE", Unit: "Unit 3", Lessons: []string{"3"}},
	})

	require.Len(t, result, 1)
	assert.Equal(t, 31, result[0].CourseID)
	assert.Equal(t, canvasBase+"/items/51", result[0].CanvasURLs["3"])
}
