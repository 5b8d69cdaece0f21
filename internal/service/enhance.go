// Package service provides business logic for weekly-plan resolution.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zschool/planner/internal/match"
	"github.com/zschool/planner/internal/models"
)

// CatalogIndex is the slice of the catalog index the enhancer needs.
type CatalogIndex interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Modules(ctx context.Context, courseID int) []models.Module
	ModuleItems(ctx context.Context, courseID, moduleID int) []models.ModuleItem
}

// Enhancer resolves extracted classwork entries against the Canvas
// catalog, attaching per-lesson URLs and completion state. Resolution is
// best-effort throughout: a mismatch degrades to fallback URLs and never
// fails the batch.
type Enhancer struct {
	catalog CatalogIndex
	matcher *match.Matcher
	baseURL string
	logger  *slog.Logger
}

// NewEnhancer creates an Enhancer. baseURL is the Canvas instance root
// used to build fallback links when a subject, module, or lesson cannot
// be resolved.
func NewEnhancer(catalog CatalogIndex, matcher *match.Matcher, baseURL string, logger *slog.Logger) *Enhancer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{catalog: catalog, matcher: matcher, baseURL: baseURL, logger: logger}
}

// Enhance resolves each classwork entry independently. An empty input
// returns an empty output without touching the catalog. A course-listing
// failure degrades every entry to the dashboard fallback.
func (e *Enhancer) Enhance(ctx context.Context, classwork []models.ClassworkEntry) []models.ClassworkEntry {
	enhanced := make([]models.ClassworkEntry, 0, len(classwork))
	if len(classwork) == 0 {
		return enhanced
	}

	courses, err := e.catalog.Courses(ctx)
	if err != nil {
		e.logger.Error("course listing unavailable, falling back for all classwork", "error", err)
		for _, entry := range classwork {
			enhanced = append(enhanced, e.withFallback(entry, e.baseURL))
		}
		return enhanced
	}

	for _, entry := range classwork {
		enhanced = append(enhanced, e.enhanceEntry(ctx, entry, courses))
	}
	return enhanced
}

func (e *Enhancer) enhanceEntry(ctx context.Context, entry models.ClassworkEntry, courses []models.Course) models.ClassworkEntry {
	courseID, ok := e.matcher.Course(entry.Subject, courses)
	if !ok {
		e.logger.Debug("subject unresolved", "subject", entry.Subject)
		return e.withFallback(entry, e.baseURL)
	}
	entry.CourseID = courseID

	modules := e.catalog.Modules(ctx, courseID)
	moduleID, ok := e.matcher.Module(entry.Unit, entry.Topic, modules)
	if !ok {
		e.logger.Debug("module unresolved",
			"subject", entry.Subject, "unit", entry.Unit, "topic", entry.Topic)
		return e.withFallback(entry, e.courseURL(courseID))
	}
	entry.ModuleID = moduleID

	items := e.catalog.ModuleItems(ctx, courseID, moduleID)
	entry.CanvasURLs = make(map[string]string, len(entry.Lessons))
	entry.CompletionStatus = make(map[string]bool, len(entry.Lessons))
	entry.LessonAPIURLs = make(map[string]string, len(entry.Lessons))

	for _, lesson := range entry.Lessons {
		item, ok := e.matcher.Item(lesson, items)
		if !ok {
			e.logger.Debug("lesson unresolved",
				"subject", entry.Subject, "lesson", lesson)
			entry.CanvasURLs[lesson] = e.moduleURL(courseID, moduleID)
			entry.CompletionStatus[lesson] = false
			continue
		}
		entry.CanvasURLs[lesson] = item.HTMLURL
		entry.CompletionStatus[lesson] = item.Completed()
		if item.URL != "" {
			entry.LessonAPIURLs[lesson] = item.URL
		}
	}

	return entry
}

// withFallback assigns url to every lesson with completion unknown.
func (e *Enhancer) withFallback(entry models.ClassworkEntry, url string) models.ClassworkEntry {
	entry.CanvasURLs = make(map[string]string, len(entry.Lessons))
	entry.CompletionStatus = make(map[string]bool, len(entry.Lessons))
	for _, lesson := range entry.Lessons {
		entry.CanvasURLs[lesson] = url
		entry.CompletionStatus[lesson] = false
	}
	return entry
}

func (e *Enhancer) courseURL(courseID int) string {
	return fmt.Sprintf("%s/courses/%d", e.baseURL, courseID)
}

func (e *Enhancer) moduleURL(courseID, moduleID int) string {
	return fmt.Sprintf("%s/courses/%d/modules/%d", e.baseURL, courseID, moduleID)
}
