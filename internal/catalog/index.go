// Package catalog provides a process-lifetime cache of Canvas catalog
// listings (courses, modules, module items).
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zschool/planner/internal/models"
)

// Lister is the slice of the Canvas client the index needs.
type Lister interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Modules(ctx context.Context, courseID int) ([]models.Module, error)
	ModuleItems(ctx context.Context, courseID, moduleID int) ([]models.ModuleItem, error)
}

// itemKey keys the module-item cache by (course, module).
type itemKey struct {
	courseID int
	moduleID int
}

// Index lazily populates and caches catalog listings for the lifetime of
// the process. There is no invalidation: catalogs change rarely within a
// session and a restart clears everything. Concurrent population races
// are benign last-write-wins overwrites of idempotent fetches.
type Index struct {
	canvas Lister
	logger *slog.Logger

	coursesMu sync.Mutex
	courses   []models.Course
	haveAll   bool

	modules sync.Map // courseID -> []models.Module
	items   sync.Map // itemKey -> []models.ModuleItem
}

// NewIndex creates an Index over the given catalog source.
func NewIndex(canvas Lister, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{canvas: canvas, logger: logger}
}

// Courses returns the cached course listing, fetching it once on first
// use. Unlike module and item lookups this propagates fetch errors: with
// no course listing at all there is nothing to resolve against, and the
// caller decides how to degrade.
func (x *Index) Courses(ctx context.Context) ([]models.Course, error) {
	x.coursesMu.Lock()
	defer x.coursesMu.Unlock()

	if x.haveAll {
		return x.courses, nil
	}
	courses, err := x.canvas.Courses(ctx)
	if err != nil {
		return nil, err
	}
	x.courses = courses
	x.haveAll = true
	return courses, nil
}

// Modules returns the module listing for a course. Fetch failures are
// logged and yield an empty slice; enrichment is best-effort and callers
// must tolerate an empty catalog. Failures are not cached, so a later
// call retries.
func (x *Index) Modules(ctx context.Context, courseID int) []models.Module {
	if cached, ok := x.modules.Load(courseID); ok {
		return cached.([]models.Module)
	}
	modules, err := x.canvas.Modules(ctx, courseID)
	if err != nil {
		x.logger.Warn("module listing fetch failed", "course_id", courseID, "error", err)
		return nil
	}
	x.modules.Store(courseID, modules)
	return modules
}

// ModuleItems returns the item listing for a module, with the same
// caching and failure contract as Modules.
func (x *Index) ModuleItems(ctx context.Context, courseID, moduleID int) []models.ModuleItem {
	key := itemKey{courseID, moduleID}
	if cached, ok := x.items.Load(key); ok {
		return cached.([]models.ModuleItem)
	}
	items, err := x.canvas.ModuleItems(ctx, courseID, moduleID)
	if err != nil {
		x.logger.Warn("module item listing fetch failed",
			"course_id", courseID, "module_id", moduleID, "error", err)
		return nil
	}
	x.items.Store(key, items)
	return items
}
