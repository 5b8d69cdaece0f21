package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zschool/planner/internal/models"
)

// fakeLister counts fetches and can be told to fail.
type fakeLister struct {
	courseCalls int
	moduleCalls int
	itemCalls   int
	fail        bool
}

func (f *fakeLister) Courses(ctx context.Context) ([]models.Course, error) {
	f.courseCalls++
	if f.fail {
		return nil, errors.New("canvas unavailable")
	}
	return []models.Course{{ID: 1, Name: "Maths"}}, nil
}

func (f *fakeLister) Modules(ctx context.Context, courseID int) ([]models.Module, error) {
	f.moduleCalls++
	if f.fail {
		return nil, errors.New("canvas unavailable")
	}
	return []models.Module{{ID: 10, Name: "Topic 9"}}, nil
}

func (f *fakeLister) ModuleItems(ctx context.Context, courseID, moduleID int) ([]models.ModuleItem, error) {
	f.itemCalls++
	if f.fail {
		return nil, errors.New("canvas unavailable")
	}
	return []models.ModuleItem{{ID: 100, Title: "Lesson 1"}}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestIndexCachesCourses(t *testing.T) {
	fake := &fakeLister{}
	idx := NewIndex(fake, testLogger())

	ctx := context.Background()
	first, err := idx.Courses(ctx)
	require.NoError(t, err)
	second, err := idx.Courses(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.courseCalls, "second lookup must hit the cache")
}

func TestIndexCachesModulesAndItems(t *testing.T) {
	fake := &fakeLister{}
	idx := NewIndex(fake, testLogger())
	ctx := context.Background()

	idx.Modules(ctx, 1)
	idx.Modules(ctx, 1)
	assert.Equal(t, 1, fake.moduleCalls)

	idx.ModuleItems(ctx, 1, 10)
	idx.ModuleItems(ctx, 1, 10)
	assert.Equal(t, 1, fake.itemCalls)

	// A different key is a separate fetch.
	idx.ModuleItems(ctx, 1, 11)
	assert.Equal(t, 2, fake.itemCalls)
}

func TestIndexModuleFailureReturnsEmptyAndRetries(t *testing.T) {
	fake := &fakeLister{fail: true}
	idx := NewIndex(fake, testLogger())
	ctx := context.Background()

	assert.Empty(t, idx.Modules(ctx, 1))
	assert.Empty(t, idx.ModuleItems(ctx, 1, 10))

	// Failures are not cached; recovery is picked up on the next call.
	fake.fail = false
	assert.Len(t, idx.Modules(ctx, 1), 1)
	assert.Equal(t, 2, fake.moduleCalls)
}

func TestIndexCourseFailurePropagates(t *testing.T) {
	fake := &fakeLister{fail: true}
	idx := NewIndex(fake, testLogger())

	_, err := idx.Courses(context.Background())
	assert.Error(t, err)
}
