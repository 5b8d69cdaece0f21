package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zschool/planner/internal/models"
)

func TestItemPatternPriority(t *testing.T) {
	m := New(nil)

	// Pattern priority beats listing order: every item is checked
	// against the raw token before any fallback pattern runs. Both
	// titles contain the literal "1"; the first in listing order wins.
	items := []models.ModuleItem{
		{ID: 1, Title: "Lesson 1 Intro"},
		{ID: 2, Title: "L1"},
	}

	item, ok := m.Item("1", items)
	assert.True(t, ok)
	assert.Equal(t, 1, item.ID)
}

func TestItemAlphaPrefixTriedBeforeBareDigits(t *testing.T) {
	m := New(nil)

	// For "B3", the literal "b3" patterns must be exhausted before the
	// bare "3" fallback: the item containing only "3" would otherwise
	// shadow the real Lesson B3.
	items := []models.ModuleItem{
		{ID: 1, Title: "Chapter 3 Reading"},
		{ID: 2, Title: "Lesson B3"},
	}

	item, ok := m.Item("B3", items)
	assert.True(t, ok)
	assert.Equal(t, 2, item.ID)
}

func TestItemBareDigitFallback(t *testing.T) {
	m := New(nil)
	items := []models.ModuleItem{
		{ID: 1, Title: "Chapter 3 Reading"},
	}

	// No "b3" anywhere; the numeric suffix is the last resort.
	item, ok := m.Item("B3", items)
	assert.True(t, ok)
	assert.Equal(t, 1, item.ID)
}

func TestItemZeroPadding(t *testing.T) {
	m := New(nil)

	items := []models.ModuleItem{{ID: 1, Title: "Worksheet 01"}}
	item, ok := m.Item("1", items)
	assert.True(t, ok)
	assert.Equal(t, 1, item.ID)

	// Zero padding only applies to single-digit tokens.
	items = []models.ModuleItem{{ID: 2, Title: "Worksheet 011"}}
	_, ok = m.Item("11", items)
	assert.True(t, ok) // "11" is a substring of "011"

	items = []models.ModuleItem{{ID: 3, Title: "Worksheet A"}}
	_, ok = m.Item("11", items)
	assert.False(t, ok)
}

func TestItemLessonWordFallback(t *testing.T) {
	m := New(nil)
	items := []models.ModuleItem{
		{ID: 1, Title: "Welcome"},
		{ID: 2, Title: "Lesson overview"},
	}

	item, ok := m.Item("42", items)
	assert.True(t, ok)
	assert.Equal(t, 2, item.ID)
}

func TestItemUnresolved(t *testing.T) {
	m := New(nil)

	_, ok := m.Item("7", []models.ModuleItem{{ID: 1, Title: "Welcome"}})
	assert.False(t, ok)

	_, ok = m.Item("", []models.ModuleItem{{ID: 1, Title: "Lesson 1"}})
	assert.False(t, ok)

	_, ok = m.Item("1", nil)
	assert.False(t, ok)
}

func TestLessonPatternOrder(t *testing.T) {
	got := lessonPatterns("b3")
	want := []string{
		"b3", "lesson b3", "lesson-b3", "lesson_b3", "lessonb3", "lb3",
		" b3 ", "-b3-", "_b3_", "3",
	}
	assert.Equal(t, want, got)

	got = lessonPatterns("1")
	assert.Equal(t, "1", got[0])
	assert.Equal(t, "01", got[len(got)-1])
}
