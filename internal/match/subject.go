package match

import (
	"strings"

	"github.com/zschool/planner/internal/models"
)

// courseStrategy tries one way of resolving a subject against the course
// listing, returning the course id or a no-match sentinel.
type courseStrategy func(subject string, courses []models.Course) (int, bool)

// Course resolves a free-text subject name to a course id. Strategies run
// in a fixed priority; within each, courses are scanned in listing order
// so re-running against unchanged data is deterministic.
func (m *Matcher) Course(subject string, courses []models.Course) (int, bool) {
	subject = strings.TrimSpace(subject)
	if subject == "" || len(courses) == 0 {
		return 0, false
	}

	strategies := []courseStrategy{
		m.courseByAlias,
		courseByExact,
		courseByExactFold,
		courseBySubstring,
		courseByWholeWord,
	}
	for _, try := range strategies {
		if id, ok := try(subject, courses); ok {
			return id, true
		}
	}
	return 0, false
}

// courseByAlias consults the curated alias table. The canonical fragment
// must actually appear in a listed course name for the alias to resolve;
// otherwise the lower-priority organic strategies get their turn.
func (m *Matcher) courseByAlias(subject string, courses []models.Course) (int, bool) {
	canonical, ok := m.aliases[strings.ToLower(subject)]
	if !ok {
		return 0, false
	}
	for _, c := range courses {
		if containsFold(c.Name, canonical) {
			return c.ID, true
		}
	}
	return 0, false
}

func courseByExact(subject string, courses []models.Course) (int, bool) {
	for _, c := range courses {
		if c.Name == subject {
			return c.ID, true
		}
	}
	return 0, false
}

func courseByExactFold(subject string, courses []models.Course) (int, bool) {
	for _, c := range courses {
		if strings.EqualFold(c.Name, subject) {
			return c.ID, true
		}
	}
	return 0, false
}

func courseBySubstring(subject string, courses []models.Course) (int, bool) {
	for _, c := range courses {
		if containsFold(c.Name, subject) || containsFold(subject, c.Name) {
			return c.ID, true
		}
	}
	return 0, false
}

// courseByWholeWord matches the subject as a space-delimited token of the
// course name, catching short names that substring matching would already
// have found only as part of longer words.
func courseByWholeWord(subject string, courses []models.Course) (int, bool) {
	want := strings.ToLower(subject)
	for _, c := range courses {
		for _, tok := range strings.Fields(strings.ToLower(c.Name)) {
			if tok == want {
				return c.ID, true
			}
		}
	}
	return 0, false
}
