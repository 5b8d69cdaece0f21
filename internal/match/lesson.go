package match

import (
	"strings"
	"unicode"

	"github.com/zschool/planner/internal/models"
)

// Item resolves a single lesson token ("1", "B3", "11") to a module item.
// Patterns are tried in fixed priority: every item is checked against
// pattern k before any item is checked against pattern k+1, so a direct
// token hit always beats a padded or stripped variant further down the
// list. Unresolvable tokens fall back to the first item titled like a
// lesson at all; failing that the caller substitutes a module-level URL.
func (m *Matcher) Item(lesson string, items []models.ModuleItem) (models.ModuleItem, bool) {
	token := strings.ToLower(strings.TrimSpace(lesson))
	if token == "" || len(items) == 0 {
		return models.ModuleItem{}, false
	}

	for _, pattern := range lessonPatterns(token) {
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), pattern) {
				return item, true
			}
		}
	}

	// Diagnostic-quality fallback: anything that calls itself a lesson.
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), "lesson") {
			return item, true
		}
	}
	return models.ModuleItem{}, false
}

// lessonPatterns derives the ordered surface patterns for a lesson token.
func lessonPatterns(token string) []string {
	patterns := []string{
		token,
		"lesson " + token,
		"lesson-" + token,
		"lesson_" + token,
		"lesson" + token,
		"l" + token,
		" " + token + " ",
		"-" + token + "-",
		"_" + token + "_",
	}

	// "B3" style codes also try the bare numeric suffix.
	if suffix, ok := alphaPrefixDigits(token); ok {
		patterns = append(patterns, suffix)
	}

	// Single digits also try the zero-padded form; multi-digit tokens
	// deliberately do not.
	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		patterns = append(patterns, "0"+token)
	}

	return patterns
}

// alphaPrefixDigits returns the digit suffix of a one-letter-prefixed
// token like "b3" -> "3".
func alphaPrefixDigits(token string) (string, bool) {
	if len(token) < 2 {
		return "", false
	}
	if !unicode.IsLetter(rune(token[0])) {
		return "", false
	}
	for _, r := range token[1:] {
		if !unicode.IsDigit(r) {
			return "", false
		}
	}
	return token[1:], true
}
