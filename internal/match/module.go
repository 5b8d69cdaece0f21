package match

import (
	"regexp"
	"strings"

	"github.com/zschool/planner/internal/models"
)

var topicNumberRe = regexp.MustCompile(`(?i)topic\s*(\d+)`)
var bareNumberRe = regexp.MustCompile(`^\d+$`)

// Module resolves a (unit, topic) pair to a module id. Search terms are
// tried in original order, modules in listing order; the first hit wins.
func (m *Matcher) Module(unit, topic string, modules []models.Module) (int, bool) {
	terms := moduleSearchTerms(unit, topic)
	if len(terms) == 0 || len(modules) == 0 {
		return 0, false
	}

	for _, term := range terms {
		for _, mod := range modules {
			if moduleNameMatches(term, mod.Name) {
				return mod.ID, true
			}
		}
	}
	return 0, false
}

// moduleSearchTerms builds the candidate list: the unit, the topic, and
// when the topic is a conjunction like "Topic 9 and 10", each constituent
// phrase with bare numbers normalized to "topic {n}".
func moduleSearchTerms(unit, topic string) []string {
	var terms []string
	if u := strings.TrimSpace(unit); u != "" {
		terms = append(terms, u)
	}
	t := strings.TrimSpace(topic)
	if t != "" {
		terms = append(terms, t)
		if strings.Contains(strings.ToLower(t), " and ") {
			for _, part := range regexp.MustCompile(`(?i)\s+and\s+`).Split(t, -1) {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				if bareNumberRe.MatchString(part) {
					part = "topic " + part
				}
				terms = append(terms, part)
			}
		}
	}
	return terms
}

// moduleNameMatches tries, in order: case-insensitive equality, substring
// containment either direction, and topic-number set intersection (so
// "topic 10" matches "Topic 10: Fractions" even when neither string
// contains the other).
func moduleNameMatches(term, name string) bool {
	if strings.EqualFold(term, name) {
		return true
	}
	if containsFold(name, term) || containsFold(term, name) {
		return true
	}

	termNums := topicNumbers(term)
	if len(termNums) == 0 {
		return false
	}
	for n := range topicNumbers(name) {
		if _, ok := termNums[n]; ok {
			return true
		}
	}
	return false
}

// topicNumbers extracts the set of numbers appearing as "topic {n}" tokens.
func topicNumbers(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, match := range topicNumberRe.FindAllStringSubmatch(s, -1) {
		n := strings.TrimLeft(match[1], "0")
		if n == "" {
			n = "0"
		}
		out[n] = struct{}{}
	}
	return out
}
