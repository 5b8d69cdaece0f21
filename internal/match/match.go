// Package match resolves free-text subject/unit/topic/lesson references
// against Canvas catalog listings.
//
// Catalogs are named by humans, so every stage is an ordered list of
// heuristics tried in a fixed priority with stable listing order. An
// unresolved reference is a normal outcome, not an error: each stage
// returns a no-match sentinel via its ok result and callers substitute
// fallback URLs.
package match

import (
	"maps"
	"strings"
)

// defaultAliases maps known ambiguous subject names (lowercased) to a
// canonical fragment of the combined course name. Curated from observed
// announcement wording; "Health" and "PE" are taught as one HPE course.
var defaultAliases = map[string]string{
	"pe":                 "HPE",
	"health":             "HPE",
	"physical education": "HPE",
	"maths":              "Mathematics",
}

// Matcher holds the static alias table used by subject resolution.
type Matcher struct {
	aliases map[string]string
}

// New creates a Matcher with the built-in alias table merged with
// overrides. Override keys are lowercased; an override for an existing
// key replaces the default.
func New(overrides map[string]string) *Matcher {
	aliases := maps.Clone(defaultAliases)
	for k, v := range overrides {
		aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Matcher{aliases: aliases}
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
