// Package models defines data structures shared across the planner backend.
package models

// Course is a top-level Canvas course as returned by the courses listing.
type Course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Module is a mid-level grouping of items within a course.
type Module struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CompletionRequirement carries Canvas completion tracking for a module item.
type CompletionRequirement struct {
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
}

// ModuleItem is a single addressable content unit within a module.
type ModuleItem struct {
	ID                    int                    `json:"id"`
	Title                 string                 `json:"title"`
	Type                  string                 `json:"type,omitempty"`
	HTMLURL               string                 `json:"html_url"`
	URL                   string                 `json:"url,omitempty"`
	PageURL               string                 `json:"page_url,omitempty"`
	CompletionRequirement *CompletionRequirement `json:"completion_requirement,omitempty"`
}

// Completed reports whether Canvas marks this item as done.
func (i ModuleItem) Completed() bool {
	return i.CompletionRequirement != nil && i.CompletionRequirement.Completed
}
