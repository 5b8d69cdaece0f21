package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// TeacherInfo is the announcement signature extracted by the model.
type TeacherInfo struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ClassworkEntry is one subject's worth of announcement-derived work for a
// week. The extraction contract produces the base fields; the enhancer fills
// in the Canvas resolution fields and never re-creates the entry.
type ClassworkEntry struct {
	Subject string   `json:"subject"`
	Unit    string   `json:"unit"`
	Topic   string   `json:"topic"`
	Lessons []string `json:"lessons"`
	Days    []string `json:"days"`
	Notes   []string `json:"notes"`

	// Enrichment, keyed by lesson token.
	CanvasURLs       map[string]string `json:"canvas_urls,omitempty"`
	CompletionStatus map[string]bool   `json:"completion_status,omitempty"`
	LessonAPIURLs    map[string]string `json:"lesson_api_urls,omitempty"`
	CourseID         int               `json:"course_id,omitempty"`
	ModuleID         int               `json:"module_id,omitempty"`
}

// AnnouncementNote is a general announcement item from the weekly post.
type AnnouncementNote struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Assignment is a due item pulled from the Canvas calendar for the week.
type Assignment struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	CourseID int     `json:"course_id"`
	DueAt    string  `json:"due_at,omitempty"`
	HTMLURL  string  `json:"html_url,omitempty"`
	Points   float64 `json:"points_possible,omitempty"`
	Type     string  `json:"type,omitempty"`
}

// AssignmentPeriod describes the date window assignments were fetched for.
type AssignmentPeriod struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TotalAssignments int    `json:"total_assignments"`
}

// WeeklyPlan is the fully resolved weekly record. At most one exists per
// week-starting date; re-extraction for the same week overwrites it.
type WeeklyPlan struct {
	ID               surrealmodels.RecordID `json:"id,omitempty"`
	WeekStarting     string                 `json:"week_starting"`
	Title            string                 `json:"title"`
	Teacher          TeacherInfo            `json:"teacher"`
	Classwork        []ClassworkEntry       `json:"classwork"`
	Announcements    []AnnouncementNote     `json:"announcements,omitempty"`
	Assignments      []Assignment           `json:"assignments"`
	AssignmentPeriod AssignmentPeriod       `json:"assignment_period"`
	CreatedAt        time.Time              `json:"created_at,omitempty"`
}
