package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// PageComponent is one structured block of an AI-converted Canvas page.
type PageComponent struct {
	Type    string         `json:"type"`
	Heading string         `json:"heading,omitempty"`
	Content string         `json:"content,omitempty"`
	Items   []string       `json:"items,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// ProcessingInfo records how a page conversion went.
type ProcessingInfo struct {
	Status             string `json:"status"`
	Message            string `json:"message,omitempty"`
	ComponentCount     int    `json:"component_count,omitempty"`
	OriginalHTMLLength int    `json:"original_html_length,omitempty"`
	ConversionTimeMs   int64  `json:"conversion_time_ms,omitempty"`
}

// ConvertedPage is the durable transformation cache record, unique per
// (course_id, page_slug). Error saves keep the last good Components value.
type ConvertedPage struct {
	ID                surrealmodels.RecordID `json:"id,omitempty"`
	CourseID          int                    `json:"course_id"`
	PageSlug          string                 `json:"page_slug"`
	PageTitle         string                 `json:"page_title"`
	PageID            int                    `json:"page_id,omitempty"`
	CanvasURL         string                 `json:"canvas_url,omitempty"`
	ContentHash       string                 `json:"content_hash"`
	Components        []PageComponent        `json:"components"`
	ProcessingInfo    ProcessingInfo         `json:"processing_info"`
	ConversionSuccess bool                   `json:"conversion_success"`
	ConversionError   *string                `json:"conversion_error,omitempty"`
	CanvasUpdatedAt   *time.Time             `json:"canvas_updated_at,omitempty"`
	FirstConvertedAt  time.Time              `json:"first_converted_at,omitempty"`
	LastAccessedAt    time.Time              `json:"last_accessed_at,omitempty"`
}
