// Package extract turns raw Canvas HTML into structured records via an
// LLM call, then validates the output against a fixed schema. The model
// call is opaque; everything after it is a pure post-processing gate.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zschool/planner/internal/models"
)

// Generator is the LLM surface the extractor needs.
type Generator interface {
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Extractor runs announcement and page extraction prompts.
type Extractor struct {
	model  Generator
	logger *slog.Logger
}

func New(model Generator, logger *slog.Logger) *Extractor {
	return &Extractor{model: model, logger: logger}
}

// Result is the validated shape of a parsed weekly announcement.
type Result struct {
	WeekStarting  string                    `json:"week_starting"`
	Title         string                    `json:"title"`
	Teacher       models.TeacherInfo        `json:"teacher"`
	Classwork     []models.ClassworkEntry   `json:"classwork"`
	Announcements []models.AnnouncementNote `json:"announcements"`
}

// ParseAnnouncement extracts a weekly plan structure from announcement HTML.
func (e *Extractor) ParseAnnouncement(ctx context.Context, html string) (*Result, error) {
	userPrompt := fmt.Sprintf("**TARGET JSON FORMAT:**\n```json\n%s\n```\n\n**HTML CONTENT TO PARSE:**\n```html\n%s\n```", announcementSchema, html)

	raw, err := e.model.GenerateWithSystem(ctx, announcementSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("announcement extraction call: %w", err)
	}

	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if err := validateAnnouncement(doc); err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	e.logger.Debug("parsed announcement",
		"week_starting", result.WeekStarting,
		"classwork_entries", len(result.Classwork))

	return &result, nil
}

// validateAnnouncement rejects model output missing any required field.
func validateAnnouncement(doc map[string]any) error {
	for _, field := range []string{"week_starting", "title", "teacher", "classwork"} {
		if _, ok := doc[field]; !ok {
			return &SchemaError{Reason: fmt.Sprintf("missing required field %q", field)}
		}
	}

	teacher, ok := doc["teacher"].(map[string]any)
	if !ok {
		return &SchemaError{Reason: "teacher must be an object"}
	}
	for _, field := range []string{"name", "role"} {
		if _, ok := teacher[field]; !ok {
			return &SchemaError{Reason: fmt.Sprintf("teacher missing %q", field)}
		}
	}

	classwork, ok := doc["classwork"].([]any)
	if !ok {
		return &SchemaError{Reason: "classwork must be an array"}
	}
	for i, item := range classwork {
		entry, ok := item.(map[string]any)
		if !ok {
			return &SchemaError{Reason: fmt.Sprintf("classwork item %d must be an object", i)}
		}
		for _, field := range []string{"subject", "unit", "topic", "lessons", "days", "notes"} {
			if _, ok := entry[field]; !ok {
				return &SchemaError{Reason: fmt.Sprintf("classwork item %d missing %q", i, field)}
			}
		}
	}

	return nil
}

// TransformPage structures page markdown into display components. On a
// malformed model response it falls back to heading-split components so a
// page conversion never comes back empty-handed.
func (e *Extractor) TransformPage(ctx context.Context, title, markdown string) ([]models.PageComponent, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, ErrEmptyResponse
	}

	const maxPromptChars = 8000
	body := markdown
	if len(body) > maxPromptChars {
		body = body[:maxPromptChars]
	}
	userPrompt := fmt.Sprintf("Transform this Canvas lesson content:\n\nTitle: %s\n\nContent:\n%s", title, body)

	raw, err := e.model.GenerateWithSystem(ctx, pageTransformSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("page transform call: %w", err)
	}

	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var components []models.PageComponent
	if err := json.Unmarshal([]byte(cleaned), &components); err != nil {
		e.logger.Warn("page transform returned unparseable JSON, using heading fallback", "error", err)
		return FallbackComponents(markdown), nil
	}
	if len(components) == 0 {
		return FallbackComponents(markdown), nil
	}

	return components, nil
}

// FallbackComponents splits markdown on headings into plain text components.
func FallbackComponents(markdown string) []models.PageComponent {
	var components []models.PageComponent
	current := models.PageComponent{Type: "text"}
	var body []string

	flush := func() {
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Content != "" || current.Heading != "" {
			components = append(components, current)
		}
		current = models.PageComponent{Type: "text"}
		body = body[:0]
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "#") {
			flush()
			current.Heading = strings.TrimSpace(strings.TrimLeft(line, "# "))
			continue
		}
		body = append(body, line)
	}
	flush()

	return components
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
