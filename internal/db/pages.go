package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/zschool/planner/internal/models"
)

// GetConvertedPage returns the cached conversion for a page, stamping a
// new last-accessed time. Returns ErrNotFound when the page has never
// been converted.
func (c *Client) GetConvertedPage(ctx context.Context, courseID int, pageSlug string) (*models.ConvertedPage, error) {
	key := models.PageKey(courseID, pageSlug)

	results, err := surrealdb.Query[[]models.ConvertedPage](ctx, c.db, `
		SELECT * FROM type::record("converted_page", $id)
	`, map[string]any{"id": key})
	if err != nil {
		return nil, fmt.Errorf("get converted page: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	page := (*results)[0].Result[0]

	_, err = surrealdb.Query[any](ctx, c.db, `
		UPDATE type::record("converted_page", $id) SET last_accessed_at = time::now()
	`, map[string]any{"id": key})
	if err != nil {
		return nil, fmt.Errorf("touch converted page: %w", err)
	}

	return &page, nil
}

// UpsertConvertedPage stores a successful conversion, overwriting any
// prior artifact for the same (course, slug) key. first_converted_at is
// never set here; the schema default stamps it once on create.
func (c *Client) UpsertConvertedPage(ctx context.Context, page *models.ConvertedPage) (*models.ConvertedPage, error) {
	sql := `
		UPSERT type::record("converted_page", $id) SET
			course_id = $course_id,
			page_slug = $page_slug,
			page_title = $page_title,
			page_id = $page_id,
			canvas_url = $canvas_url,
			content_hash = $content_hash,
			components = $components,
			processing_info = $processing_info,
			conversion_success = true,
			conversion_error = NONE,
			canvas_updated_at = $canvas_updated_at,
			last_accessed_at = time::now()
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.ConvertedPage](ctx, c.db, sql, map[string]any{
		"id":                models.PageKey(page.CourseID, page.PageSlug),
		"course_id":         page.CourseID,
		"page_slug":         page.PageSlug,
		"page_title":        page.PageTitle,
		"page_id":           page.PageID,
		"canvas_url":        page.CanvasURL,
		"content_hash":      page.ContentHash,
		"components":        page.Components,
		"processing_info":   page.ProcessingInfo,
		"canvas_updated_at": page.CanvasUpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert converted page: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("upsert converted page: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

// UpsertConversionError records a failed conversion for the key. The
// query deliberately never mentions components or content_hash: an error
// save must not clobber a previously cached good artifact, and a fresh
// record just gets the schema defaults.
func (c *Client) UpsertConversionError(ctx context.Context, courseID int, pageSlug, pageTitle, errMsg string) error {
	sql := `
		UPSERT type::record("converted_page", $id) SET
			course_id = $course_id,
			page_slug = $page_slug,
			page_title = $page_title,
			conversion_success = false,
			conversion_error = $error,
			last_accessed_at = time::now()
	`

	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":         models.PageKey(courseID, pageSlug),
		"course_id":  courseID,
		"page_slug":  pageSlug,
		"page_title": pageTitle,
		"error":      errMsg,
	})
	if err != nil {
		return fmt.Errorf("upsert conversion error: %w", wrapQueryError(err))
	}
	return nil
}
