package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zschool/planner/internal/canvas"
	"github.com/zschool/planner/internal/db"
	"github.com/zschool/planner/internal/extract"
	"github.com/zschool/planner/internal/metrics"
	"github.com/zschool/planner/internal/models"
)

// PageSource fetches raw page content from Canvas.
type PageSource interface {
	PageContent(ctx context.Context, courseID int, pageSlug string) (*canvas.Page, error)
}

// PageTransformer structures page markdown into display components.
type PageTransformer interface {
	TransformPage(ctx context.Context, title, markdown string) ([]models.PageComponent, error)
}

// PageStore persists converted pages.
type PageStore interface {
	GetConvertedPage(ctx context.Context, courseID int, pageSlug string) (*models.ConvertedPage, error)
	UpsertConvertedPage(ctx context.Context, page *models.ConvertedPage) (*models.ConvertedPage, error)
	UpsertConversionError(ctx context.Context, courseID int, pageSlug, pageTitle, errMsg string) error
}

// PageService serves AI-converted pages out of the durable cache,
// re-converting only when the source content changed.
type PageService struct {
	canvas    PageSource
	extractor PageTransformer
	store     PageStore
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewPageService creates a PageService.
func NewPageService(source PageSource, extractor PageTransformer, store PageStore, collector *metrics.Collector, logger *slog.Logger) *PageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageService{
		canvas:    source,
		extractor: extractor,
		store:     store,
		collector: collector,
		logger:    logger,
	}
}

// GetOrConvert returns the converted form of a page. The second return
// reports whether the cache satisfied the request. When Canvas is down
// but a cached conversion exists, the cache is served even if possibly
// stale.
func (s *PageService) GetOrConvert(ctx context.Context, courseID int, pageSlug string, forceRefresh bool) (*models.ConvertedPage, bool, error) {
	var cached *models.ConvertedPage
	if !forceRefresh {
		found, err := s.store.GetConvertedPage(ctx, courseID, pageSlug)
		switch {
		case err == nil:
			cached = found
		case !errors.Is(err, db.ErrNotFound):
			return nil, false, err
		}
	}

	page, err := s.canvas.PageContent(ctx, courseID, pageSlug)
	if err != nil {
		if cached != nil && cached.ConversionSuccess {
			s.logger.Warn("page fetch failed, serving cached conversion",
				"course_id", courseID, "page_slug", pageSlug, "error", err)
			return cached, true, nil
		}
		return nil, false, fmt.Errorf("fetch page content: %w", err)
	}

	if cached != nil && cached.ConversionSuccess && !IsStale(cached, page.Body, page.UpdatedAt) {
		if s.collector != nil {
			s.collector.RecordCacheHit()
		}
		return cached, true, nil
	}
	if s.collector != nil {
		s.collector.RecordCacheMiss()
	}

	converted, err := s.convert(ctx, courseID, pageSlug, page)
	if err != nil {
		return nil, false, err
	}
	return converted, false, nil
}

func (s *PageService) convert(ctx context.Context, courseID int, pageSlug string, page *canvas.Page) (*models.ConvertedPage, error) {
	start := time.Now()

	markdown, err := extract.HTMLToMarkdown(page.Body)
	if err == nil {
		var components []models.PageComponent
		components, err = s.extractor.TransformPage(ctx, page.Title, markdown)
		if err == nil {
			if s.collector != nil {
				s.collector.RecordTiming(metrics.OpLLMTransform, time.Since(start))
			}
			return s.saveConverted(ctx, courseID, pageSlug, page, components, time.Since(start))
		}
	}

	if s.collector != nil {
		s.collector.RecordError(metrics.OpLLMTransform)
	}
	if saveErr := s.store.UpsertConversionError(ctx, courseID, pageSlug, page.Title, err.Error()); saveErr != nil {
		s.logger.Error("failed to record conversion error",
			"course_id", courseID, "page_slug", pageSlug, "error", saveErr)
	}
	return nil, fmt.Errorf("convert page %s: %w", pageSlug, err)
}

func (s *PageService) saveConverted(ctx context.Context, courseID int, pageSlug string, page *canvas.Page, components []models.PageComponent, took time.Duration) (*models.ConvertedPage, error) {
	record := &models.ConvertedPage{
		CourseID:    courseID,
		PageSlug:    pageSlug,
		PageTitle:   page.Title,
		PageID:      page.PageID,
		CanvasURL:   page.HTMLURL,
		ContentHash: models.ContentHash(page.Body),
		Components:  components,
		ProcessingInfo: models.ProcessingInfo{
			Status:             "completed",
			ComponentCount:     len(components),
			OriginalHTMLLength: len(page.Body),
			ConversionTimeMs:   took.Milliseconds(),
		},
	}
	if updatedAt, err := models.ParseCanvasTime(page.UpdatedAt); err == nil {
		record.CanvasUpdatedAt = &updatedAt
	}

	saved, err := s.store.UpsertConvertedPage(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("save converted page: %w", err)
	}
	return saved, nil
}

// RawContent returns the unconverted Canvas page.
func (s *PageService) RawContent(ctx context.Context, courseID int, pageSlug string) (*canvas.Page, error) {
	page, err := s.canvas.PageContent(ctx, courseID, pageSlug)
	if err != nil {
		return nil, fmt.Errorf("fetch page content: %w", err)
	}
	return page, nil
}

// Status returns the cached conversion record without converting.
func (s *PageService) Status(ctx context.Context, courseID int, pageSlug string) (*models.ConvertedPage, error) {
	return s.store.GetConvertedPage(ctx, courseID, pageSlug)
}

// IsStale reports whether a cached conversion no longer matches the
// current source. Either a content-hash change or a strictly newer
// upstream timestamp alone marks the record stale.
func IsStale(record *models.ConvertedPage, currentRawContent, upstreamUpdatedAt string) bool {
	if models.ContentHash(currentRawContent) != record.ContentHash {
		return true
	}
	if upstreamUpdatedAt != "" && record.CanvasUpdatedAt != nil {
		if updated, err := models.ParseCanvasTime(upstreamUpdatedAt); err == nil && updated.After(*record.CanvasUpdatedAt) {
			return true
		}
	}
	return false
}
