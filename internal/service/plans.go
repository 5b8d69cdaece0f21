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

// AnnouncementSource is the slice of the Canvas client the plan service
// needs.
type AnnouncementSource interface {
	LatestAnnouncement(ctx context.Context, courseID int) (*canvas.Announcement, error)
	Assignments(ctx context.Context, courseIDs []int, startDate, endDate string) ([]models.Assignment, error)
	MarkItemDone(ctx context.Context, courseID, moduleID, itemID int, done bool) error
}

// AnnouncementParser runs the extraction contract over announcement HTML.
type AnnouncementParser interface {
	ParseAnnouncement(ctx context.Context, html string) (*extract.Result, error)
}

// ClassworkEnhancer resolves classwork entries against the catalog.
type ClassworkEnhancer interface {
	Enhance(ctx context.Context, classwork []models.ClassworkEntry) []models.ClassworkEntry
}

// PlanStore persists weekly plans.
type PlanStore interface {
	UpsertWeeklyPlan(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error)
	GetLatestWeeklyPlan(ctx context.Context) (*models.WeeklyPlan, error)
	GetWeeklyPlan(ctx context.Context, weekStarting string) (*models.WeeklyPlan, error)
	ListWeeklyPlans(ctx context.Context, limit int) ([]models.WeeklyPlan, error)
}

// ErrNoAnnouncement indicates the announcement course has no posts to
// build a plan from.
var ErrNoAnnouncement = errors.New("no announcement available")

// PlanService orchestrates the fetch -> extract -> enhance -> persist
// pipeline for weekly plans.
type PlanService struct {
	canvas    AnnouncementSource
	extractor AnnouncementParser
	enhancer  ClassworkEnhancer
	store     PlanStore
	collector *metrics.Collector
	logger    *slog.Logger

	announcementCourse int
	assignmentCourses  []int

	now func() time.Time
}

// NewPlanService creates a PlanService.
func NewPlanService(
	source AnnouncementSource,
	extractor AnnouncementParser,
	enhancer ClassworkEnhancer,
	store PlanStore,
	collector *metrics.Collector,
	logger *slog.Logger,
	announcementCourse int,
	assignmentCourses []int,
) *PlanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanService{
		canvas:             source,
		extractor:          extractor,
		enhancer:           enhancer,
		store:              store,
		collector:          collector,
		logger:             logger,
		announcementCourse: announcementCourse,
		assignmentCourses:  assignmentCourses,
		now:                time.Now,
	}
}

// Resolve returns the weekly plan. Without forceRefresh a previously
// stored plan is served as-is; otherwise the full pipeline runs. Fetch
// and extraction failures are fatal to the attempt; enhancement and
// assignment failures degrade to fallback or empty data.
func (s *PlanService) Resolve(ctx context.Context, forceRefresh bool) (*models.WeeklyPlan, error) {
	if !forceRefresh {
		plan, err := s.store.GetLatestWeeklyPlan(ctx)
		if err == nil {
			return plan, nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
	}

	return s.refresh(ctx)
}

func (s *PlanService) refresh(ctx context.Context) (*models.WeeklyPlan, error) {
	start := time.Now()
	ann, err := s.canvas.LatestAnnouncement(ctx, s.announcementCourse)
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpCanvasFetch, time.Since(start))
	}
	if err != nil {
		if s.collector != nil {
			s.collector.RecordError(metrics.OpCanvasFetch)
		}
		return nil, fmt.Errorf("fetch announcement: %w", err)
	}
	if ann == nil {
		return nil, ErrNoAnnouncement
	}

	start = time.Now()
	result, err := s.extractor.ParseAnnouncement(ctx, ann.Message)
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpLLMExtract, time.Since(start))
	}
	if err != nil {
		if s.collector != nil {
			s.collector.RecordError(metrics.OpLLMExtract)
		}
		return nil, fmt.Errorf("extract announcement: %w", err)
	}

	classwork := s.enhancer.Enhance(ctx, result.Classwork)

	weekStarting, weekStart := s.planWeek(result.WeekStarting)
	weekEnd := weekStart.AddDate(0, 0, 6)

	assignments := s.fetchAssignments(ctx, weekStart, weekEnd)

	plan := &models.WeeklyPlan{
		WeekStarting:  weekStarting,
		Title:         result.Title,
		Teacher:       result.Teacher,
		Classwork:     classwork,
		Announcements: result.Announcements,
		Assignments:   assignments,
		AssignmentPeriod: models.AssignmentPeriod{
			StartDate:        weekStart.Format("2006-01-02"),
			EndDate:          weekEnd.Format("2006-01-02"),
			TotalAssignments: len(assignments),
		},
	}

	saved, err := s.store.UpsertWeeklyPlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("save weekly plan: %w", err)
	}

	s.logger.Info("weekly plan resolved",
		"week_starting", saved.WeekStarting,
		"classwork_entries", len(saved.Classwork),
		"assignments", len(saved.Assignments))

	return saved, nil
}

// planWeek parses the extracted week-starting date, falling back to the
// current date when the model produced something unparseable.
func (s *PlanService) planWeek(weekStarting string) (string, time.Time) {
	start, err := time.Parse("2006-01-02", weekStarting)
	if err != nil {
		now := s.now()
		s.logger.Warn("unparseable week_starting date, keying plan by current date",
			"week_starting", weekStarting, "error", err)
		return now.Format("2006-01-02"), now
	}
	return weekStarting, start
}

// fetchAssignments pulls the week's due items per course, swallowing
// per-course failures so one broken course does not empty the whole
// listing.
func (s *PlanService) fetchAssignments(ctx context.Context, start, end time.Time) []models.Assignment {
	assignments := make([]models.Assignment, 0)
	startDate := start.Format("2006-01-02")
	endDate := end.Format("2006-01-02")

	for _, courseID := range s.assignmentCourses {
		fetched, err := s.canvas.Assignments(ctx, []int{courseID}, startDate, endDate)
		if err != nil {
			s.logger.Warn("assignment fetch failed", "course_id", courseID, "error", err)
			continue
		}
		assignments = append(assignments, fetched...)
	}
	return assignments
}

// Latest returns the most recently stored weekly plan.
func (s *PlanService) Latest(ctx context.Context) (*models.WeeklyPlan, error) {
	return s.store.GetLatestWeeklyPlan(ctx)
}

// ByDate returns the stored plan for a week-starting date.
func (s *PlanService) ByDate(ctx context.Context, weekStarting string) (*models.WeeklyPlan, error) {
	return s.store.GetWeeklyPlan(ctx, weekStarting)
}

// List returns stored plans newest-first.
func (s *PlanService) List(ctx context.Context, limit int) ([]models.WeeklyPlan, error) {
	return s.store.ListWeeklyPlans(ctx, limit)
}

// CompleteLesson toggles Canvas "mark as done" for a module item.
func (s *PlanService) CompleteLesson(ctx context.Context, courseID, moduleID, itemID int, done bool) error {
	if err := s.canvas.MarkItemDone(ctx, courseID, moduleID, itemID, done); err != nil {
		return fmt.Errorf("mark lesson done: %w", err)
	}
	return nil
}
