package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/zschool/planner/internal/models"
)

// UpsertWeeklyPlan creates or replaces the plan for its week-starting
// date. The record id is the date string, so re-extraction for the same
// week overwrites in place.
func (c *Client) UpsertWeeklyPlan(ctx context.Context, plan *models.WeeklyPlan) (*models.WeeklyPlan, error) {
	sql := `
		UPSERT type::record("weekly_plan", $id) SET
			week_starting = $week_starting,
			title = $title,
			teacher = $teacher,
			classwork = $classwork,
			announcements = $announcements,
			assignments = $assignments,
			assignment_period = $assignment_period,
			created_at = time::now()
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.WeeklyPlan](ctx, c.db, sql, map[string]any{
		"id":                plan.WeekStarting,
		"week_starting":     plan.WeekStarting,
		"title":             plan.Title,
		"teacher":           plan.Teacher,
		"classwork":         plan.Classwork,
		"announcements":     plan.Announcements,
		"assignments":       plan.Assignments,
		"assignment_period": plan.AssignmentPeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert weekly plan: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("upsert weekly plan: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

// GetLatestWeeklyPlan returns the plan with the most recent week-starting
// date, or ErrNotFound when none has been stored yet.
func (c *Client) GetLatestWeeklyPlan(ctx context.Context) (*models.WeeklyPlan, error) {
	results, err := surrealdb.Query[[]models.WeeklyPlan](ctx, c.db, `
		SELECT * FROM weekly_plan ORDER BY week_starting DESC LIMIT 1
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("get latest weekly plan: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

// GetWeeklyPlan returns the plan for a week-starting date.
func (c *Client) GetWeeklyPlan(ctx context.Context, weekStarting string) (*models.WeeklyPlan, error) {
	results, err := surrealdb.Query[[]models.WeeklyPlan](ctx, c.db, `
		SELECT * FROM type::record("weekly_plan", $id)
	`, map[string]any{"id": weekStarting})
	if err != nil {
		return nil, fmt.Errorf("get weekly plan: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

// ListWeeklyPlans returns stored plans newest-first, up to limit.
func (c *Client) ListWeeklyPlans(ctx context.Context, limit int) ([]models.WeeklyPlan, error) {
	results, err := surrealdb.Query[[]models.WeeklyPlan](ctx, c.db, `
		SELECT * FROM weekly_plan ORDER BY week_starting DESC LIMIT $limit
	`, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list weekly plans: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.WeeklyPlan{}, nil
	}
	return (*results)[0].Result, nil
}
