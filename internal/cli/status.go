package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zschool/planner/internal/db"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored plan and cache status",
	Long: `Show what the planner currently has stored: the latest weekly plan and
recent history. Does not contact Canvas or the model.

Examples:
  planner status`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	t := defaultTheme

	latest, err := dbClient.GetLatestWeeklyPlan(ctx)
	if errors.Is(err, db.ErrNotFound) {
		fmt.Println(t.hintStyle().Render("No weekly plan stored yet. Run 'planner refresh'."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load latest plan: %w", err)
	}

	fmt.Println(t.headingStyle().Render("Latest plan"))
	fmt.Printf("  Week starting: %s\n", latest.WeekStarting)
	fmt.Printf("  Title:         %s\n", latest.Title)
	fmt.Printf("  Subjects:      %d\n", len(latest.Classwork))
	fmt.Printf("  Assignments:   %d\n", len(latest.Assignments))
	if !latest.CreatedAt.IsZero() {
		fmt.Printf("  Resolved at:   %s\n", latest.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	plans, err := dbClient.ListWeeklyPlans(ctx, 10)
	if err != nil {
		return fmt.Errorf("list plans: %w", err)
	}
	if len(plans) > 1 {
		fmt.Println()
		fmt.Println(t.headingStyle().Render(fmt.Sprintf("History (%d)", len(plans))))
		for _, p := range plans {
			fmt.Printf("  - %s  %s\n", p.WeekStarting, p.Title)
		}
	}

	return nil
}
