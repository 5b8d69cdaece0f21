package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zschool/planner/internal/models"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-resolve the weekly plan from the latest announcement",
	Long: `Fetch the latest weekly announcement from Canvas, extract the classwork
table, resolve every subject and lesson against the course catalog, and
store the result. Overwrites any stored plan for the same week.

Examples:
  planner refresh`,
	RunE: runRefresh,
}

var showWeek string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored weekly plan",
	Long: `Print the stored weekly plan without contacting Canvas or the model.

Examples:
  planner show
  planner show --week 2025-07-28`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showWeek, "week", "", "week starting date (YYYY-MM-DD, default latest)")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svcs, err := getServices(ctx)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	defer func() { _ = svcs.cleanup() }()

	plan, err := svcs.plans.Resolve(ctx, true)
	if err != nil {
		return fmt.Errorf("resolve weekly plan: %w", err)
	}

	printPlan(plan)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var plan *models.WeeklyPlan
	var err error
	if showWeek != "" {
		plan, err = dbClient.GetWeeklyPlan(ctx, showWeek)
	} else {
		plan, err = dbClient.GetLatestWeeklyPlan(ctx)
	}
	if err != nil {
		return fmt.Errorf("load weekly plan: %w", err)
	}

	printPlan(plan)
	return nil
}

func printPlan(plan *models.WeeklyPlan) {
	t := defaultTheme

	fmt.Println(t.headingStyle().Render(plan.Title))
	fmt.Printf("Week starting %s", plan.WeekStarting)
	if plan.Teacher.Name != "" {
		fmt.Printf(" - %s", plan.Teacher.Name)
		if plan.Teacher.Role != "" {
			fmt.Printf(" (%s)", plan.Teacher.Role)
		}
	}
	fmt.Println()
	fmt.Println()

	for _, entry := range plan.Classwork {
		fmt.Println(t.subjectStyle().Render(entry.Subject))
		if entry.Unit != "" || entry.Topic != "" {
			fmt.Printf("  %s", entry.Unit)
			if entry.Topic != "" {
				fmt.Printf(" / %s", entry.Topic)
			}
			fmt.Println()
		}
		for _, lesson := range entry.Lessons {
			mark := "·"
			if entry.CompletionStatus[lesson] {
				mark = t.successStyle().Render("✓")
			}
			fmt.Printf("  %s %s", mark, lesson)
			if url, ok := entry.CanvasURLs[lesson]; ok && verbose {
				fmt.Printf("  %s", t.hintStyle().Render(url))
			}
			fmt.Println()
		}
		if len(entry.Days) > 0 {
			fmt.Printf("  Days: %s\n", strings.Join(entry.Days, ", "))
		}
		for _, note := range entry.Notes {
			fmt.Printf("  %s\n", t.hintStyle().Render(note))
		}
		fmt.Println()
	}

	if len(plan.Announcements) > 0 {
		fmt.Println(t.headingStyle().Render("Announcements"))
		for _, a := range plan.Announcements {
			fmt.Printf("  [%s] %s\n", a.Type, a.Message)
		}
		fmt.Println()
	}

	if len(plan.Assignments) > 0 {
		fmt.Println(t.headingStyle().Render(fmt.Sprintf("Assignments due (%d)", len(plan.Assignments))))
		for _, a := range plan.Assignments {
			fmt.Printf("  - %s", a.Title)
			if a.DueAt != "" {
				fmt.Printf(" (due %s)", a.DueAt)
			}
			fmt.Println()
		}
	}
}
