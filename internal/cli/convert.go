package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	convertForce bool
	convertJSON  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <course-id> <page-slug>",
	Short: "Convert a Canvas page to structured components",
	Long: `Fetch a Canvas page, convert it to structured components, and cache the
result. Serves the cached version when the page content is unchanged.

Examples:
  planner convert 20564 maths-lesson-b1
  planner convert 20564 maths-lesson-b1 --force
  planner convert 20564 maths-lesson-b1 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "reconvert even if cached")
	convertCmd.Flags().BoolVar(&convertJSON, "json", false, "print the full record as JSON")
}

func runConvert(cmd *cobra.Command, args []string) error {
	courseID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("course id must be an integer: %q", args[0])
	}
	slug := args[1]

	ctx := context.Background()
	svcs, err := getServices(ctx)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	defer func() { _ = svcs.cleanup() }()

	page, cached, err := svcs.pages.GetOrConvert(ctx, courseID, slug, convertForce)
	if err != nil {
		return fmt.Errorf("convert page: %w", err)
	}

	if convertJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	t := defaultTheme
	source := "converted"
	if cached {
		source = "cached"
	}
	fmt.Println(t.headingStyle().Render(page.PageTitle))
	fmt.Printf("%s (%s, %d components)\n\n", page.PageSlug, source, len(page.Components))

	for _, c := range page.Components {
		if c.Heading != "" {
			fmt.Println(t.subjectStyle().Render(c.Heading))
		}
		if c.Content != "" {
			fmt.Println(c.Content)
		}
		for _, item := range c.Items {
			fmt.Printf("  - %s\n", item)
		}
		fmt.Println()
	}

	return nil
}
