// Package cli provides the command-line interface for the planner.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zschool/planner/internal/canvas"
	"github.com/zschool/planner/internal/catalog"
	"github.com/zschool/planner/internal/config"
	"github.com/zschool/planner/internal/db"
	"github.com/zschool/planner/internal/extract"
	"github.com/zschool/planner/internal/llm"
	"github.com/zschool/planner/internal/match"
	"github.com/zschool/planner/internal/metrics"
	"github.com/zschool/planner/internal/service"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and db client
	cfg      config.Config
	dbClient *db.Client

	// Lazy-initialized extraction model
	model *llm.Model
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Canvas weekly plan resolver",
	Long: `Planner turns a Canvas LMS weekly announcement into a structured weekly
plan: it extracts the classwork table with an LLM, matches each subject,
unit, and lesson against the Canvas course catalog, and caches converted
lesson pages for fast serving.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}

		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, nil)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// services bundles the resolution pipeline for commands that need it.
type services struct {
	plans     *service.PlanService
	pages     *service.PageService
	boards    *service.BoardService
	collector *metrics.Collector
	logger    *slog.Logger
	cleanup   func() error
}

// getServices wires the full pipeline. The extraction model is
// initialized once and reused across commands.
func getServices(ctx context.Context) (*services, error) {
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)

	if model == nil {
		var err error
		model, err = llm.NewModel(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init model: %w", err)
		}
	}

	aliases, err := config.LoadAliases(cfg.AliasFile)
	if err != nil {
		return nil, fmt.Errorf("load aliases: %w", err)
	}

	canvasClient := canvas.New(cfg.CanvasBaseURL, cfg.CanvasToken, cfg.CanvasTimeout, logger)
	extractor := extract.New(model, logger)
	index := catalog.NewIndex(canvasClient, logger)
	matcher := match.New(aliases)
	collector := metrics.NewCollector()

	enhancer := service.NewEnhancer(index, matcher, cfg.CanvasBaseURL, logger)
	plans := service.NewPlanService(canvasClient, extractor, enhancer, dbClient, collector, logger,
		cfg.AnnouncementCourse, cfg.AssignmentCourses)
	pages := service.NewPageService(canvasClient, extractor, dbClient, collector, logger)
	boards := service.NewBoardService(dbClient, logger)

	return &services{
		plans:     plans,
		pages:     pages,
		boards:    boards,
		collector: collector,
		logger:    logger,
		cleanup:   cleanup,
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(statusCmd)
}
