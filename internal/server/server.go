// Package server exposes the planner's REST API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/zschool/planner/internal/canvas"
	"github.com/zschool/planner/internal/metrics"
	"github.com/zschool/planner/internal/models"
)

// PlanService is the weekly-plan surface the API serves.
type PlanService interface {
	Resolve(ctx context.Context, forceRefresh bool) (*models.WeeklyPlan, error)
	ByDate(ctx context.Context, weekStarting string) (*models.WeeklyPlan, error)
	List(ctx context.Context, limit int) ([]models.WeeklyPlan, error)
	CompleteLesson(ctx context.Context, courseID, moduleID, itemID int, done bool) error
}

// PageService is the converted-page surface the API serves.
type PageService interface {
	GetOrConvert(ctx context.Context, courseID int, pageSlug string, forceRefresh bool) (*models.ConvertedPage, bool, error)
	RawContent(ctx context.Context, courseID int, pageSlug string) (*canvas.Page, error)
	Status(ctx context.Context, courseID int, pageSlug string) (*models.ConvertedPage, error)
}

// BoardService is the board-session surface the API serves.
type BoardService interface {
	Save(ctx context.Context, sessionID, weeklyPlanID string, columns map[string][]string) (*models.BoardState, error)
	Get(ctx context.Context, sessionID string) (*models.BoardState, error)
	Clear(ctx context.Context, sessionID string) error
}

// Server routes HTTP requests to the planner services.
type Server struct {
	plans     PlanService
	pages     PageService
	boards    BoardService
	collector *metrics.Collector
	logger    *slog.Logger
	addr      string
}

// New creates a Server listening on addr.
func New(addr string, plans PlanService, pages PageService, boards BoardService, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		plans:     plans,
		pages:     pages,
		boards:    boards,
		collector: collector,
		logger:    logger,
		addr:      addr,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)

	mux.HandleFunc("GET /api/v1/week-plan/latest", s.handleLatestPlan)
	mux.HandleFunc("GET /api/v1/week-plans", s.handleListPlans)
	mux.HandleFunc("GET /api/v1/week-plans/{date}", s.handlePlanByDate)

	mux.HandleFunc("GET /api/v1/courses/{courseID}/pages/{slug}", s.handlePage)
	mux.HandleFunc("GET /api/v1/courses/{courseID}/pages/{slug}/status", s.handlePageStatus)

	mux.HandleFunc("POST /api/v1/lessons/complete", s.handleCompleteLesson)

	mux.HandleFunc("POST /api/v1/board/session", s.handleNewBoardSession)
	mux.HandleFunc("GET /api/v1/board/{sessionID}", s.handleGetBoard)
	mux.HandleFunc("PUT /api/v1/board/{sessionID}", s.handlePutBoard)
	mux.HandleFunc("DELETE /api/v1/board/{sessionID}", s.handleDeleteBoard)

	return loggingMiddleware(s.logger)(mux)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second, // conversions wait on the LLM
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
