package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zschool/planner/internal/models"
)

// BoardStore persists session board layouts.
type BoardStore interface {
	UpsertBoardState(ctx context.Context, state *models.BoardState) (*models.BoardState, error)
	GetBoardState(ctx context.Context, sessionID string) (*models.BoardState, error)
	DeleteBoardState(ctx context.Context, sessionID string) error
}

// BoardService manages session-scoped kanban layouts over weekly plans.
type BoardService struct {
	store  BoardStore
	logger *slog.Logger
}

// NewBoardService creates a BoardService.
func NewBoardService(store BoardStore, logger *slog.Logger) *BoardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardService{store: store, logger: logger}
}

// Save stores a board layout. An empty session id starts a new session
// with a generated id; the saved state carries it back to the caller.
func (s *BoardService) Save(ctx context.Context, sessionID, weeklyPlanID string, columns map[string][]string) (*models.BoardState, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
		s.logger.Debug("new board session", "session_id", sessionID)
	}
	if columns == nil {
		columns = map[string][]string{}
	}

	return s.store.UpsertBoardState(ctx, &models.BoardState{
		SessionID:    sessionID,
		WeeklyPlanID: weeklyPlanID,
		Columns:      columns,
	})
}

// Get returns a session's board layout.
func (s *BoardService) Get(ctx context.Context, sessionID string) (*models.BoardState, error) {
	return s.store.GetBoardState(ctx, sessionID)
}

// Clear removes a session's board layout.
func (s *BoardService) Clear(ctx context.Context, sessionID string) error {
	return s.store.DeleteBoardState(ctx, sessionID)
}
