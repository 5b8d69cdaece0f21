package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/zschool/planner/internal/models"
)

// UpsertBoardState saves a session's board layout, keyed by session id.
func (c *Client) UpsertBoardState(ctx context.Context, state *models.BoardState) (*models.BoardState, error) {
	sql := `
		UPSERT type::record("board_state", $id) SET
			session_id = $session_id,
			weekly_plan_id = $weekly_plan_id,
			columns = $columns,
			updated_at = time::now()
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.BoardState](ctx, c.db, sql, map[string]any{
		"id":             state.SessionID,
		"session_id":     state.SessionID,
		"weekly_plan_id": state.WeeklyPlanID,
		"columns":        state.Columns,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert board state: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("upsert board state: no result returned")
	}
	return &(*results)[0].Result[0], nil
}

// GetBoardState returns a session's board layout.
func (c *Client) GetBoardState(ctx context.Context, sessionID string) (*models.BoardState, error) {
	results, err := surrealdb.Query[[]models.BoardState](ctx, c.db, `
		SELECT * FROM type::record("board_state", $id)
	`, map[string]any{"id": sessionID})
	if err != nil {
		return nil, fmt.Errorf("get board state: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

// DeleteBoardState removes a session's board layout. Deleting a session
// that was never saved is not an error.
func (c *Client) DeleteBoardState(ctx context.Context, sessionID string) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		DELETE type::record("board_state", $id)
	`, map[string]any{"id": sessionID})
	if err != nil {
		return fmt.Errorf("delete board state: %w", err)
	}
	return nil
}
