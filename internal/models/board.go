package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// BoardState is a session-keyed kanban layout for a weekly plan.
// Columns maps column name (to-do, in-progress, done) to ordered card ids.
type BoardState struct {
	ID           surrealmodels.RecordID `json:"id,omitempty"`
	SessionID    string                 `json:"session_id"`
	WeeklyPlanID string                 `json:"weekly_plan_id,omitempty"`
	Columns      map[string][]string    `json:"columns"`
	UpdatedAt    time.Time              `json:"updated_at,omitempty"`
}
