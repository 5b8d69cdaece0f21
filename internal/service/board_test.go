package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zschool/planner/internal/db"
	"github.com/zschool/planner/internal/models"
)

type fakeBoardStore struct {
	states map[string]*models.BoardState
}

func newFakeBoardStore() *fakeBoardStore {
	return &fakeBoardStore{states: make(map[string]*models.BoardState)}
}

func (f *fakeBoardStore) UpsertBoardState(_ context.Context, state *models.BoardState) (*models.BoardState, error) {
	f.states[state.SessionID] = state
	return state, nil
}

func (f *fakeBoardStore) GetBoardState(_ context.Context, sessionID string) (*models.BoardState, error) {
	state, ok := f.states[sessionID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return state, nil
}

func (f *fakeBoardStore) DeleteBoardState(_ context.Context, sessionID string) error {
	delete(f.states, sessionID)
	return nil
}

func TestBoardSaveGeneratesSession(t *testing.T) {
	s := NewBoardService(newFakeBoardStore(), testLogger())

	state, err := s.Save(context.Background(), "", "2025-07-28", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, state.SessionID, "empty session id should be generated")
	assert.NotNil(t, state.Columns)

	// Saving again under the returned id updates in place.
	updated, err := s.Save(context.Background(), state.SessionID, "2025-07-28", map[string][]string{
		"done": {"maths-b1"},
	})
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, updated.SessionID)

	fetched, err := s.Get(context.Background(), state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"maths-b1"}, fetched.Columns["done"])
}

func TestBoardClear(t *testing.T) {
	s := NewBoardService(newFakeBoardStore(), testLogger())

	state, err := s.Save(context.Background(), "", "2025-07-28", nil)
	require.NoError(t, err)

	require.NoError(t, s.Clear(context.Background(), state.SessionID))

	_, err = s.Get(context.Background(), state.SessionID)
	assert.ErrorIs(t, err, db.ErrNotFound)
}
