package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zschool/planner/internal/canvas"
	"github.com/zschool/planner/internal/db"
	"github.com/zschool/planner/internal/extract"
	"github.com/zschool/planner/internal/models"
)

type fakePlans struct {
	plan         *models.WeeklyPlan
	resolveErr   error
	forceGot     bool
	completeErr  error
	completeGot  *completeLessonRequest
	listLimitGot int
}

func (f *fakePlans) Resolve(_ context.Context, forceRefresh bool) (*models.WeeklyPlan, error) {
	f.forceGot = forceRefresh
	return f.plan, f.resolveErr
}

func (f *fakePlans) ByDate(_ context.Context, weekStarting string) (*models.WeeklyPlan, error) {
	if f.plan != nil && f.plan.WeekStarting == weekStarting {
		return f.plan, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakePlans) List(_ context.Context, limit int) ([]models.WeeklyPlan, error) {
	f.listLimitGot = limit
	if f.plan == nil {
		return []models.WeeklyPlan{}, nil
	}
	return []models.WeeklyPlan{*f.plan}, nil
}

func (f *fakePlans) CompleteLesson(_ context.Context, courseID, moduleID, itemID int, done bool) error {
	f.completeGot = &completeLessonRequest{CourseID: courseID, ModuleID: moduleID, ItemID: itemID, Done: done}
	return f.completeErr
}

type fakePages struct {
	page   *models.ConvertedPage
	raw    *canvas.Page
	err    error
	cached bool
}

func (f *fakePages) GetOrConvert(_ context.Context, _ int, _ string, _ bool) (*models.ConvertedPage, bool, error) {
	return f.page, f.cached, f.err
}

func (f *fakePages) RawContent(_ context.Context, _ int, _ string) (*canvas.Page, error) {
	return f.raw, f.err
}

func (f *fakePages) Status(_ context.Context, _ int, _ string) (*models.ConvertedPage, error) {
	if f.page == nil {
		return nil, db.ErrNotFound
	}
	return f.page, nil
}

type fakeBoards struct {
	states map[string]*models.BoardState
}

func (f *fakeBoards) Save(_ context.Context, sessionID, planID string, columns map[string][]string) (*models.BoardState, error) {
	if sessionID == "" {
		sessionID = "generated-session"
	}
	state := &models.BoardState{SessionID: sessionID, WeeklyPlanID: planID, Columns: columns}
	f.states[sessionID] = state
	return state, nil
}

func (f *fakeBoards) Get(_ context.Context, sessionID string) (*models.BoardState, error) {
	state, ok := f.states[sessionID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return state, nil
}

func (f *fakeBoards) Clear(_ context.Context, sessionID string) error {
	delete(f.states, sessionID)
	return nil
}

func newTestServer(plans *fakePlans, pages *fakePages) (*Server, *fakeBoards) {
	boards := &fakeBoards{states: make(map[string]*models.BoardState)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(":0", plans, pages, boards, nil, logger), boards
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(&fakePlans{}, &fakePages{})
	rec := doRequest(t, s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestLatestPlan(t *testing.T) {
	plans := &fakePlans{plan: &models.WeeklyPlan{WeekStarting: "2025-07-28", Title: "Week starting Monday 28 July"}}
	s, _ := newTestServer(plans, &fakePages{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/week-plan/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, plans.forceGot)

	var plan models.WeeklyPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, "2025-07-28", plan.WeekStarting)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/week-plan/latest?force_refresh=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, plans.forceGot)
}

func TestLatestPlanExtractionFailureIsBadGateway(t *testing.T) {
	plans := &fakePlans{resolveErr: &extract.MalformedResponseError{Err: io.ErrUnexpectedEOF}}
	s, _ := newTestServer(plans, &fakePages{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/week-plan/latest", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPlanByDateNotFound(t *testing.T) {
	s, _ := newTestServer(&fakePlans{}, &fakePages{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/week-plans/2025-01-06", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPlans(t *testing.T) {
	plans := &fakePlans{plan: &models.WeeklyPlan{WeekStarting: "2025-07-28"}}
	s, _ := newTestServer(plans, &fakePages{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/week-plans?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, plans.listLimitGot)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/week-plans?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPage(t *testing.T) {
	pages := &fakePages{
		page:   &models.ConvertedPage{PageSlug: "lesson-1", Components: []models.PageComponent{{Type: "text"}}},
		cached: true,
	}
	s, _ := newTestServer(&fakePlans{}, pages)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/courses/20564/pages/lesson-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Page   models.ConvertedPage `json:"page"`
		Cached bool                 `json:"cached"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
	assert.Equal(t, "lesson-1", resp.Page.PageSlug)
}

func TestGetPageRaw(t *testing.T) {
	pages := &fakePages{raw: &canvas.Page{Title: "Lesson 1", Body: "<p>raw</p>"}}
	s, _ := newTestServer(&fakePlans{}, pages)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/courses/20564/pages/lesson-1?raw=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page canvas.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "<p>raw</p>", page.Body)
}

func TestGetPageBadCourseID(t *testing.T) {
	s, _ := newTestServer(&fakePlans{}, &fakePages{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/courses/not-a-number/pages/lesson-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPageStatusNotFound(t *testing.T) {
	s, _ := newTestServer(&fakePlans{}, &fakePages{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/courses/20564/pages/lesson-1/status", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteLesson(t *testing.T) {
	plans := &fakePlans{}
	s, _ := newTestServer(plans, &fakePages{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/lessons/complete",
		`{"course_id": 20564, "module_id": 7, "item_id": 71, "done": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, plans.completeGot)
	assert.Equal(t, 71, plans.completeGot.ItemID)
	assert.True(t, plans.completeGot.Done)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/lessons/complete", `{"course_id": 20564}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/v1/lessons/complete", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoardLifecycle(t *testing.T) {
	s, _ := newTestServer(&fakePlans{}, &fakePages{})

	rec := doRequest(t, s, http.MethodPost, "/api/v1/board/session", `{"weekly_plan_id": "2025-07-28"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var state models.BoardState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.NotEmpty(t, state.SessionID)

	rec = doRequest(t, s, http.MethodPut, "/api/v1/board/"+state.SessionID,
		`{"columns": {"done": ["maths-b1"]}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/board/"+state.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maths-b1")

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/board/"+state.SessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/board/"+state.SessionID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusEndpoint(t *testing.T) {
	s, _ := newTestServer(&fakePlans{}, &fakePages{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
