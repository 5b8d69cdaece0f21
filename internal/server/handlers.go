package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/zschool/planner/internal/db"
	"github.com/zschool/planner/internal/extract"
	"github.com/zschool/planner/internal/llm"
	"github.com/zschool/planner/internal/service"
)

const defaultListLimit = 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps service errors onto HTTP status codes. Extraction
// contract failures surface as bad-gateway since the model, not the
// caller, produced the broken payload.
func statusFor(err error) int {
	var schemaErr *extract.SchemaError
	var malformed *extract.MalformedResponseError
	switch {
	case errors.Is(err, db.ErrNotFound), errors.Is(err, service.ErrNoAnnouncement):
		return http.StatusNotFound
	case errors.Is(err, extract.ErrEmptyResponse),
		errors.Is(err, llm.ErrFatalAPI),
		errors.As(err, &schemaErr),
		errors.As(err, &malformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func boolQuery(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{"status": "ok"}
	if s.collector != nil {
		resp["metrics"] = s.collector.Snapshot()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.Resolve(r.Context(), boolQuery(r, "force_refresh"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	plans, err := s.plans.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": plans, "count": len(plans)})
}

func (s *Server) handlePlanByDate(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.ByDate(r.Context(), r.PathValue("date"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) coursePage(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	courseID, err := strconv.Atoi(r.PathValue("courseID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "course id must be an integer"})
		return 0, "", false
	}
	return courseID, r.PathValue("slug"), true
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	courseID, slug, ok := s.coursePage(w, r)
	if !ok {
		return
	}

	if boolQuery(r, "raw") {
		page, err := s.pages.RawContent(r.Context(), courseID, slug)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
		return
	}

	page, cached, err := s.pages.GetOrConvert(r.Context(), courseID, slug, boolQuery(r, "force_refresh"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page, "cached": cached})
}

func (s *Server) handlePageStatus(w http.ResponseWriter, r *http.Request) {
	courseID, slug, ok := s.coursePage(w, r)
	if !ok {
		return
	}

	page, err := s.pages.Status(r.Context(), courseID, slug)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page_slug":          page.PageSlug,
		"conversion_success": page.ConversionSuccess,
		"conversion_error":   page.ConversionError,
		"content_hash":       page.ContentHash,
		"first_converted_at": page.FirstConvertedAt,
		"last_accessed_at":   page.LastAccessedAt,
		"processing_info":    page.ProcessingInfo,
	})
}

type completeLessonRequest struct {
	CourseID int  `json:"course_id"`
	ModuleID int  `json:"module_id"`
	ItemID   int  `json:"item_id"`
	Done     bool `json:"done"`
}

func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	var req completeLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.CourseID == 0 || req.ModuleID == 0 || req.ItemID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "course_id, module_id and item_id are required"})
		return
	}

	if err := s.plans.CompleteLesson(r.Context(), req.CourseID, req.ModuleID, req.ItemID, req.Done); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"completed": req.Done})
}

type boardRequest struct {
	WeeklyPlanID string              `json:"weekly_plan_id,omitempty"`
	Columns      map[string][]string `json:"columns"`
}

func (s *Server) handleNewBoardSession(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	state, err := s.boards.Save(r.Context(), "", req.WeeklyPlanID, req.Columns)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	state, err := s.boards.Get(r.Context(), r.PathValue("sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	state, err := s.boards.Save(r.Context(), r.PathValue("sessionID"), req.WeeklyPlanID, req.Columns)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.boards.Clear(r.Context(), r.PathValue("sessionID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
