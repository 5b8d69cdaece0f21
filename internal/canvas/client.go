// Package canvas provides a REST client for the Canvas LMS API.
package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zschool/planner/internal/models"
)

// perPage is the page size requested from listing endpoints. Catalogs at
// a single institution stay well under this, so pagination links are not
// followed.
const perPage = 100

// Client talks to the Canvas REST API with bearer-token auth.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Canvas client. baseURL is the institution root without
// the /api/v1 suffix.
func New(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the institution root, used for building fallback URLs.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CourseURL is the course front-page URL.
func (c *Client) CourseURL(courseID int) string {
	return fmt.Sprintf("%s/courses/%d", c.baseURL, courseID)
}

// CourseModulesURL is the fallback URL used when no specific module or
// item could be resolved.
func (c *Client) CourseModulesURL(courseID int) string {
	return fmt.Sprintf("%s/courses/%d/modules", c.baseURL, courseID)
}

// ModuleURL points at one module within a course.
func (c *Client) ModuleURL(courseID, moduleID int) string {
	return fmt.Sprintf("%s/courses/%d/modules/%d", c.baseURL, courseID, moduleID)
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("canvas request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("canvas %s: %s - %s", path, resp.Status, truncateBody(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

// LatestAnnouncement fetches the most recent announcement for a course.
// Returns nil when the course has no announcements.
func (c *Client) LatestAnnouncement(ctx context.Context, courseID int) (*Announcement, error) {
	q := url.Values{}
	q.Set("only_announcements", "true")
	q.Set("per_page", "1")

	var announcements []Announcement
	path := fmt.Sprintf("/courses/%d/discussion_topics", courseID)
	if err := c.get(ctx, path, q, &announcements); err != nil {
		return nil, fmt.Errorf("fetch latest announcement: %w", err)
	}
	if len(announcements) == 0 {
		return nil, nil
	}
	return &announcements[0], nil
}

// Courses lists the active courses visible to the token.
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	q := url.Values{}
	q.Set("enrollment_state", "active")
	q.Set("per_page", strconv.Itoa(perPage))

	var courses []models.Course
	if err := c.get(ctx, "/courses", q, &courses); err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}
	return courses, nil
}

// Modules lists the modules of a course in position order.
func (c *Client) Modules(ctx context.Context, courseID int) ([]models.Module, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))

	var modules []models.Module
	path := fmt.Sprintf("/courses/%d/modules", courseID)
	if err := c.get(ctx, path, q, &modules); err != nil {
		return nil, fmt.Errorf("fetch modules for course %d: %w", courseID, err)
	}
	return modules, nil
}

// ModuleItems lists the items of a module, including completion state.
func (c *Client) ModuleItems(ctx context.Context, courseID, moduleID int) ([]models.ModuleItem, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Add("include[]", "completion_requirement")

	var items []models.ModuleItem
	path := fmt.Sprintf("/courses/%d/modules/%d/items", courseID, moduleID)
	if err := c.get(ctx, path, q, &items); err != nil {
		return nil, fmt.Errorf("fetch items for module %d: %w", moduleID, err)
	}
	return items, nil
}

// PageContent fetches a page body by slug.
func (c *Client) PageContent(ctx context.Context, courseID int, pageSlug string) (*Page, error) {
	var page Page
	path := fmt.Sprintf("/courses/%d/pages/%s", courseID, url.PathEscape(pageSlug))
	if err := c.get(ctx, path, nil, &page); err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", pageSlug, err)
	}
	return &page, nil
}

// Assignments fetches assignment calendar events for the given courses
// within [startDate, endDate] (inclusive, YYYY-MM-DD).
func (c *Client) Assignments(ctx context.Context, courseIDs []int, startDate, endDate string) ([]models.Assignment, error) {
	q := url.Values{}
	q.Set("type", "assignment")
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("per_page", strconv.Itoa(perPage))
	for _, id := range courseIDs {
		q.Add("context_codes[]", fmt.Sprintf("course_%d", id))
	}

	var events []calendarEvent
	if err := c.get(ctx, "/calendar_events", q, &events); err != nil {
		return nil, fmt.Errorf("fetch assignments: %w", err)
	}

	assignments := make([]models.Assignment, 0, len(events))
	for _, ev := range events {
		if ev.Assignment == nil {
			continue
		}
		courseID := ev.Assignment.CourseID
		if courseID == 0 {
			courseID = courseIDFromContext(ev.ContextCode)
		}
		assignments = append(assignments, models.Assignment{
			ID:       ev.Assignment.ID,
			Title:    ev.Title,
			CourseID: courseID,
			DueAt:    ev.Assignment.DueAt,
			HTMLURL:  ev.HTMLURL,
			Points:   ev.Assignment.PointsPossible,
			Type:     ev.Assignment.SubmissionType,
		})
	}
	return assignments, nil
}

// courseIDFromContext parses "course_20564" context codes.
func courseIDFromContext(code string) int {
	id, _ := strconv.Atoi(strings.TrimPrefix(code, "course_"))
	return id
}

// MarkItemDone marks a module item complete (or incomplete) in Canvas.
func (c *Client) MarkItemDone(ctx context.Context, courseID, moduleID, itemID int, done bool) error {
	method := http.MethodPut
	if !done {
		method = http.MethodDelete
	}
	u := fmt.Sprintf("%s/api/v1/courses/%d/modules/%d/items/%d/done",
		c.baseURL, courseID, moduleID, itemID)

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mark item done: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("mark item done: unexpected status %s", resp.Status)
	}
	c.logger.Debug("marked module item",
		"course_id", courseID, "item_id", itemID, "done", done)
	return nil
}
