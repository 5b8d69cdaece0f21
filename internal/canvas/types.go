package canvas

// Announcement is the latest weekly announcement post for a course.
type Announcement struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	PostedAt string `json:"posted_at,omitempty"`
	HTMLURL  string `json:"html_url,omitempty"`
}

// Page is raw Canvas page content addressed by slug.
type Page struct {
	PageID    int    `json:"page_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	HTMLURL   string `json:"html_url"`
	UpdatedAt string `json:"updated_at"`
}

// calendarEvent is the wire shape of a Canvas calendar event. Only
// assignment events are requested; the embedded assignment carries the
// fields the planner keeps.
type calendarEvent struct {
	Title       string `json:"title"`
	HTMLURL     string `json:"html_url"`
	ContextCode string `json:"context_code"`
	Assignment  *struct {
		ID             int     `json:"id"`
		CourseID       int     `json:"course_id"`
		DueAt          string  `json:"due_at"`
		PointsPossible float64 `json:"points_possible"`
		SubmissionType string  `json:"submission_types_string,omitempty"`
	} `json:"assignment"`
}
