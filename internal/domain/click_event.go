package domain

import "time"

// ClickEvent represents the cumulative clicks on one masked link within one
// session. Rows are keyed by (session_id, link_id); re-clicking the same
// link increments ClickCount on the existing row.
type ClickEvent struct {
	SessionID     string    `json:"session_id" db:"session_id"`
	LinkID        int       `json:"link_id" db:"link_id"`
	ResultName    string    `json:"result_name" db:"result_name"`
	ResultTitle   string    `json:"result_title" db:"result_title"`
	ClickCount    int       `json:"click_count" db:"click_count"`
	SearchTerm    *string   `json:"search_term,omitempty" db:"search_term"`
	IsBlogClick   bool      `json:"is_blog_click" db:"is_blog_click"`
	TimeSpentSecs int       `json:"time_spent_seconds" db:"time_spent_seconds"`
	LastClickedAt time.Time `json:"last_clicked_at" db:"last_clicked_at"`
}
