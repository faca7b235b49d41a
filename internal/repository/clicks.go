package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

// ClickRepository persists per-session click counters.
type ClickRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewClickRepository creates a ClickRepository.
func NewClickRepository(db *sql.DB, log logger.Logger) *ClickRepository {
	return &ClickRepository{
		db:     db,
		logger: log,
	}
}

// Record inserts a click row with count 1 or increments the existing
// (session, link) row. The increment happens inside the upsert, so two
// simultaneous clicks on the same link both land: there is no
// read-then-write window to lose an update in.
func (r *ClickRepository) Record(ctx context.Context, c *domain.ClickEvent) error {
	if err := domain.ValidateSessionID(c.SessionID); err != nil {
		return err
	}

	query := `
		INSERT INTO click_events (
			session_id, link_id, result_name, result_title,
			click_count, search_term, is_blog_click, last_clicked_at
		) VALUES ($1, $2, $3, $4, 1, $5, $6, $7)
		ON CONFLICT (session_id, link_id) DO UPDATE SET
			click_count = click_events.click_count + 1,
			last_clicked_at = EXCLUDED.last_clicked_at
	`

	_, err := r.db.ExecContext(ctx, query,
		c.SessionID,
		c.LinkID,
		c.ResultName,
		c.ResultTitle,
		c.SearchTerm,
		c.IsBlogClick,
		c.LastClickedAt,
	)
	if err != nil {
		return fmt.Errorf("record click: %w", err)
	}

	return nil
}

// Get returns the click row for one (session, link) pair.
func (r *ClickRepository) Get(ctx context.Context, sessionID string, linkID int) (*domain.ClickEvent, error) {
	query := `
		SELECT session_id, link_id, result_name, result_title,
		       click_count, search_term, is_blog_click, time_spent_seconds,
		       last_clicked_at
		FROM click_events
		WHERE session_id = $1 AND link_id = $2
	`

	var c domain.ClickEvent
	err := r.db.QueryRowContext(ctx, query, sessionID, linkID).Scan(
		&c.SessionID,
		&c.LinkID,
		&c.ResultName,
		&c.ResultTitle,
		&c.ClickCount,
		&c.SearchTerm,
		&c.IsBlogClick,
		&c.TimeSpentSecs,
		&c.LastClickedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query click: %w", err)
	}

	return &c, nil
}

// ListForSessions returns the click rows belonging to sessions matching the
// filter. Rows are ordered by descending click count within each session;
// the ordering is for display only.
func (r *ClickRepository) ListForSessions(ctx context.Context, filter SessionFilter) ([]domain.ClickEvent, error) {
	whereClause, args := buildSessionWhere(filter)
	query := `
		SELECT c.session_id, c.link_id, c.result_name, c.result_title,
		       c.click_count, c.search_term, c.is_blog_click,
		       c.time_spent_seconds, c.last_clicked_at
		FROM click_events c
		JOIN sessions s ON s.session_id = c.session_id
		WHERE 1=1` + whereClause + `
		ORDER BY c.session_id, c.click_count DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clicks: %w", err)
	}
	defer rows.Close()

	clicks := make([]domain.ClickEvent, 0)
	for rows.Next() {
		var c domain.ClickEvent
		if scanErr := rows.Scan(
			&c.SessionID,
			&c.LinkID,
			&c.ResultName,
			&c.ResultTitle,
			&c.ClickCount,
			&c.SearchTerm,
			&c.IsBlogClick,
			&c.TimeSpentSecs,
			&c.LastClickedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan click: %w", scanErr)
		}
		clicks = append(clicks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clicks: %w", err)
	}

	return clicks, nil
}
