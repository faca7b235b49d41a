package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastmoney/fastmoney/internal/logger"
)

// AnalyticsRepository runs the aggregate queries over sessions and click
// events, and owns the destructive clear.
type AnalyticsRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewAnalyticsRepository creates an AnalyticsRepository.
func NewAnalyticsRepository(db *sql.DB, log logger.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{
		db:     db,
		logger: log,
	}
}

// Summary holds the aggregate totals over a filtered session set.
type Summary struct {
	TotalSessions      int `json:"total_sessions"`
	TotalPageViews     int `json:"total_page_views"`
	TotalClicks        int `json:"total_clicks"`
	AvgDurationSeconds int `json:"avg_duration_seconds"`
}

// Summarize computes the totals for sessions matching the filter. Sessions
// without a recorded duration are excluded from the average entirely; a
// missing page-view count contributes 1.
func (r *AnalyticsRepository) Summarize(ctx context.Context, filter SessionFilter, excludeBlogClicks bool) (*Summary, error) {
	var sum Summary

	whereClause, args := buildSessionWhere(filter)

	sessionQuery := `
		SELECT COUNT(*),
		       COALESCE(SUM(COALESCE(page_views, 1)), 0),
		       COALESCE(FLOOR(AVG(duration_seconds)), 0)
		FROM sessions
		WHERE 1=1` + whereClause

	err := r.db.QueryRowContext(ctx, sessionQuery, args...).Scan(
		&sum.TotalSessions,
		&sum.TotalPageViews,
		&sum.AvgDurationSeconds,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize sessions: %w", err)
	}

	clickQuery := `
		SELECT COALESCE(SUM(c.click_count), 0)
		FROM click_events c
		JOIN sessions s ON s.session_id = c.session_id
		WHERE 1=1` + whereClause
	clickArgs := append([]any{}, args...)
	if excludeBlogClicks {
		clickQuery += " AND c.is_blog_click = FALSE"
	}

	err = r.db.QueryRowContext(ctx, clickQuery, clickArgs...).Scan(&sum.TotalClicks)
	if err != nil {
		return nil, fmt.Errorf("summarize clicks: %w", err)
	}

	return &sum, nil
}

// ClearAll deletes every click event and session in a single transaction.
// On any failure the transaction rolls back and both tables are left intact,
// so a partial clear can never be observed.
func (r *AnalyticsRepository) ClearAll(ctx context.Context) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("failed to rollback analytics clear",
					logger.Error(rbErr),
				)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM click_events`); err != nil {
		err = fmt.Errorf("delete click events: %w", err)
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		err = fmt.Errorf("delete sessions: %w", err)
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = fmt.Errorf("commit transaction: %w", commitErr)
		return err
	}

	return nil
}
