package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

// SessionRepository persists visitor sessions.
type SessionRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewSessionRepository creates a SessionRepository.
func NewSessionRepository(db *sql.DB, log logger.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: log,
	}
}

// Upsert inserts a session row or, when a row with the same identifier
// already exists, increments its page-view counter. The ON CONFLICT form
// makes the visit idempotent by key: concurrent page loads for the same
// identifier never create duplicate rows or lose a view.
func (r *SessionRepository) Upsert(ctx context.Context, s *domain.Session) error {
	if err := domain.ValidateSessionID(s.SessionID); err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (
			session_id, page, ip_address, country, source, device,
			page_views, start_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO UPDATE SET
			page_views = sessions.page_views + 1
	`

	_, err := r.db.ExecContext(ctx, query,
		s.SessionID,
		s.Page,
		s.IPAddress,
		s.Country,
		s.Source,
		s.Device,
		s.PageViews,
		s.StartTime,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// Close sets the session's end time and whole-second duration. The
// end_time IS NULL guard makes close idempotent: a second close, or a close
// for a session that never opened, affects zero rows and is not an error.
func (r *SessionRepository) Close(ctx context.Context, sessionID string, now time.Time) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}

	query := `
		UPDATE sessions
		SET end_time = $2,
		    duration_seconds = FLOOR(EXTRACT(EPOCH FROM ($2 - start_time)))
		WHERE session_id = $1 AND end_time IS NULL
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, now); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	return nil
}

// GetByID returns one session row.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `
		SELECT session_id, page, ip_address, country, source, device,
		       page_views, start_time, end_time, duration_seconds
		FROM sessions
		WHERE session_id = $1
	`

	var s domain.Session
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&s.SessionID,
		&s.Page,
		&s.IPAddress,
		&s.Country,
		&s.Source,
		&s.Device,
		&s.PageViews,
		&s.StartTime,
		&s.EndTime,
		&s.DurationSeconds,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	return &s, nil
}

// List returns sessions matching the filter, most recent first.
func (r *SessionRepository) List(ctx context.Context, filter SessionFilter) ([]domain.Session, error) {
	whereClause, args := buildSessionWhere(filter)
	query := `
		SELECT session_id, page, ip_address, country, source, device,
		       page_views, start_time, end_time, duration_seconds
		FROM sessions
		WHERE 1=1` + whereClause + `
		ORDER BY start_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var s domain.Session
		if scanErr := rows.Scan(
			&s.SessionID,
			&s.Page,
			&s.IPAddress,
			&s.Country,
			&s.Source,
			&s.Device,
			&s.PageViews,
			&s.StartTime,
			&s.EndTime,
			&s.DurationSeconds,
		); scanErr != nil {
			return nil, fmt.Errorf("scan session: %w", scanErr)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// buildSessionWhere renders the equality filters into a WHERE suffix.
// Placeholders start at $1; callers appending more parameters must offset
// by len(args).
func buildSessionWhere(filter SessionFilter) (whereClause string, args []any) {
	var clauses []string
	args = make([]any, 0)
	pos := 1

	if filter.Country != "" {
		clauses = append(clauses, fmt.Sprintf("country = $%d", pos))
		args = append(args, filter.Country)
		pos++
	}
	if filter.Source != "" {
		clauses = append(clauses, fmt.Sprintf("source = $%d", pos))
		args = append(args, filter.Source)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " AND " + strings.Join(clauses, " AND "), args
}
