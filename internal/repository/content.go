package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

// ContentRepository persists the landing copy and the search buttons.
type ContentRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewContentRepository creates a ContentRepository.
func NewContentRepository(db *sql.DB, log logger.Logger) *ContentRepository {
	return &ContentRepository{
		db:     db,
		logger: log,
	}
}

// GetLanding returns the landing page copy.
func (r *ContentRepository) GetLanding(ctx context.Context) (*domain.LandingContent, error) {
	query := `SELECT title, description FROM landing_content WHERE id = 1`

	var content domain.LandingContent
	err := r.db.QueryRowContext(ctx, query).Scan(&content.Title, &content.Description)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query landing content: %w", err)
	}

	return &content, nil
}

// SaveLanding replaces the landing page copy. The single row is upserted so
// the first save works on an empty table.
func (r *ContentRepository) SaveLanding(ctx context.Context, content *domain.LandingContent) error {
	query := `
		INSERT INTO landing_content (id, title, description, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, content.Title, content.Description); err != nil {
		return fmt.Errorf("save landing content: %w", err)
	}

	return nil
}

// ListButtons returns all search buttons in display order.
func (r *ContentRepository) ListButtons(ctx context.Context) ([]domain.SearchButton, error) {
	query := `
		SELECT id, title, link, page, serial_number
		FROM search_buttons
		ORDER BY serial_number
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query buttons: %w", err)
	}
	defer rows.Close()

	buttons := make([]domain.SearchButton, 0)
	for rows.Next() {
		var b domain.SearchButton
		if scanErr := rows.Scan(&b.ID, &b.Title, &b.Link, &b.Page, &b.SerialNumber); scanErr != nil {
			return nil, fmt.Errorf("scan button: %w", scanErr)
		}
		buttons = append(buttons, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buttons: %w", err)
	}

	return buttons, nil
}

// CreateButton inserts a search button. A zero serial number places the
// button after the current last one.
func (r *ContentRepository) CreateButton(ctx context.Context, button *domain.SearchButton) error {
	button.ID = uuid.New().String()

	query := `
		INSERT INTO search_buttons (id, title, link, page, serial_number)
		SELECT $1, $2, $3, $4,
		       CASE WHEN $5 > 0 THEN $5
		            ELSE COALESCE(MAX(serial_number), 0) + 1
		       END
		FROM search_buttons
		RETURNING serial_number
	`

	err := r.db.QueryRowContext(ctx, query,
		button.ID,
		button.Title,
		button.Link,
		button.Page,
		button.SerialNumber,
	).Scan(&button.SerialNumber)
	if err != nil {
		return fmt.Errorf("insert button: %w", err)
	}

	return nil
}

// UpdateButton rewrites a button's fields.
func (r *ContentRepository) UpdateButton(ctx context.Context, button *domain.SearchButton) error {
	query := `
		UPDATE search_buttons
		SET title = $2, link = $3, page = $4, serial_number = $5
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		button.ID,
		button.Title,
		button.Link,
		button.Page,
		button.SerialNumber,
	)
	if err != nil {
		return fmt.Errorf("update button: %w", err)
	}

	return requireRow(res)
}

// DeleteButton removes a button.
func (r *ContentRepository) DeleteButton(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM search_buttons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete button: %w", err)
	}

	return requireRow(res)
}
