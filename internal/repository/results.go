package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

// ResultRepository persists web results.
type ResultRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewResultRepository creates a ResultRepository.
func NewResultRepository(db *sql.DB, log logger.Logger) *ResultRepository {
	return &ResultRepository{
		db:     db,
		logger: log,
	}
}

const resultColumns = `id, name, link, title, description, logo_url,
	       is_sponsored, page, lid, created_at, updated_at`

// Create inserts a web result and assigns its link id as max(existing)+1.
// The lid is computed inside the INSERT so concurrent creates cannot read
// the same maximum; the UNIQUE constraint rejects the loser, which retries
// at the caller's discretion.
func (r *ResultRepository) Create(ctx context.Context, result *domain.WebResult) error {
	result.ID = uuid.New().String()
	result.CreatedAt = time.Now()
	result.UpdatedAt = result.CreatedAt

	query := `
		INSERT INTO web_results (
			id, name, link, title, description, logo_url,
			is_sponsored, page, lid, created_at, updated_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8,
		       COALESCE(MAX(lid), 0) + 1, $9, $10
		FROM web_results
		RETURNING lid
	`

	err := r.db.QueryRowContext(ctx, query,
		result.ID,
		result.Name,
		result.Link,
		result.Title,
		result.Description,
		result.LogoURL,
		result.IsSponsored,
		result.Page,
		result.CreatedAt,
		result.UpdatedAt,
	).Scan(&result.LinkID)
	if err != nil {
		return fmt.Errorf("insert web result: %w", err)
	}

	return nil
}

// GetByID returns one web result by its record id.
func (r *ResultRepository) GetByID(ctx context.Context, id string) (*domain.WebResult, error) {
	query := `SELECT ` + resultColumns + ` FROM web_results WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByLinkID returns one web result by its masked link id.
func (r *ResultRepository) GetByLinkID(ctx context.Context, lid int) (*domain.WebResult, error) {
	query := `SELECT ` + resultColumns + ` FROM web_results WHERE lid = $1`
	return r.getOne(ctx, query, lid)
}

func (r *ResultRepository) getOne(ctx context.Context, query string, arg any) (*domain.WebResult, error) {
	var res domain.WebResult
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&res.ID,
		&res.Name,
		&res.Link,
		&res.Title,
		&res.Description,
		&res.LogoURL,
		&res.IsSponsored,
		&res.Page,
		&res.LinkID,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query web result: %w", err)
	}
	return &res, nil
}

// List returns all web results ordered by link id.
func (r *ResultRepository) List(ctx context.Context) ([]domain.WebResult, error) {
	query := `SELECT ` + resultColumns + ` FROM web_results ORDER BY lid`
	return r.list(ctx, query)
}

// ListByPage returns the results assigned to one category page, sponsored
// first, then by link id.
func (r *ResultRepository) ListByPage(ctx context.Context, page string) ([]domain.WebResult, error) {
	query := `SELECT ` + resultColumns + `
		FROM web_results
		WHERE page = $1
		ORDER BY is_sponsored DESC, lid`
	return r.list(ctx, query, page)
}

func (r *ResultRepository) list(ctx context.Context, query string, args ...any) ([]domain.WebResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query web results: %w", err)
	}
	defer rows.Close()

	results := make([]domain.WebResult, 0)
	for rows.Next() {
		var res domain.WebResult
		if scanErr := rows.Scan(
			&res.ID,
			&res.Name,
			&res.Link,
			&res.Title,
			&res.Description,
			&res.LogoURL,
			&res.IsSponsored,
			&res.Page,
			&res.LinkID,
			&res.CreatedAt,
			&res.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan web result: %w", scanErr)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate web results: %w", err)
	}

	return results, nil
}

// Update rewrites a result's editable fields. The lid is never reassigned.
func (r *ResultRepository) Update(ctx context.Context, result *domain.WebResult) error {
	result.UpdatedAt = time.Now()

	query := `
		UPDATE web_results
		SET name = $2, link = $3, title = $4, description = $5,
		    logo_url = $6, is_sponsored = $7, page = $8, updated_at = $9
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.Name,
		result.Link,
		result.Title,
		result.Description,
		result.LogoURL,
		result.IsSponsored,
		result.Page,
		result.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update web result: %w", err)
	}

	return requireRow(res)
}

// Delete removes a result. Its overrides go with it via ON DELETE CASCADE.
func (r *ResultRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM web_results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete web result: %w", err)
	}

	return requireRow(res)
}

// requireRow maps a zero-rows-affected result to ErrNotFound.
func requireRow(res sql.Result) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is the repository's not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
