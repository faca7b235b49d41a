package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

// LinkRepository persists per-country link overrides and the worldwide
// fallbacks. Reads on the redirect path are single-key lookups.
type LinkRepository struct {
	db     *sql.DB
	logger logger.Logger
}

// NewLinkRepository creates a LinkRepository.
func NewLinkRepository(db *sql.DB, log logger.Logger) *LinkRepository {
	return &LinkRepository{
		db:     db,
		logger: log,
	}
}

// SetCountryLink creates or replaces the override for one (result, country)
// pair. Country codes are stored uppercase.
func (r *LinkRepository) SetCountryLink(ctx context.Context, link *domain.CountryLink) error {
	link.Country = strings.ToUpper(link.Country)

	query := `
		INSERT INTO country_links (result_id, country, url)
		VALUES ($1, $2, $3)
		ON CONFLICT (result_id, country) DO UPDATE SET
			url = EXCLUDED.url
	`

	if _, err := r.db.ExecContext(ctx, query, link.ResultID, link.Country, link.URL); err != nil {
		return fmt.Errorf("set country link: %w", err)
	}

	return nil
}

// GetCountryLink returns the override for one (result, country) pair.
func (r *LinkRepository) GetCountryLink(ctx context.Context, resultID, country string) (*domain.CountryLink, error) {
	query := `
		SELECT result_id, country, url
		FROM country_links
		WHERE result_id = $1 AND country = $2
	`

	var link domain.CountryLink
	err := r.db.QueryRowContext(ctx, query, resultID, strings.ToUpper(country)).Scan(
		&link.ResultID,
		&link.Country,
		&link.URL,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query country link: %w", err)
	}

	return &link, nil
}

// ListCountryLinks returns all overrides for one result, ordered by country.
func (r *LinkRepository) ListCountryLinks(ctx context.Context, resultID string) ([]domain.CountryLink, error) {
	query := `
		SELECT result_id, country, url
		FROM country_links
		WHERE result_id = $1
		ORDER BY country
	`

	rows, err := r.db.QueryContext(ctx, query, resultID)
	if err != nil {
		return nil, fmt.Errorf("query country links: %w", err)
	}
	defer rows.Close()

	links := make([]domain.CountryLink, 0)
	for rows.Next() {
		var link domain.CountryLink
		if scanErr := rows.Scan(&link.ResultID, &link.Country, &link.URL); scanErr != nil {
			return nil, fmt.Errorf("scan country link: %w", scanErr)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate country links: %w", err)
	}

	return links, nil
}

// DeleteCountryLink removes the override for one (result, country) pair.
func (r *LinkRepository) DeleteCountryLink(ctx context.Context, resultID, country string) error {
	query := `DELETE FROM country_links WHERE result_id = $1 AND country = $2`

	res, err := r.db.ExecContext(ctx, query, resultID, strings.ToUpper(country))
	if err != nil {
		return fmt.Errorf("delete country link: %w", err)
	}

	return requireRow(res)
}

// SetWorldwideLink creates or replaces a result's worldwide fallback.
func (r *LinkRepository) SetWorldwideLink(ctx context.Context, link *domain.WorldwideLink) error {
	query := `
		INSERT INTO worldwide_links (result_id, url)
		VALUES ($1, $2)
		ON CONFLICT (result_id) DO UPDATE SET
			url = EXCLUDED.url
	`

	if _, err := r.db.ExecContext(ctx, query, link.ResultID, link.URL); err != nil {
		return fmt.Errorf("set worldwide link: %w", err)
	}

	return nil
}

// GetWorldwideLink returns a result's worldwide fallback.
func (r *LinkRepository) GetWorldwideLink(ctx context.Context, resultID string) (*domain.WorldwideLink, error) {
	query := `SELECT result_id, url FROM worldwide_links WHERE result_id = $1`

	var link domain.WorldwideLink
	err := r.db.QueryRowContext(ctx, query, resultID).Scan(&link.ResultID, &link.URL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query worldwide link: %w", err)
	}

	return &link, nil
}

// DeleteWorldwideLink removes a result's worldwide fallback.
func (r *LinkRepository) DeleteWorldwideLink(ctx context.Context, resultID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM worldwide_links WHERE result_id = $1`, resultID)
	if err != nil {
		return fmt.Errorf("delete worldwide link: %w", err)
	}

	return requireRow(res)
}
