package domain

import (
	"errors"
	"time"
)

// Validation errors surfaced to the admin API as user-visible rejections.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrTitleRequired = errors.New("title is required")
	ErrURLRequired   = errors.New("url is required")
	ErrPageRequired  = errors.New("page is required")
)

// WebResult is an outbound result listed on a category page. LinkID is the
// masked public identifier (lid); it is the only identifier exposed in
// shareable URLs, never the internal record id.
type WebResult struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Link        string    `json:"link" db:"link"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	LogoURL     string    `json:"logo_url" db:"logo_url"`
	IsSponsored bool      `json:"is_sponsored" db:"is_sponsored"`
	Page        string    `json:"page" db:"page"`
	LinkID      int       `json:"lid" db:"lid"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks required admin-form fields. A failing result is rejected
// whole; nothing is saved.
func (r *WebResult) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Title == "" {
		return ErrTitleRequired
	}
	if r.Page == "" {
		return ErrPageRequired
	}
	return nil
}

// CountryLink overrides a result's destination for visitors from one
// country. At most one override exists per (result, country) pair.
type CountryLink struct {
	ResultID string `json:"result_id" db:"result_id"`
	Country  string `json:"country" db:"country"`
	URL      string `json:"url" db:"url"`
}

// Validate checks the override fields.
func (c *CountryLink) Validate() error {
	if c.URL == "" {
		return ErrURLRequired
	}
	if c.Country == "" {
		return errors.New("country is required")
	}
	return nil
}

// WorldwideLink is a result's single fallback destination, used when no
// country-specific override matches the visitor.
type WorldwideLink struct {
	ResultID string `json:"result_id" db:"result_id"`
	URL      string `json:"url" db:"url"`
}

// Validate checks the fallback fields.
func (w *WorldwideLink) Validate() error {
	if w.URL == "" {
		return ErrURLRequired
	}
	return nil
}
