package domain

// SearchButton is a category button on the landing page, ordered by
// SerialNumber. Page names the web-result category it opens (wr=1, wr=2...).
type SearchButton struct {
	ID           string `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Link         string `json:"link" db:"link"`
	Page         string `json:"page" db:"page"`
	SerialNumber int    `json:"serial_number" db:"serial_number"`
}

// Validate checks required button fields.
func (b *SearchButton) Validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if b.Page == "" {
		return ErrPageRequired
	}
	return nil
}

// LandingContent holds the landing page copy. A single row exists.
type LandingContent struct {
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
}

// Validate checks required landing fields.
func (l *LandingContent) Validate() error {
	if l.Title == "" {
		return ErrTitleRequired
	}
	return nil
}
