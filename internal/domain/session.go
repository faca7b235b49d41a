// Package domain defines the entities persisted by the fastmoney service.
package domain

import (
	"errors"
	"time"
)

// Sentinel values used when best-effort visitor metadata is unavailable.
const (
	// CountryWorldwide marks an unknown visitor country. It never matches a
	// country-specific link and therefore falls through to the worldwide
	// fallback.
	CountryWorldwide = "WW"
	// IPUnknown marks a visitor IP that could not be determined.
	IPUnknown = "Unknown"
	// SourceDirect is the traffic source recorded when no referrer or
	// utm_source is present.
	SourceDirect = "direct"
)

// Device classes derived from the visitor's user agent.
const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
)

// maxSessionIDLength bounds the client-supplied session identifier. The
// client generates tokens of the form "session_<unix-ms>_<9 chars>", well
// under this limit.
const maxSessionIDLength = 64

// ErrInvalidSessionID is returned when a client-supplied session identifier
// fails validation at the store boundary.
var ErrInvalidSessionID = errors.New("invalid session id")

// Session represents one visitor's interaction window, bounded by page-enter
// and page-exit. At most one row exists per session identifier; EndTime and
// DurationSeconds are nil while the session is open and set exactly once at
// close.
type Session struct {
	SessionID       string     `json:"session_id" db:"session_id"`
	Page            string     `json:"page" db:"page"`
	IPAddress       string     `json:"ip_address" db:"ip_address"`
	Country         string     `json:"country" db:"country"`
	Source          string     `json:"source" db:"source"`
	Device          string     `json:"device" db:"device"`
	PageViews       int        `json:"page_views" db:"page_views"`
	StartTime       time.Time  `json:"start_time" db:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty" db:"end_time"`
	DurationSeconds *int       `json:"duration_seconds,omitempty" db:"duration_seconds"`
}

// ValidateSessionID checks a client-supplied session token. The token is an
// opaque identifier used only for event correlation, never authorization, so
// validation is limited to length and charset.
func ValidateSessionID(id string) error {
	if id == "" || len(id) > maxSessionIDLength {
		return ErrInvalidSessionID
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return ErrInvalidSessionID
		}
	}
	return nil
}
