// Package repository implements PostgreSQL persistence for all fastmoney
// entities. Each repository owns the SQL for one entity kind; no transaction
// ever spans entity kinds except the analytics clear, which must remove
// sessions and click events together.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SessionFilter holds the exact-match equality filters applied to the
// session set. Empty fields match everything.
type SessionFilter struct {
	Country string
	Source  string
}
