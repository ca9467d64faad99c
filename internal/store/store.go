// Package store is the data-access layer. Handlers never build queries
// themselves; every store operation is a named, typed method so the calls
// read like the record operations they are.
package store

import (
	"gorm.io/gorm"
)

// Store wraps the database handle. Constructed once at startup and passed
// to whoever needs record access.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an initialised database
func New(database *gorm.DB) *Store {
	return &Store{db: database}
}

// DB exposes the underlying handle for migrations and maintenance jobs
func (s *Store) DB() *gorm.DB {
	return s.db
}
