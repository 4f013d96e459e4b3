// Package store provides the durable gateway for match records: get-by-id
// and whole-record replace, with Update as a serialized all-or-nothing
// read-modify-write transaction.
package store

import (
	"context"

	"trigrams/internal/domain"
)

// Store defines the persistence interface for match records.
// Implementations may be backed by memory (development/tests) or SQLite.
type Store interface {
	// Create persists a new match record.
	Create(ctx context.Context, m *domain.Match) error

	// Get retrieves a match by id. Returns domain.ErrMatchNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Match, error)

	// Update runs fn against the stored record inside a transaction
	// serialized with other updates of the same record. If fn returns an
	// error the record is left exactly as it was.
	Update(ctx context.Context, id string, fn func(*domain.Match) error) error

	// Delete removes a match record.
	Delete(ctx context.Context, id string) error

	// List returns every stored match.
	List(ctx context.Context) ([]*domain.Match, error)
}
