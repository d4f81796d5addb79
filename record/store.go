/*
store.go - Record store interface

PURPOSE:
  Abstracts record persistence behind a two-method interface so the HTTP
  boundary and the renderer never depend on a concrete store. The default
  deployment uses the in-memory implementation; a SQLite-backed one can be
  swapped in without touching handler or renderer contracts.

SEMANTICS:
  Create is the only mutator and always inserts under a freshly generated
  key, so no read-modify-write races exist. Get on an unknown id returns
  ErrRecordNotFound, distinct from any computation error.

SEE ALSO:
  - store/memory.go: Default in-memory implementation
  - ../store/sqlite/sqlite.go: SQLite implementation
*/
package record

import (
	"context"
	"errors"
)

// Sentinel errors. Use with errors.Is().
var (
	// ErrRecordNotFound is returned by Get for an unknown id.
	ErrRecordNotFound = errors.New("calculation record not found")

	// ErrDuplicateID is returned by Create when the id already exists.
	// With random ids this indicates a caller bug, not a collision.
	ErrDuplicateID = errors.New("calculation id already exists")
)

// Store persists calculation records.
type Store interface {
	// Create inserts a new record under its id. Records are never updated.
	Create(ctx context.Context, rec CalculationRecord) error

	// Get returns the record for id, or ErrRecordNotFound.
	Get(ctx context.Context, id string) (*CalculationRecord, error)
}
