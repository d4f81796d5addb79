// Package store provides the in-memory record.Store implementation.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/olimpus/ecotrip/record"
)

// =============================================================================
// MEMORY STORE - Default implementation (MVP: process lifetime, no expiry)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records map[string]record.CalculationRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]record.CalculationRecord)}
}

// Create inserts a record under its id. Insert-only: concurrent creates
// never conflict because every call carries a freshly generated key.
func (m *Memory) Create(_ context.Context, rec record.CalculationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.ID]; exists {
		return fmt.Errorf("%w: %s", record.ErrDuplicateID, rec.ID)
	}
	m.records[rec.ID] = rec.Clone()
	return nil
}

// Get returns a copy of the record for id.
func (m *Memory) Get(_ context.Context, id string) (*record.CalculationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", record.ErrRecordNotFound, id)
	}
	clone := rec.Clone()
	return &clone, nil
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
