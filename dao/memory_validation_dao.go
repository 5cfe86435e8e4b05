package dao

import (
	"context"
	"sync"

	"courtsense/models/validation"
)

// MemoryValidationDAO keeps validation records in memory. Used by tests and
// non-prod containers in place of Postgres.
type MemoryValidationDAO struct {
	mu      sync.RWMutex
	records []validation.Record
}

// NewMemoryValidationDAO initializes an empty in-memory store.
func NewMemoryValidationDAO() *MemoryValidationDAO {
	return &MemoryValidationDAO{}
}

// AppendValidationRecord appends one record.
func (dao *MemoryValidationDAO) AppendValidationRecord(ctx context.Context, rec validation.Record) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.records = append(dao.records, rec)
	return nil
}

// ListValidationRecords returns a venue's records in insertion order.
func (dao *MemoryValidationDAO) ListValidationRecords(ctx context.Context, venueID string) ([]validation.Record, error) {
	dao.mu.RLock()
	defer dao.mu.RUnlock()
	var out []validation.Record
	for _, rec := range dao.records {
		if rec.VenueID == venueID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Len returns the total number of stored records.
func (dao *MemoryValidationDAO) Len() int {
	dao.mu.RLock()
	defer dao.mu.RUnlock()
	return len(dao.records)
}
