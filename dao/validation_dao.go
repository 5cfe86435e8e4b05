package dao

import (
	"context"

	"courtsense/models/validation"
)

// ValidationDAO persists user accuracy judgments. The store is append-only:
// implementations must never update or delete existing records.
type ValidationDAO interface {
	AppendValidationRecord(ctx context.Context, rec validation.Record) error
	ListValidationRecords(ctx context.Context, venueID string) ([]validation.Record, error)
}
