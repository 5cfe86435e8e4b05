package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"courtsense/models/status"
	"courtsense/models/validation"
)

const createValidationTableSQL = `
CREATE TABLE IF NOT EXISTS validation_records (
	id              BIGSERIAL PRIMARY KEY,
	venue_id        TEXT        NOT NULL,
	prediction_time TIMESTAMPTZ NOT NULL,
	visit_time      TIMESTAMPTZ NOT NULL,
	predicted_level TEXT        NOT NULL,
	actual_level    TEXT        NOT NULL,
	was_accurate    BOOLEAN     NOT NULL,
	user_id         TEXT        NOT NULL,
	submitted_at    TIMESTAMPTZ NOT NULL
)`

const insertValidationSQL = `
INSERT INTO validation_records
	(venue_id, prediction_time, visit_time, predicted_level, actual_level, was_accurate, user_id, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const listValidationSQL = `
SELECT venue_id, prediction_time, visit_time, predicted_level, actual_level, was_accurate, user_id, submitted_at
FROM validation_records
WHERE venue_id = $1
ORDER BY submitted_at`

// PgValidationDAO stores validation records in Postgres. Records are insert
// only; there is deliberately no update or delete path.
type PgValidationDAO struct {
	pool *pgxpool.Pool
}

// NewPgValidationDAO wraps a connected pool.
func NewPgValidationDAO(pool *pgxpool.Pool) *PgValidationDAO {
	return &PgValidationDAO{pool: pool}
}

// EnsureSchema creates the validation table when it does not exist yet.
func (dao *PgValidationDAO) EnsureSchema(ctx context.Context) error {
	if _, err := dao.pool.Exec(ctx, createValidationTableSQL); err != nil {
		return fmt.Errorf("failed to create validation_records table: %w", err)
	}
	return nil
}

// AppendValidationRecord inserts one record.
func (dao *PgValidationDAO) AppendValidationRecord(ctx context.Context, rec validation.Record) error {
	_, err := dao.pool.Exec(ctx, insertValidationSQL,
		rec.VenueID, rec.PredictionTime, rec.VisitTime,
		string(rec.PredictedLevel), string(rec.ActualLevel),
		rec.WasAccurate, rec.UserID, rec.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert validation record for venue %s: %w", rec.VenueID, err)
	}
	return nil
}

// ListValidationRecords returns a venue's records ordered by submission time.
func (dao *PgValidationDAO) ListValidationRecords(ctx context.Context, venueID string) ([]validation.Record, error) {
	rows, err := dao.pool.Query(ctx, listValidationSQL, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query validation records for venue %s: %w", venueID, err)
	}
	defer rows.Close()

	var records []validation.Record
	for rows.Next() {
		var rec validation.Record
		var predicted, actual string
		if err := rows.Scan(&rec.VenueID, &rec.PredictionTime, &rec.VisitTime,
			&predicted, &actual, &rec.WasAccurate, &rec.UserID, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan validation record: %w", err)
		}
		rec.PredictedLevel = status.CrowdLevel(predicted)
		rec.ActualLevel = status.CrowdLevel(actual)
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("validation record iteration failed: %w", rows.Err())
	}
	return records, nil
}
