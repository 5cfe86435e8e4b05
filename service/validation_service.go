package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"courtsense/dao"
	"courtsense/metrics"
	"courtsense/models/status"
	"courtsense/models/validation"
)

// ErrIncompleteSubmission is returned when a submission is missing a required
// field. Nothing is persisted in that case.
var ErrIncompleteSubmission = errors.New("incomplete validation submission")

// ValidationService records user accuracy judgments. It only accumulates
// ground-truth samples; recalibrating the scorer's constants from them is a
// separate offline job reading the same store.
type ValidationService struct {
	validationDao dao.ValidationDAO
	clock         func() time.Time
}

// NewValidationService constructs a new ValidationService.
func NewValidationService(validationDao dao.ValidationDAO) *ValidationService {
	return &ValidationService{
		validationDao: validationDao,
		clock:         func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the submission clock. Test hook.
func (vs *ValidationService) SetClock(clock func() time.Time) {
	vs.clock = clock
}

// ConfirmAccurate records that the user found the prediction accurate. The
// actual level is taken to equal the predicted one.
func (vs *ValidationService) ConfirmAccurate(ctx context.Context, venueID, userID string, predicted status.CrowdLevel, predictionTime, visitTime time.Time) (*validation.Record, error) {
	return vs.record(ctx, venueID, userID, predicted, predicted, predictionTime, visitTime)
}

// ReportActual records that the prediction missed, with the level the user
// actually observed.
func (vs *ValidationService) ReportActual(ctx context.Context, venueID, userID string, predicted, actual status.CrowdLevel, predictionTime, visitTime time.Time) (*validation.Record, error) {
	return vs.record(ctx, venueID, userID, predicted, actual, predictionTime, visitTime)
}

func (vs *ValidationService) record(ctx context.Context, venueID, userID string, predicted, actual status.CrowdLevel, predictionTime, visitTime time.Time) (*validation.Record, error) {
	if venueID == "" || userID == "" {
		return nil, fmt.Errorf("%w: venue and user are required", ErrIncompleteSubmission)
	}
	if !predicted.Valid() || !actual.Valid() {
		return nil, fmt.Errorf("%w: unknown crowd level", ErrIncompleteSubmission)
	}
	if predictionTime.IsZero() || visitTime.IsZero() {
		return nil, fmt.Errorf("%w: prediction and visit times are required", ErrIncompleteSubmission)
	}

	rec := validation.Record{
		VenueID:        venueID,
		PredictionTime: predictionTime,
		VisitTime:      visitTime,
		PredictedLevel: predicted,
		ActualLevel:    actual,
		// Computed here, never trusted from the client.
		WasAccurate: predicted == actual,
		UserID:      userID,
		SubmittedAt: vs.clock(),
	}

	if err := vs.validationDao.AppendValidationRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist validation record: %w", err)
	}
	metrics.ValidationsRecorded.Inc()
	log.Printf("[ValidationService] Recorded validation for venue %s (accurate=%v)", venueID, rec.WasAccurate)
	return &rec, nil
}

// ListForVenue returns a venue's accumulated ground-truth records.
func (vs *ValidationService) ListForVenue(ctx context.Context, venueID string) ([]validation.Record, error) {
	return vs.validationDao.ListValidationRecords(ctx, venueID)
}
