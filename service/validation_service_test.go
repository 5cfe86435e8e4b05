package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"courtsense/dao"
	"courtsense/models/status"
)

var (
	validationPredictionTime = time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC)
	validationVisitTime      = time.Date(2025, 1, 14, 18, 45, 0, 0, time.UTC)
	validationSubmittedAt    = time.Date(2025, 1, 14, 19, 0, 0, 0, time.UTC)
)

func newTestValidationService() (*ValidationService, *dao.MemoryValidationDAO) {
	store := dao.NewMemoryValidationDAO()
	vs := NewValidationService(store)
	vs.SetClock(func() time.Time { return validationSubmittedAt })
	return vs, store
}

func TestConfirmAccurate(t *testing.T) {
	vs, store := newTestValidationService()

	rec, err := vs.ConfirmAccurate(context.Background(), "venue123", "user1",
		status.LevelModerate, validationPredictionTime, validationVisitTime)
	if err != nil {
		t.Fatalf("ConfirmAccurate failed: %v", err)
	}

	assert.True(t, rec.WasAccurate)
	assert.Equal(t, status.LevelModerate, rec.PredictedLevel)
	assert.Equal(t, status.LevelModerate, rec.ActualLevel)
	assert.Equal(t, validationSubmittedAt, rec.SubmittedAt)
	assert.Equal(t, 1, store.Len())
}

func TestReportActual_Mismatch(t *testing.T) {
	vs, store := newTestValidationService()

	rec, err := vs.ReportActual(context.Background(), "venue123", "user1",
		status.LevelModerate, status.LevelBusy, validationPredictionTime, validationVisitTime)
	if err != nil {
		t.Fatalf("ReportActual failed: %v", err)
	}

	assert.False(t, rec.WasAccurate)
	assert.Equal(t, status.LevelBusy, rec.ActualLevel)
	assert.Equal(t, 1, store.Len())
}

func TestReportActual_AgreesWithPrediction(t *testing.T) {
	vs, _ := newTestValidationService()

	// The accuracy flag is derived from the levels, not the submission path.
	rec, err := vs.ReportActual(context.Background(), "venue123", "user1",
		status.LevelBusy, status.LevelBusy, validationPredictionTime, validationVisitTime)
	if err != nil {
		t.Fatalf("ReportActual failed: %v", err)
	}
	assert.True(t, rec.WasAccurate)
}

func TestRecord_IncompleteSubmissionsPersistNothing(t *testing.T) {
	vs, store := newTestValidationService()

	tests := []struct {
		name    string
		venueID string
		userID  string
		actual  status.CrowdLevel
		prTime  time.Time
		visit   time.Time
	}{
		{"missing venue", "", "user1", status.LevelBusy, validationPredictionTime, validationVisitTime},
		{"missing user", "venue123", "", status.LevelBusy, validationPredictionTime, validationVisitTime},
		{"unknown level", "venue123", "user1", status.CrowdLevel("slammed"), validationPredictionTime, validationVisitTime},
		{"zero prediction time", "venue123", "user1", status.LevelBusy, time.Time{}, validationVisitTime},
		{"zero visit time", "venue123", "user1", status.LevelBusy, validationPredictionTime, time.Time{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := vs.ReportActual(context.Background(), test.venueID, test.userID,
				status.LevelModerate, test.actual, test.prTime, test.visit)
			if !errors.Is(err, ErrIncompleteSubmission) {
				t.Fatalf("Expected ErrIncompleteSubmission, got %v", err)
			}
		})
	}

	assert.Equal(t, 0, store.Len())
}

func TestListForVenue_FiltersByVenue(t *testing.T) {
	vs, _ := newTestValidationService()

	_, _ = vs.ConfirmAccurate(context.Background(), "venue123", "user1",
		status.LevelLow, validationPredictionTime, validationVisitTime)
	_, _ = vs.ConfirmAccurate(context.Background(), "venue456", "user1",
		status.LevelLow, validationPredictionTime, validationVisitTime)
	_, _ = vs.ReportActual(context.Background(), "venue123", "user2",
		status.LevelLow, status.LevelBusy, validationPredictionTime, validationVisitTime)

	records, err := vs.ListForVenue(context.Background(), "venue123")
	if err != nil {
		t.Fatalf("ListForVenue failed: %v", err)
	}
	assert.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "venue123", rec.VenueID)
	}
}
