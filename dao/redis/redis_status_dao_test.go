package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"courtsense/db"
	"courtsense/models/status"
)

func TestRedisStatusDAO_SetAndGetPredictedStatus(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStatusDAO(mockClient)

	ps := status.PredictedStatus{
		VenueID:           "venue123",
		Level:             status.LevelModerate,
		Label:             "Active",
		Color:             status.ColorModerate,
		EstimatedWaitTime: "5-15 min wait",
		ComputedAt:        time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC),
	}

	if err := dao.SetPredictedStatus(ps); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := dao.GetPredictedStatus("venue123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	assert.Equal(t, &ps, got)
}

func TestRedisStatusDAO_GetPredictedStatus_Miss(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStatusDAO(mockClient)

	got, err := dao.GetPredictedStatus("unknown")
	if err != nil {
		t.Fatalf("Expected no error on a miss, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil on a miss, got %+v", got)
	}
}

func TestRedisStatusDAO_ScoreHistory(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStatusDAO(mockClient)

	for _, s := range []int{5, 7, 9} {
		if err := dao.AppendScore("venue123", s); err != nil {
			t.Fatalf("AppendScore failed: %v", err)
		}
	}

	history, err := dao.GetScoreHistory("venue123")
	if err != nil {
		t.Fatalf("GetScoreHistory failed: %v", err)
	}

	// Chronological order, oldest first.
	assert.Equal(t, []int{5, 7, 9}, history)
}

func TestRedisStatusDAO_ScoreHistory_Bounded(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStatusDAO(mockClient)

	for s := 0; s < SCORE_HISTORY_MAX_LEN+5; s++ {
		_ = dao.AppendScore("venue123", s)
	}

	history, err := dao.GetScoreHistory("venue123")
	if err != nil {
		t.Fatalf("GetScoreHistory failed: %v", err)
	}
	assert.Len(t, history, SCORE_HISTORY_MAX_LEN)
	// The oldest retained entry is the first pushed that survived trimming.
	assert.Equal(t, 5, history[0])
	assert.Equal(t, SCORE_HISTORY_MAX_LEN+4, history[len(history)-1])
}

func TestRedisStatusDAO_LiveSignals_Empty(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStatusDAO(mockClient)

	signals, err := dao.GetLiveSignals("venue123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	assert.Equal(t, 0, signals.ActiveCheckIns)
	assert.False(t, signals.HasReport())
	assert.False(t, signals.HasAny())
}

func TestRedisStatusDAO_LiveSignals_RoundTrip(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStatusDAO(mockClient)

	reportAt := time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC)
	if err := dao.SetActiveCheckIns("venue123", 4); err != nil {
		t.Fatalf("SetActiveCheckIns failed: %v", err)
	}
	if err := dao.SetLastReport("venue123", reportAt); err != nil {
		t.Fatalf("SetLastReport failed: %v", err)
	}

	signals, err := dao.GetLiveSignals("venue123")
	if err != nil {
		t.Fatalf("GetLiveSignals failed: %v", err)
	}
	assert.Equal(t, 4, signals.ActiveCheckIns)
	assert.True(t, signals.LastReportAt.Equal(reportAt))
	assert.True(t, signals.HasAny())
}
