package redis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"courtsense/db"
	"courtsense/models/status"
)

const PREDICTED_STATUS_KEY_FORMAT_V1 = "predicted_status_v1:%s"
const SCORE_HISTORY_KEY_FORMAT_V1 = "score_history_v1:%s"
const ACTIVE_CHECKINS_KEY_FORMAT_V1 = "active_checkins_v1:%s"
const LAST_REPORT_KEY_FORMAT_V1 = "last_report_v1:%s"

// SCORE_HISTORY_MAX_LEN bounds the per-venue score ring; 12 entries at a
// 30-minute refresh covers a 6-hour trend lookback.
const SCORE_HISTORY_MAX_LEN = 12

// RedisStatusDAO handles predicted-status records, score history and live
// signal reads using Redis.
type RedisStatusDAO struct {
	client db.RedisClient
}

// NewRedisStatusDAO initializes a RedisStatusDAO with the Redis client.
func NewRedisStatusDAO(client db.RedisClient) *RedisStatusDAO {
	return &RedisStatusDAO{client: client}
}

// SetPredictedStatus overwrites the venue's predicted status. Last write
// wins; no history is kept here (the score ring carries the trend lookback).
func (dao *RedisStatusDAO) SetPredictedStatus(ps status.PredictedStatus) error {
	key := fmt.Sprintf(PREDICTED_STATUS_KEY_FORMAT_V1, ps.VenueID)
	data, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("failed to marshal predicted status for venue %s: %w", ps.VenueID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set predicted status in redis: %w", err)
	}
	return nil
}

// GetPredictedStatus retrieves the venue's predicted status, or nil when no
// prediction has been stored yet.
func (dao *RedisStatusDAO) GetPredictedStatus(venueID string) (*status.PredictedStatus, error) {
	key := fmt.Sprintf(PREDICTED_STATUS_KEY_FORMAT_V1, venueID)
	str, err := dao.client.Get(key)
	if err == db.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get predicted status from redis: %w", err)
	}
	var ps status.PredictedStatus
	if err := json.Unmarshal([]byte(str), &ps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal predicted status JSON: %w", err)
	}
	return &ps, nil
}

// AppendScore pushes a raw score onto the venue's bounded history ring.
func (dao *RedisStatusDAO) AppendScore(venueID string, score int) error {
	key := fmt.Sprintf(SCORE_HISTORY_KEY_FORMAT_V1, venueID)
	if err := dao.client.PushBounded(key, strconv.Itoa(score), SCORE_HISTORY_MAX_LEN); err != nil {
		return fmt.Errorf("failed to append score for venue %s: %w", venueID, err)
	}
	return nil
}

// GetScoreHistory returns the venue's recent scores in chronological order,
// oldest first. Empty when no history exists.
func (dao *RedisStatusDAO) GetScoreHistory(venueID string) ([]int, error) {
	key := fmt.Sprintf(SCORE_HISTORY_KEY_FORMAT_V1, venueID)
	entries, err := dao.client.Range(key, 0, SCORE_HISTORY_MAX_LEN-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read score history for venue %s: %w", venueID, err)
	}

	// Stored newest first; reverse into chronological order.
	scores := make([]int, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		n, err := strconv.Atoi(entries[i])
		if err != nil {
			return nil, fmt.Errorf("corrupt score history entry %q for venue %s: %w", entries[i], venueID, err)
		}
		scores = append(scores, n)
	}
	return scores, nil
}

// GetLiveSignals reads the venue's live inputs: active check-in count and the
// most recent report timestamp. Both degrade to zero values on a miss.
func (dao *RedisStatusDAO) GetLiveSignals(venueID string) (status.LiveSignals, error) {
	var signals status.LiveSignals

	checkInsKey := fmt.Sprintf(ACTIVE_CHECKINS_KEY_FORMAT_V1, venueID)
	str, err := dao.client.Get(checkInsKey)
	if err != nil && err != db.ErrKeyNotFound {
		return signals, fmt.Errorf("failed to read check-ins for venue %s: %w", venueID, err)
	}
	if err == nil {
		n, convErr := strconv.Atoi(str)
		if convErr != nil {
			return signals, fmt.Errorf("corrupt check-in count %q for venue %s: %w", str, venueID, convErr)
		}
		signals.ActiveCheckIns = n
	}

	reportKey := fmt.Sprintf(LAST_REPORT_KEY_FORMAT_V1, venueID)
	str, err = dao.client.Get(reportKey)
	if err != nil && err != db.ErrKeyNotFound {
		return signals, fmt.Errorf("failed to read last report for venue %s: %w", venueID, err)
	}
	if err == nil {
		t, parseErr := time.Parse(time.RFC3339, str)
		if parseErr != nil {
			return signals, fmt.Errorf("corrupt report timestamp %q for venue %s: %w", str, venueID, parseErr)
		}
		signals.LastReportAt = t
	}

	return signals, nil
}

// SetActiveCheckIns writes the venue's current check-in count. The check-in
// flow itself lives outside this service; this is the write path it uses.
func (dao *RedisStatusDAO) SetActiveCheckIns(venueID string, count int) error {
	key := fmt.Sprintf(ACTIVE_CHECKINS_KEY_FORMAT_V1, venueID)
	return dao.client.Set(key, strconv.Itoa(count))
}

// SetLastReport writes the venue's most recent report timestamp.
func (dao *RedisStatusDAO) SetLastReport(venueID string, at time.Time) error {
	key := fmt.Sprintf(LAST_REPORT_KEY_FORMAT_V1, venueID)
	return dao.client.Set(key, at.Format(time.RFC3339))
}
