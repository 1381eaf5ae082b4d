package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mentorstack/mentorstack-api/internal/models"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"go.uber.org/zap"
)

// ListSlots fetches all availability slots for a mentor, ordered by day and
// start time. A mentor with no slots gets an empty list, not an error.
func (c *Client) ListSlots(ctx context.Context, mentorID string) ([]*models.AvailabilitySlot, error) {
	start := time.Now()
	operation := "listSlots"

	query := `
		SELECT id, mentor_id, day_of_week,
			to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
			created_at
		FROM availability_slots
		WHERE mentor_id = $1
		ORDER BY day_of_week ASC, start_time ASC`

	rows, err := c.pool.Query(ctx, query, mentorID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query availability slots: %w", err)
	}
	defer rows.Close()

	slots := make([]*models.AvailabilitySlot, 0)
	for rows.Next() {
		var s models.AvailabilitySlot
		err := rows.Scan(&s.ID, &s.MentorID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.CreatedAt)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
			return nil, fmt.Errorf("failed to scan availability slot: %w", err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating availability slots: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID), zap.Int("count", len(slots)))

	return slots, nil
}

// CreateSlot inserts a new availability slot and returns the stored row
func (c *Client) CreateSlot(ctx context.Context, mentorID string, req *models.CreateSlotRequest) (*models.AvailabilitySlot, error) {
	start := time.Now()
	operation := "createSlot"

	query := `
		INSERT INTO availability_slots (mentor_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, mentor_id, day_of_week,
			to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
			created_at`

	var s models.AvailabilitySlot
	err := c.pool.QueryRow(ctx, query, mentorID, *req.DayOfWeek, req.StartTime, req.EndTime).
		Scan(&s.ID, &s.MentorID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.CreatedAt)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create availability slot: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID), zap.String("slot_id", s.ID))

	return &s, nil
}

// DeleteSlot removes a slot. The mentor_id condition keeps mentors from
// deleting each other's slots; a missing row is reported as not found.
func (c *Client) DeleteSlot(ctx context.Context, mentorID, slotID string) error {
	start := time.Now()
	operation := "deleteSlot"

	query := "DELETE FROM availability_slots WHERE id = $1 AND mentor_id = $2"
	result, err := c.pool.Exec(ctx, query, slotID, mentorID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete availability slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("availability slot")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID), zap.String("slot_id", slotID))

	return nil
}

// GetSlot fetches a single slot owned by the mentor
func (c *Client) GetSlot(ctx context.Context, mentorID, slotID string) (*models.AvailabilitySlot, error) {
	start := time.Now()
	operation := "getSlot"

	query := `
		SELECT id, mentor_id, day_of_week,
			to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
			created_at
		FROM availability_slots
		WHERE id = $1 AND mentor_id = $2`

	var s models.AvailabilitySlot
	err := c.pool.QueryRow(ctx, query, slotID, mentorID).
		Scan(&s.ID, &s.MentorID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.CreatedAt)

	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("availability slot")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query availability slot: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return &s, nil
}
