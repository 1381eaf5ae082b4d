package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"go.uber.org/zap"
)

// GetSessionStats counts a mentor's sessions by status in a single query.
// Unknown statuses fall through every filter and are not counted.
func (c *Client) GetSessionStats(ctx context.Context, mentorID string) (*models.SessionStats, error) {
	start := time.Now()
	operation := "getSessionStats"

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'upcoming')
		FROM sessions
		WHERE mentor_id = $1`

	var stats models.SessionStats
	err := c.pool.QueryRow(ctx, query, mentorID).
		Scan(&stats.Completed, &stats.Pending, &stats.Upcoming)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query session stats: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID))

	return &stats, nil
}

// ListUpcomingSessions fetches a mentor's upcoming sessions in start order
func (c *Client) ListUpcomingSessions(ctx context.Context, mentorID string, limit int) ([]*models.Session, error) {
	start := time.Now()
	operation := "listUpcomingSessions"

	query := `
		SELECT id, mentor_id, mentee_name, mentee_email, topic, scheduled_at, status, created_at
		FROM sessions
		WHERE mentor_id = $1 AND status = 'upcoming' AND scheduled_at >= now()
		ORDER BY scheduled_at ASC
		LIMIT $2`

	rows, err := c.pool.Query(ctx, query, mentorID, limit)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query upcoming sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		var s models.Session
		err := rows.Scan(&s.ID, &s.MentorID, &s.MenteeName, &s.MenteeEmail, &s.Topic,
			&s.ScheduledAt, &s.Status, &s.CreatedAt)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID), zap.Int("count", len(sessions)))

	return sessions, nil
}
