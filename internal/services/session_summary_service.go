package services

import (
	"context"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/repository"
)

// DefaultUpcomingLimit caps the upcoming sessions listing when the caller
// does not specify one.
const DefaultUpcomingLimit = 10

// SessionSummaryService exposes read-only session aggregates. Sessions are
// written entirely by an external booking process; this service never
// mutates them.
type SessionSummaryService struct {
	sessionRepo repository.SessionRepositoryInterface
}

// NewSessionSummaryService creates a new session summary service
func NewSessionSummaryService(sessionRepo repository.SessionRepositoryInterface) *SessionSummaryService {
	return &SessionSummaryService{sessionRepo: sessionRepo}
}

// GetStats returns the mentor's session counts by status. The three counts
// are independent; a session in an unmodeled status appears in none of them.
func (s *SessionSummaryService) GetStats(ctx context.Context, mentorID string) (*models.SessionStats, error) {
	return s.sessionRepo.GetStats(ctx, mentorID)
}

// ListUpcoming returns the mentor's upcoming sessions in date order
func (s *SessionSummaryService) ListUpcoming(ctx context.Context, mentorID string, limit int) ([]*models.Session, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	return s.sessionRepo.ListUpcoming(ctx, mentorID, limit)
}
