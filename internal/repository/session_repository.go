package repository

import (
	"context"

	"github.com/mentorstack/mentorstack-api/internal/models"
)

// SessionRepositoryInterface defines the interface for session data access operations.
type SessionRepositoryInterface interface {
	GetStats(ctx context.Context, mentorID string) (*models.SessionStats, error)
	ListUpcoming(ctx context.Context, mentorID string, limit int) ([]*models.Session, error)
}

// SessionRepository handles session data access
type SessionRepository struct {
	store SessionStore
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(store SessionStore) SessionRepositoryInterface {
	return &SessionRepository{store: store}
}

// GetStats counts the mentor's sessions by status
func (r *SessionRepository) GetStats(ctx context.Context, mentorID string) (*models.SessionStats, error) {
	return r.store.GetSessionStats(ctx, mentorID)
}

// ListUpcoming retrieves the mentor's upcoming sessions
func (r *SessionRepository) ListUpcoming(ctx context.Context, mentorID string, limit int) ([]*models.Session, error) {
	return r.store.ListUpcomingSessions(ctx, mentorID, limit)
}
