package services

import (
	"context"

	"github.com/mentorstack/mentorstack-api/internal/calendar"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/websocket"
)

// IdentityServiceInterface defines the interface for identity resolution
type IdentityServiceInterface interface {
	Resolve(ctx context.Context, identity *models.Identity) (*models.ResolveResult, error)
}

// AvailabilityServiceInterface defines the interface for slot operations
type AvailabilityServiceInterface interface {
	ListSlots(ctx context.Context, mentorID string) ([]*models.AvailabilitySlot, error)
	GetCalendar(ctx context.Context, mentorID string) ([]calendar.CalendarEvent, error)
	CreateSlot(ctx context.Context, mentorID string, req *models.CreateSlotRequest) (*models.AvailabilitySlot, []*models.AvailabilitySlot, error)
	DeleteSlot(ctx context.Context, mentorID, slotID string, confirmed bool) ([]*models.AvailabilitySlot, error)
}

// SessionSummaryServiceInterface defines the interface for session reads
type SessionSummaryServiceInterface interface {
	GetStats(ctx context.Context, mentorID string) (*models.SessionStats, error)
	ListUpcoming(ctx context.Context, mentorID string, limit int) ([]*models.Session, error)
}

// ProfileServiceInterface defines the interface for profile service operations
type ProfileServiceInterface interface {
	SaveProfile(ctx context.Context, mentorID string, req *models.SaveProfileRequest) error
	UploadProfilePicture(ctx context.Context, mentorID string, req *models.UploadProfilePictureRequest) (string, error)
}

// ApplicationServiceInterface defines the interface for the public apply flow
type ApplicationServiceInterface interface {
	Apply(ctx context.Context, req *models.ApplyRequest) (*models.ApplyResponse, error)
}

// MentorNotifier pushes realtime messages to a mentor's open connections
type MentorNotifier interface {
	BroadcastToMentor(mentorID string, msg websocket.Message)
}

// Ensure services implement their interfaces
var _ IdentityServiceInterface = (*IdentityService)(nil)
var _ AvailabilityServiceInterface = (*AvailabilityService)(nil)
var _ SessionSummaryServiceInterface = (*SessionSummaryService)(nil)
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ ApplicationServiceInterface = (*ApplicationService)(nil)
