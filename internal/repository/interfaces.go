package repository

import (
	"context"

	"github.com/mentorstack/mentorstack-api/internal/models"
)

// MentorStore defines the persistence operations for mentor profiles
type MentorStore interface {
	// GetMentorByID fetches a mentor by primary key
	GetMentorByID(ctx context.Context, mentorID string) (*models.Mentor, error)

	// GetMentorByAccountID fetches the mentor linked to an auth account
	GetMentorByAccountID(ctx context.Context, accountID string) (*models.Mentor, error)

	// GetUnlinkedMentorByPhone fetches an unclaimed mentor by phone number
	GetUnlinkedMentorByPhone(ctx context.Context, phone string) (*models.Mentor, error)

	// LinkMentorAccount attaches an account to an unclaimed mentor row
	LinkMentorAccount(ctx context.Context, mentorID, accountID string) (*models.Mentor, error)

	// CreatePendingMentor inserts a minimal pending profile for a new account
	CreatePendingMentor(ctx context.Context, accountID, phone, email string) (*models.Mentor, error)

	// CreateMentorApplication inserts an unclaimed profile from the apply form
	CreateMentorApplication(ctx context.Context, req *models.ApplyRequest) (*models.Mentor, error)

	// UpdateMentorProfile updates the editable profile fields
	UpdateMentorProfile(ctx context.Context, mentorID string, req *models.SaveProfileRequest) error

	// UpdateMentorImage updates a mentor's profile image URL
	UpdateMentorImage(ctx context.Context, mentorID, imageURL string) error
}

// SlotStore defines the persistence operations for availability slots
type SlotStore interface {
	// ListSlots fetches a mentor's slots ordered by day and start time
	ListSlots(ctx context.Context, mentorID string) ([]*models.AvailabilitySlot, error)

	// CreateSlot inserts a new slot and returns the stored row
	CreateSlot(ctx context.Context, mentorID string, req *models.CreateSlotRequest) (*models.AvailabilitySlot, error)

	// DeleteSlot removes a slot owned by the mentor
	DeleteSlot(ctx context.Context, mentorID, slotID string) error
}

// SessionStore defines the read operations for mentoring sessions
type SessionStore interface {
	// GetSessionStats counts a mentor's sessions by status
	GetSessionStats(ctx context.Context, mentorID string) (*models.SessionStats, error)

	// ListUpcomingSessions fetches a mentor's upcoming sessions
	ListUpcomingSessions(ctx context.Context, mentorID string, limit int) ([]*models.Session, error)
}
