package repository

import (
	"context"

	"github.com/mentorstack/mentorstack-api/internal/models"
)

// MentorRepositoryInterface defines the interface for mentor data access operations.
type MentorRepositoryInterface interface {
	GetByID(ctx context.Context, mentorID string) (*models.Mentor, error)
	GetByAccountID(ctx context.Context, accountID string) (*models.Mentor, error)
	GetUnlinkedByPhone(ctx context.Context, phone string) (*models.Mentor, error)
	LinkAccount(ctx context.Context, mentorID, accountID string) (*models.Mentor, error)
	CreatePending(ctx context.Context, accountID, phone, email string) (*models.Mentor, error)
	CreateApplication(ctx context.Context, req *models.ApplyRequest) (*models.Mentor, error)
	UpdateProfile(ctx context.Context, mentorID string, req *models.SaveProfileRequest) error
	UpdateImage(ctx context.Context, mentorID, imageURL string) error
}

// MentorRepository handles mentor data access
type MentorRepository struct {
	store MentorStore
}

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(store MentorStore) MentorRepositoryInterface {
	return &MentorRepository{store: store}
}

// GetByID retrieves a mentor by primary key
func (r *MentorRepository) GetByID(ctx context.Context, mentorID string) (*models.Mentor, error) {
	return r.store.GetMentorByID(ctx, mentorID)
}

// GetByAccountID retrieves the mentor linked to an auth account
func (r *MentorRepository) GetByAccountID(ctx context.Context, accountID string) (*models.Mentor, error) {
	return r.store.GetMentorByAccountID(ctx, accountID)
}

// GetUnlinkedByPhone retrieves an unclaimed mentor matching the phone number
func (r *MentorRepository) GetUnlinkedByPhone(ctx context.Context, phone string) (*models.Mentor, error) {
	return r.store.GetUnlinkedMentorByPhone(ctx, phone)
}

// LinkAccount attaches an account to an unclaimed mentor row
func (r *MentorRepository) LinkAccount(ctx context.Context, mentorID, accountID string) (*models.Mentor, error) {
	return r.store.LinkMentorAccount(ctx, mentorID, accountID)
}

// CreatePending inserts a minimal pending profile for a new account
func (r *MentorRepository) CreatePending(ctx context.Context, accountID, phone, email string) (*models.Mentor, error) {
	return r.store.CreatePendingMentor(ctx, accountID, phone, email)
}

// CreateApplication inserts an unclaimed profile from the apply form
func (r *MentorRepository) CreateApplication(ctx context.Context, req *models.ApplyRequest) (*models.Mentor, error) {
	return r.store.CreateMentorApplication(ctx, req)
}

// UpdateProfile updates the editable profile fields
func (r *MentorRepository) UpdateProfile(ctx context.Context, mentorID string, req *models.SaveProfileRequest) error {
	return r.store.UpdateMentorProfile(ctx, mentorID, req)
}

// UpdateImage updates a mentor's profile image URL
func (r *MentorRepository) UpdateImage(ctx context.Context, mentorID, imageURL string) error {
	return r.store.UpdateMentorImage(ctx, mentorID, imageURL)
}
