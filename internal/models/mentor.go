package models

import "time"

// ApprovalStatus is the moderation state of a mentor profile.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Mentor is an onboarded (or applied) mentor profile. AccountID stays nil
// until the mentor signs in for the first time and the profile is claimed.
type Mentor struct {
	ID                string         `json:"id"`
	AccountID         *string        `json:"account_id,omitempty"`
	FullName          string         `json:"full_name"`
	Email             string         `json:"email,omitempty"`
	Phone             string         `json:"phone"`
	Location          string         `json:"location,omitempty"`
	Bio               string         `json:"bio,omitempty"`
	Title             string         `json:"title,omitempty"`
	Company           string         `json:"company,omitempty"`
	YearsOfExperience int            `json:"years_of_experience"`
	HourlyRate        int            `json:"hourly_rate"`
	LinkedInURL       string         `json:"linkedin_url,omitempty"`
	GitHubURL         string         `json:"github_url,omitempty"`
	PortfolioURL      string         `json:"portfolio_url,omitempty"`
	ProfileImageURL   string         `json:"profile_image_url,omitempty"`
	Status            ApprovalStatus `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// IsClaimed reports whether the profile is linked to an auth account.
func (m *Mentor) IsClaimed() bool {
	return m.AccountID != nil && *m.AccountID != ""
}

// ApplyRequest is the public mentor application payload.
type ApplyRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Phone    string `json:"phone" binding:"required,e164"`
	Title    string `json:"title" binding:"omitempty,max=200"`
	Company  string `json:"company" binding:"omitempty,max=200"`
	Bio      string `json:"bio" binding:"omitempty,max=4000"`
}

// ApplyResponse is returned after a successful application.
type ApplyResponse struct {
	Success  bool   `json:"success"`
	MentorID string `json:"mentor_id"`
}

// SaveProfileRequest carries the editable profile fields. Email is absent on
// purpose: it is owned by the identity provider and read-only here.
type SaveProfileRequest struct {
	FullName          string `json:"full_name" binding:"required,max=200"`
	Phone             string `json:"phone" binding:"omitempty,e164"`
	Location          string `json:"location" binding:"omitempty,max=200"`
	Bio               string `json:"bio" binding:"omitempty,max=4000"`
	Title             string `json:"title" binding:"omitempty,max=200"`
	Company           string `json:"company" binding:"omitempty,max=200"`
	YearsOfExperience int    `json:"years_of_experience" binding:"omitempty,min=0,max=80"`
	HourlyRate        int    `json:"hourly_rate" binding:"omitempty,min=0"`
	LinkedInURL       string `json:"linkedin_url" binding:"omitempty,url,max=500"`
	GitHubURL         string `json:"github_url" binding:"omitempty,url,max=500"`
	PortfolioURL      string `json:"portfolio_url" binding:"omitempty,url,max=500"`
}

// SaveProfileResponse is returned after a profile update.
type SaveProfileResponse struct {
	Success bool `json:"success"`
}

// UploadProfilePictureRequest carries a base64-encoded image.
type UploadProfilePictureRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	ImageData   string `json:"image_data" binding:"required"`
}

// UploadProfilePictureResponse is returned after an image upload.
type UploadProfilePictureResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
