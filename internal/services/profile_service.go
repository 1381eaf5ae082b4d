package services

import (
	"context"
	"fmt"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/repository"
	"github.com/mentorstack/mentorstack-api/internal/websocket"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"github.com/mentorstack/mentorstack-api/pkg/storage"
	"go.uber.org/zap"
)

// ProfileService handles profile edits and picture uploads
type ProfileService struct {
	mentorRepo    repository.MentorRepositoryInterface
	storageClient storage.ClientInterface
	notifier      MentorNotifier
}

// NewProfileService creates a new profile service. The notifier may be nil
// when realtime push is disabled.
func NewProfileService(
	mentorRepo repository.MentorRepositoryInterface,
	storageClient storage.ClientInterface,
	notifier MentorNotifier,
) *ProfileService {
	return &ProfileService{
		mentorRepo:    mentorRepo,
		storageClient: storageClient,
		notifier:      notifier,
	}
}

// SaveProfile updates the mentor's editable fields
func (s *ProfileService) SaveProfile(ctx context.Context, mentorID string, req *models.SaveProfileRequest) error {
	if err := s.mentorRepo.UpdateProfile(ctx, mentorID, req); err != nil {
		metrics.ProfileUpdates.WithLabelValues("error").Inc()
		logger.Error("Failed to update mentor profile", zap.Error(err), zap.String("mentor_id", mentorID))
		return err
	}

	metrics.ProfileUpdates.WithLabelValues("success").Inc()
	logger.Info("Mentor profile updated", zap.String("mentor_id", mentorID))

	s.notifyProfileChanged(mentorID)
	return nil
}

// UploadProfilePicture validates, uploads and records a new profile image.
// The returned URL is publicly resolvable.
func (s *ProfileService) UploadProfilePicture(ctx context.Context, mentorID string, req *models.UploadProfilePictureRequest) (string, error) {
	if s.storageClient == nil {
		return "", apperrors.UnavailableError(fmt.Errorf("object storage not configured"))
	}

	if err := s.storageClient.ValidateImageType(req.ContentType); err != nil {
		return "", err
	}

	if err := s.storageClient.ValidateImageSize(req.ImageData); err != nil {
		return "", err
	}

	fileName := s.storageClient.GenerateFileName(mentorID, req.FileName)

	imageURL, err := s.storageClient.UploadImage(ctx, req.ImageData, fileName, req.ContentType)
	if err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		logger.Error("Failed to upload profile picture", zap.Error(err), zap.String("mentor_id", mentorID))
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if err := s.mentorRepo.UpdateImage(ctx, mentorID, imageURL); err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		logger.Error("Failed to record profile image URL", zap.Error(err), zap.String("mentor_id", mentorID))
		return "", err
	}

	metrics.ProfilePictureUploads.WithLabelValues("success").Inc()
	logger.Info("Profile picture uploaded",
		zap.String("mentor_id", mentorID), zap.String("url", imageURL))

	s.notifyProfileChanged(mentorID)
	return imageURL, nil
}

// notifyProfileChanged pushes a refresh hint to the mentor's open tabs.
// The mentors table is not on the change feed, so this is the only realtime
// signal profile edits get.
func (s *ProfileService) notifyProfileChanged(mentorID string) {
	if s.notifier != nil {
		s.notifier.BroadcastToMentor(mentorID, websocket.NewMessage("mentors", "update", mentorID))
	}
}
