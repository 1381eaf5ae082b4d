package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_SaveProfile(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	mockNotifier := new(MockNotifier)
	service := services.NewProfileService(mockRepo, nil, mockNotifier)
	ctx := context.Background()

	req := &models.SaveProfileRequest{FullName: "Ada Lovelace", HourlyRate: 120}
	mockRepo.On("UpdateProfile", ctx, "mentor-1", req).Return(nil).Once()
	mockNotifier.On("BroadcastToMentor", "mentor-1", mock.Anything).Once()

	err := service.SaveProfile(ctx, "mentor-1", req)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestProfileService_SaveProfile_Error(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	mockNotifier := new(MockNotifier)
	service := services.NewProfileService(mockRepo, nil, mockNotifier)
	ctx := context.Background()

	req := &models.SaveProfileRequest{FullName: "Ada Lovelace"}
	mockRepo.On("UpdateProfile", ctx, "mentor-1", req).Return(errors.New("store down")).Once()

	err := service.SaveProfile(ctx, "mentor-1", req)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
	mockNotifier.AssertNotCalled(t, "BroadcastToMentor")
}

func TestProfileService_UploadProfilePicture(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	mockStorage := new(MockStorageClient)
	mockNotifier := new(MockNotifier)
	service := services.NewProfileService(mockRepo, mockStorage, mockNotifier)
	ctx := context.Background()

	req := &models.UploadProfilePictureRequest{
		FileName:    "me.png",
		ContentType: "image/png",
		ImageData:   "aGVsbG8=",
	}

	mockStorage.On("ValidateImageType", "image/png").Return(nil).Once()
	mockStorage.On("ValidateImageSize", "aGVsbG8=").Return(nil).Once()
	mockStorage.On("GenerateFileName", "mentor-1", "me.png").Return("profiles/mentor-1/123.png").Once()
	mockStorage.On("UploadImage", ctx, "aGVsbG8=", "profiles/mentor-1/123.png", "image/png").
		Return("https://cdn.example.com/profiles/mentor-1/123.png", nil).Once()
	mockRepo.On("UpdateImage", ctx, "mentor-1", "https://cdn.example.com/profiles/mentor-1/123.png").Return(nil).Once()
	mockNotifier.On("BroadcastToMentor", "mentor-1", mock.Anything).Once()

	url, err := service.UploadProfilePicture(ctx, "mentor-1", req)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/profiles/mentor-1/123.png", url)
	mockRepo.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestProfileService_UploadProfilePicture_RejectsBadType(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	mockStorage := new(MockStorageClient)
	service := services.NewProfileService(mockRepo, mockStorage, nil)
	ctx := context.Background()

	req := &models.UploadProfilePictureRequest{
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
		ImageData:   "aGVsbG8=",
	}

	mockStorage.On("ValidateImageType", "application/pdf").Return(errors.New("unsupported content type")).Once()

	url, err := service.UploadProfilePicture(ctx, "mentor-1", req)
	assert.Error(t, err)
	assert.Empty(t, url)
	mockStorage.AssertExpectations(t)
	mockStorage.AssertNotCalled(t, "UploadImage")
	mockRepo.AssertNotCalled(t, "UpdateImage")
}

func TestProfileService_UploadProfilePicture_UploadFailure(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	mockStorage := new(MockStorageClient)
	mockNotifier := new(MockNotifier)
	service := services.NewProfileService(mockRepo, mockStorage, mockNotifier)
	ctx := context.Background()

	req := &models.UploadProfilePictureRequest{
		FileName:    "me.png",
		ContentType: "image/png",
		ImageData:   "aGVsbG8=",
	}

	mockStorage.On("ValidateImageType", "image/png").Return(nil).Once()
	mockStorage.On("ValidateImageSize", "aGVsbG8=").Return(nil).Once()
	mockStorage.On("GenerateFileName", "mentor-1", "me.png").Return("profiles/mentor-1/123.png").Once()
	mockStorage.On("UploadImage", ctx, "aGVsbG8=", "profiles/mentor-1/123.png", "image/png").
		Return("", errors.New("bucket unavailable")).Once()

	url, err := service.UploadProfilePicture(ctx, "mentor-1", req)
	assert.Error(t, err)
	assert.Empty(t, url)
	mockStorage.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "UpdateImage")
	mockNotifier.AssertNotCalled(t, "BroadcastToMentor")
}
