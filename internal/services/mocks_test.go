package services_test

import (
	"context"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/websocket"
	"github.com/stretchr/testify/mock"
)

// MockMentorRepository is a mock implementation of MentorRepositoryInterface
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) GetByID(ctx context.Context, mentorID string) (*models.Mentor, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByAccountID(ctx context.Context, accountID string) (*models.Mentor, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetUnlinkedByPhone(ctx context.Context, phone string) (*models.Mentor, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) LinkAccount(ctx context.Context, mentorID, accountID string) (*models.Mentor, error) {
	args := m.Called(ctx, mentorID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) CreatePending(ctx context.Context, accountID, phone, email string) (*models.Mentor, error) {
	args := m.Called(ctx, accountID, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) CreateApplication(ctx context.Context, req *models.ApplyRequest) (*models.Mentor, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) UpdateProfile(ctx context.Context, mentorID string, req *models.SaveProfileRequest) error {
	args := m.Called(ctx, mentorID, req)
	return args.Error(0)
}

func (m *MockMentorRepository) UpdateImage(ctx context.Context, mentorID, imageURL string) error {
	args := m.Called(ctx, mentorID, imageURL)
	return args.Error(0)
}

// MockAvailabilityRepository is a mock implementation of AvailabilityRepositoryInterface
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) List(ctx context.Context, mentorID string) ([]*models.AvailabilitySlot, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AvailabilitySlot), args.Error(1)
}

func (m *MockAvailabilityRepository) Create(ctx context.Context, mentorID string, req *models.CreateSlotRequest) (*models.AvailabilitySlot, error) {
	args := m.Called(ctx, mentorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilitySlot), args.Error(1)
}

func (m *MockAvailabilityRepository) Delete(ctx context.Context, mentorID, slotID string) error {
	args := m.Called(ctx, mentorID, slotID)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) InvalidateCache(mentorID string) {
	m.Called(mentorID)
}

// MockSessionRepository is a mock implementation of SessionRepositoryInterface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetStats(ctx context.Context, mentorID string) (*models.SessionStats, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionStats), args.Error(1)
}

func (m *MockSessionRepository) ListUpcoming(ctx context.Context, mentorID string, limit int) ([]*models.Session, error) {
	args := m.Called(ctx, mentorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

// MockStorageClient is a mock implementation of storage.ClientInterface
type MockStorageClient struct {
	mock.Mock
}

func (m *MockStorageClient) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorageClient) GenerateFileName(mentorID string, originalFileName string) string {
	args := m.Called(mentorID, originalFileName)
	return args.String(0)
}

func (m *MockStorageClient) ValidateImageType(contentType string) error {
	args := m.Called(contentType)
	return args.Error(0)
}

func (m *MockStorageClient) ValidateImageSize(imageData string) error {
	args := m.Called(imageData)
	return args.Error(0)
}

// MockNotifier is a mock implementation of MentorNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BroadcastToMentor(mentorID string, msg websocket.Message) {
	m.Called(mentorID, msg)
}

