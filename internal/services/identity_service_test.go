package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mentorstack/mentorstack-api/config"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/services"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity() *models.Identity {
	return &models.Identity{
		AccountID: "acct-1",
		Phone:     "+15550001111",
		Email:     "mentor@example.com",
	}
}

func TestIdentityService_Resolve_AlreadyLinked(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewIdentityService(mockRepo, &config.Config{}, nil)
	ctx := context.Background()

	linked := &models.Mentor{ID: "mentor-1"}
	mockRepo.On("GetByAccountID", ctx, "acct-1").Return(linked, nil).Once()

	result, err := service.Resolve(ctx, identity())
	require.NoError(t, err)
	assert.Equal(t, models.ResolveLinked, result.Outcome)
	assert.Equal(t, "mentor-1", result.Mentor.ID)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "GetUnlinkedByPhone")
	mockRepo.AssertNotCalled(t, "CreatePending")
}

func TestIdentityService_Resolve_ClaimsByPhone(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewIdentityService(mockRepo, &config.Config{}, nil)
	ctx := context.Background()

	unclaimed := &models.Mentor{ID: "mentor-2", Phone: "+15550001111"}
	acct := "acct-1"
	claimed := &models.Mentor{ID: "mentor-2", AccountID: &acct, Phone: "+15550001111"}

	mockRepo.On("GetByAccountID", ctx, "acct-1").Return(nil, apperrors.NotFoundError("mentor")).Once()
	mockRepo.On("GetUnlinkedByPhone", ctx, "+15550001111").Return(unclaimed, nil).Once()
	mockRepo.On("LinkAccount", ctx, "mentor-2", "acct-1").Return(claimed, nil).Once()

	result, err := service.Resolve(ctx, identity())
	require.NoError(t, err)
	assert.Equal(t, models.ResolveClaimed, result.Outcome)
	// The resolved mentor is the existing record, not a new one
	assert.Equal(t, "mentor-2", result.Mentor.ID)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "CreatePending")
}

func TestIdentityService_Resolve_CreatesPending(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewIdentityService(mockRepo, &config.Config{}, nil)
	ctx := context.Background()

	created := &models.Mentor{ID: "mentor-3", Status: models.StatusPending}

	mockRepo.On("GetByAccountID", ctx, "acct-1").Return(nil, apperrors.NotFoundError("mentor")).Once()
	mockRepo.On("GetUnlinkedByPhone", ctx, "+15550001111").Return(nil, apperrors.NotFoundError("mentor")).Once()
	mockRepo.On("CreatePending", ctx, "acct-1", "+15550001111", "mentor@example.com").Return(created, nil).Once()

	result, err := service.Resolve(ctx, identity())
	require.NoError(t, err)
	assert.Equal(t, models.ResolveCreated, result.Outcome)
	assert.Equal(t, models.StatusPending, result.Mentor.Status)
	mockRepo.AssertExpectations(t)
}

func TestIdentityService_Resolve_NoPhoneSkipsClaim(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewIdentityService(mockRepo, &config.Config{}, nil)
	ctx := context.Background()

	ident := &models.Identity{AccountID: "acct-1", Email: "mentor@example.com"}
	created := &models.Mentor{ID: "mentor-4"}

	mockRepo.On("GetByAccountID", ctx, "acct-1").Return(nil, apperrors.NotFoundError("mentor")).Once()
	mockRepo.On("CreatePending", ctx, "acct-1", "", "mentor@example.com").Return(created, nil).Once()

	result, err := service.Resolve(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, models.ResolveCreated, result.Outcome)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "GetUnlinkedByPhone")
}

func TestIdentityService_Resolve_StoreFailureIsFatal(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewIdentityService(mockRepo, &config.Config{}, nil)
	ctx := context.Background()

	mockRepo.On("GetByAccountID", ctx, "acct-1").Return(nil, errors.New("connection refused")).Once()

	result, err := service.Resolve(ctx, identity())
	assert.Error(t, err)
	assert.Nil(t, result)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "GetUnlinkedByPhone")
	mockRepo.AssertNotCalled(t, "CreatePending")
}

func TestIdentityService_Resolve_LostClaimRaceRetries(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewIdentityService(mockRepo, &config.Config{}, nil)
	ctx := context.Background()

	unclaimed := &models.Mentor{ID: "mentor-5", Phone: "+15550001111"}
	acct := "acct-1"
	nowLinked := &models.Mentor{ID: "mentor-5", AccountID: &acct}

	mockRepo.On("GetByAccountID", ctx, "acct-1").Return(nil, apperrors.NotFoundError("mentor")).Once()
	mockRepo.On("GetUnlinkedByPhone", ctx, "+15550001111").Return(unclaimed, nil).Once()
	mockRepo.On("LinkAccount", ctx, "mentor-5", "acct-1").Return(nil, apperrors.NotFoundError("unclaimed mentor")).Once()
	mockRepo.On("GetByAccountID", ctx, "acct-1").Return(nowLinked, nil).Once()

	result, err := service.Resolve(ctx, identity())
	require.NoError(t, err)
	assert.Equal(t, models.ResolveLinked, result.Outcome)
	assert.Equal(t, "mentor-5", result.Mentor.ID)
	mockRepo.AssertExpectations(t)
}

func TestIdentityService_Resolve_MissingAccountID(t *testing.T) {
	mockRepo := new(MockMentorRepository)
	service := services.NewIdentityService(mockRepo, &config.Config{}, nil)

	result, err := service.Resolve(context.Background(), &models.Identity{})
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Nil(t, result)
}
