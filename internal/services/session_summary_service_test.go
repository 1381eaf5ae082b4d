package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSummaryService_GetStats(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	service := services.NewSessionSummaryService(mockRepo)
	ctx := context.Background()

	expected := &models.SessionStats{Completed: 3, Pending: 1, Upcoming: 2}
	mockRepo.On("GetStats", ctx, "mentor-1").Return(expected, nil).Once()

	stats, err := service.GetStats(ctx, "mentor-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Upcoming)
	mockRepo.AssertExpectations(t)
}

func TestSessionSummaryService_GetStats_Error(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	service := services.NewSessionSummaryService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetStats", ctx, "mentor-1").Return(nil, errors.New("store down")).Once()

	stats, err := service.GetStats(ctx, "mentor-1")
	assert.Error(t, err)
	assert.Nil(t, stats)
	mockRepo.AssertExpectations(t)
}

func TestSessionSummaryService_ListUpcoming(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	service := services.NewSessionSummaryService(mockRepo)
	ctx := context.Background()

	expected := []*models.Session{
		{ID: "sess-1", Status: models.SessionUpcoming, ScheduledAt: time.Now().Add(time.Hour)},
	}
	mockRepo.On("ListUpcoming", ctx, "mentor-1", 5).Return(expected, nil).Once()

	sessions, err := service.ListUpcoming(ctx, "mentor-1", 5)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	mockRepo.AssertExpectations(t)
}

func TestSessionSummaryService_ListUpcoming_DefaultLimit(t *testing.T) {
	mockRepo := new(MockSessionRepository)
	service := services.NewSessionSummaryService(mockRepo)
	ctx := context.Background()

	mockRepo.On("ListUpcoming", ctx, "mentor-1", services.DefaultUpcomingLimit).
		Return([]*models.Session{}, nil).Once()

	sessions, err := service.ListUpcoming(ctx, "mentor-1", 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	mockRepo.AssertExpectations(t)
}
