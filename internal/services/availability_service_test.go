package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/services"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func mondaySlot() *models.AvailabilitySlot {
	return &models.AvailabilitySlot{
		ID:        "slot-1",
		MentorID:  "mentor-1",
		DayOfWeek: 1,
		StartTime: "09:00:00",
		EndTime:   "10:00:00",
	}
}

func TestAvailabilityService_ListSlots_EmptyIsNotError(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx, "mentor-1").Return([]*models.AvailabilitySlot{}, nil).Once()

	slots, err := service.ListSlots(ctx, "mentor-1")
	require.NoError(t, err)
	assert.Empty(t, slots)
	mockRepo.AssertExpectations(t)
}

func TestAvailabilityService_ListSlots_NotFoundTreatedAsEmpty(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx, "mentor-1").Return(nil, apperrors.NotFoundError("slots")).Once()

	slots, err := service.ListSlots(ctx, "mentor-1")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
	mockRepo.AssertExpectations(t)
}

func TestAvailabilityService_CreateSlot_ReloadsAfterWrite(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	req := &models.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "09:00:00", EndTime: "10:00:00"}
	created := mondaySlot()
	reloaded := []*models.AvailabilitySlot{created}

	mockRepo.On("Create", ctx, "mentor-1", req).Return(created, nil).Once()
	mockRepo.On("List", ctx, "mentor-1").Return(reloaded, nil).Once()

	slot, slots, err := service.CreateSlot(ctx, "mentor-1", req)
	require.NoError(t, err)
	assert.Equal(t, "slot-1", slot.ID)
	require.Len(t, slots, 1)
	assert.Equal(t, 1, slots[0].DayOfWeek)
	mockRepo.AssertExpectations(t)
}

func TestAvailabilityService_CreateSlot_ReloadFailureKeepsCreatedSlot(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	req := &models.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "09:00:00", EndTime: "10:00:00"}
	created := mondaySlot()

	mockRepo.On("Create", ctx, "mentor-1", req).Return(created, nil).Once()
	mockRepo.On("List", ctx, "mentor-1").Return(nil, errors.New("connection reset")).Once()

	// The write succeeded, so the caller still gets the slot and a
	// non-nil list containing it, never a nil list on success.
	slot, slots, err := service.CreateSlot(ctx, "mentor-1", req)
	require.NoError(t, err)
	assert.Equal(t, "slot-1", slot.ID)
	require.Len(t, slots, 1)
	assert.Equal(t, "slot-1", slots[0].ID)
	mockRepo.AssertExpectations(t)
}

func TestAvailabilityService_CreateSlot_RejectsInvalidBounds(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *models.CreateSlotRequest
	}{
		{"start equals end", &models.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "10:00:00", EndTime: "10:00:00"}},
		{"start after end", &models.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "11:00:00", EndTime: "10:00:00"}},
		{"day too large", &models.CreateSlotRequest{DayOfWeek: intPtr(7), StartTime: "09:00:00", EndTime: "10:00:00"}},
		{"day negative", &models.CreateSlotRequest{DayOfWeek: intPtr(-1), StartTime: "09:00:00", EndTime: "10:00:00"}},
		{"malformed time", &models.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "9am", EndTime: "10:00:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot, slots, err := service.CreateSlot(ctx, "mentor-1", tc.req)
			assert.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			assert.Nil(t, slot)
			assert.Nil(t, slots)
		})
	}

	// Validation failures never reach the store
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAvailabilityService_CreateSlot_StoreErrorSkipsReload(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	req := &models.CreateSlotRequest{DayOfWeek: intPtr(2), StartTime: "09:00:00", EndTime: "10:00:00"}
	mockRepo.On("Create", ctx, "mentor-1", req).Return(nil, errors.New("store down")).Once()

	slot, slots, err := service.CreateSlot(ctx, "mentor-1", req)
	assert.Error(t, err)
	assert.Nil(t, slot)
	assert.Nil(t, slots)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "List")
}

func TestAvailabilityService_DeleteSlot_RequiresConfirmation(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)

	slots, err := service.DeleteSlot(context.Background(), "mentor-1", "slot-1", false)
	assert.ErrorIs(t, err, services.ErrConfirmationRequired)
	assert.Nil(t, slots)

	// Declined confirmation makes no store call
	mockRepo.AssertNotCalled(t, "Delete")
	mockRepo.AssertNotCalled(t, "List")
}

func TestAvailabilityService_DeleteSlot_ConfirmedDeletesAndReloads(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, "mentor-1", "slot-1").Return(nil).Once()
	mockRepo.On("List", ctx, "mentor-1").Return([]*models.AvailabilitySlot{}, nil).Once()

	slots, err := service.DeleteSlot(ctx, "mentor-1", "slot-1", true)
	require.NoError(t, err)
	assert.Empty(t, slots)
	mockRepo.AssertExpectations(t)
}

func TestAvailabilityService_DeleteSlot_MissingSlotIsError(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, "mentor-1", "slot-gone").Return(apperrors.NotFoundError("availability slot")).Once()

	slots, err := service.DeleteSlot(ctx, "mentor-1", "slot-gone", true)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Nil(t, slots)
	mockRepo.AssertExpectations(t)
	// Failed delete does not reload: the caller keeps its last good view
	mockRepo.AssertNotCalled(t, "List")
}

func TestAvailabilityService_GetCalendar_ProjectsSlots(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx, "mentor-1").Return([]*models.AvailabilitySlot{mondaySlot()}, nil).Once()

	events, err := service.GetCalendar(ctx, "mentor-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []int{1}, events[0].DaysOfWeek)
	assert.Equal(t, "09:00:00", events[0].StartTime)
	assert.Equal(t, "Available", events[0].Title)
	mockRepo.AssertExpectations(t)
}

func TestAvailabilityService_GetCalendar_EmptyMentor(t *testing.T) {
	mockRepo := new(MockAvailabilityRepository)
	service := services.NewAvailabilityService(mockRepo)
	ctx := context.Background()

	mockRepo.On("List", ctx, "mentor-1").Return([]*models.AvailabilitySlot{}, nil).Once()

	events, err := service.GetCalendar(ctx, "mentor-1")
	require.NoError(t, err)
	assert.Empty(t, events)
	mockRepo.AssertExpectations(t)
}
