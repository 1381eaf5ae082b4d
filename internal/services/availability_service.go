package services

import (
	"context"
	"fmt"

	"github.com/mentorstack/mentorstack-api/internal/calendar"
	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/internal/repository"
	apperrors "github.com/mentorstack/mentorstack-api/pkg/errors"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"go.uber.org/zap"
)

// ErrConfirmationRequired is returned when a delete arrives without the
// explicit confirmation flag. No store call is made in that case.
var ErrConfirmationRequired = apperrors.InvalidInputError("confirm", "delete requires explicit confirmation")

// AvailabilityService mediates slot mutations against the store. After a
// successful write it reloads the full slot list and returns it: the reload
// is authoritative, never an optimistic local mutation. On failure no
// reload happens, so callers keep their last known-good view.
type AvailabilityService struct {
	slotRepo repository.AvailabilityRepositoryInterface
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(slotRepo repository.AvailabilityRepositoryInterface) *AvailabilityService {
	return &AvailabilityService{slotRepo: slotRepo}
}

// ListSlots returns the mentor's slots. A mentor with no slots gets an
// empty list, not an error.
func (s *AvailabilityService) ListSlots(ctx context.Context, mentorID string) ([]*models.AvailabilitySlot, error) {
	slots, err := s.slotRepo.List(ctx, mentorID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return []*models.AvailabilitySlot{}, nil
		}
		return nil, err
	}
	return slots, nil
}

// GetCalendar returns the mentor's slots projected into calendar events
func (s *AvailabilityService) GetCalendar(ctx context.Context, mentorID string) ([]calendar.CalendarEvent, error) {
	slots, err := s.ListSlots(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return calendar.Project(slots), nil
}

// CreateSlot validates and stores a new slot, then returns it together
// with the reloaded authoritative slot list.
func (s *AvailabilityService) CreateSlot(ctx context.Context, mentorID string, req *models.CreateSlotRequest) (*models.AvailabilitySlot, []*models.AvailabilitySlot, error) {
	if err := req.Validate(); err != nil {
		metrics.SlotCreations.WithLabelValues("invalid").Inc()
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	slot, err := s.slotRepo.Create(ctx, mentorID, req)
	if err != nil {
		metrics.SlotCreations.WithLabelValues("error").Inc()
		return nil, nil, err
	}

	metrics.SlotCreations.WithLabelValues("success").Inc()
	logger.Info("Availability slot created",
		zap.String("mentor_id", mentorID),
		zap.String("slot_id", slot.ID),
		zap.Int("day_of_week", slot.DayOfWeek))

	slots, err := s.ListSlots(ctx, mentorID)
	if err != nil {
		// The write succeeded; surface the created slot as the list
		// rather than reporting a phantom failure or a nil list.
		logger.Warn("Slot list reload failed after create", zap.Error(err))
		return slot, []*models.AvailabilitySlot{slot}, nil
	}

	return slot, slots, nil
}

// DeleteSlot removes a slot after an explicit confirmation and returns the
// reloaded slot list. Deleting an already-deleted slot reports not found
// without touching the list. The reload is idempotent: the change feed may
// trigger an equivalent refresh concurrently and both converge on the same
// backend state.
func (s *AvailabilityService) DeleteSlot(ctx context.Context, mentorID, slotID string, confirmed bool) ([]*models.AvailabilitySlot, error) {
	if !confirmed {
		metrics.SlotDeletions.WithLabelValues("declined").Inc()
		return nil, ErrConfirmationRequired
	}

	if err := s.slotRepo.Delete(ctx, mentorID, slotID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.SlotDeletions.WithLabelValues("not_found").Inc()
		} else {
			metrics.SlotDeletions.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.SlotDeletions.WithLabelValues("success").Inc()
	logger.Info("Availability slot deleted",
		zap.String("mentor_id", mentorID),
		zap.String("slot_id", slotID))

	return s.ListSlots(ctx, mentorID)
}
