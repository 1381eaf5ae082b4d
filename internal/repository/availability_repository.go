package repository

import (
	"context"

	"github.com/mentorstack/mentorstack-api/internal/cache"
	"github.com/mentorstack/mentorstack-api/internal/models"
)

// AvailabilityRepositoryInterface defines the interface for slot data access operations.
type AvailabilityRepositoryInterface interface {
	List(ctx context.Context, mentorID string) ([]*models.AvailabilitySlot, error)
	Create(ctx context.Context, mentorID string, req *models.CreateSlotRequest) (*models.AvailabilitySlot, error)
	Delete(ctx context.Context, mentorID, slotID string) error
	InvalidateCache(mentorID string)
}

// AvailabilityRepository handles slot data access with a per-mentor
// read-through cache. Writes invalidate the owning mentor's entry so the
// next List reloads from the store.
type AvailabilityRepository struct {
	store     SlotStore
	slotCache *cache.SlotCache
}

// NewAvailabilityRepository creates a new availability repository. The cache
// may be nil to bypass caching entirely.
func NewAvailabilityRepository(store SlotStore, slotCache *cache.SlotCache) AvailabilityRepositoryInterface {
	return &AvailabilityRepository{store: store, slotCache: slotCache}
}

// List retrieves a mentor's slots, from cache when possible
func (r *AvailabilityRepository) List(ctx context.Context, mentorID string) ([]*models.AvailabilitySlot, error) {
	if r.slotCache != nil {
		if slots, ok := r.slotCache.Get(mentorID); ok {
			return slots, nil
		}
	}

	slots, err := r.store.ListSlots(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	if r.slotCache != nil {
		r.slotCache.Set(mentorID, slots)
	}

	return slots, nil
}

// Create inserts a new slot and invalidates the mentor's cached list
func (r *AvailabilityRepository) Create(ctx context.Context, mentorID string, req *models.CreateSlotRequest) (*models.AvailabilitySlot, error) {
	slot, err := r.store.CreateSlot(ctx, mentorID, req)
	if err != nil {
		return nil, err
	}

	r.InvalidateCache(mentorID)
	return slot, nil
}

// Delete removes a slot and invalidates the mentor's cached list
func (r *AvailabilityRepository) Delete(ctx context.Context, mentorID, slotID string) error {
	if err := r.store.DeleteSlot(ctx, mentorID, slotID); err != nil {
		return err
	}

	r.InvalidateCache(mentorID)
	return nil
}

// InvalidateCache drops the mentor's cached slot list
func (r *AvailabilityRepository) InvalidateCache(mentorID string) {
	if r.slotCache != nil {
		r.slotCache.Invalidate(mentorID)
	}
}
