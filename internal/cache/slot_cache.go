package cache

import (
	"time"

	"github.com/mentorstack/mentorstack-api/internal/models"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	slotKeyPrefix    = "slots:mentor:"
	cacheCheckPeriod = 10 * time.Second
)

// SlotCache holds per-mentor availability slot lists. Entries expire after
// the TTL and are invalidated eagerly when the change feed reports a write
// to the mentor's slots.
type SlotCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewSlotCache creates a slot cache with the given TTL in seconds
func NewSlotCache(ttlSeconds int) *SlotCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &SlotCache{
		cache: gocache.New(ttl, cacheCheckPeriod),
		ttl:   ttl,
	}
}

// Get returns the cached slot list for a mentor, if present
func (sc *SlotCache) Get(mentorID string) ([]*models.AvailabilitySlot, bool) {
	data, found := sc.cache.Get(slotKeyPrefix + mentorID)
	if !found {
		metrics.CacheMisses.WithLabelValues("availability_slots").Inc()
		return nil, false
	}

	slots, ok := data.([]*models.AvailabilitySlot)
	if !ok {
		logger.Error("Invalid cache data type for slot list", zap.String("mentor_id", mentorID))
		sc.cache.Delete(slotKeyPrefix + mentorID)
		return nil, false
	}

	metrics.CacheHits.WithLabelValues("availability_slots").Inc()
	return slots, true
}

// Set stores a mentor's slot list
func (sc *SlotCache) Set(mentorID string, slots []*models.AvailabilitySlot) {
	sc.cache.Set(slotKeyPrefix+mentorID, slots, sc.ttl)
}

// Invalidate drops a mentor's cached slot list. Called after local writes
// and on change feed events for the mentor's slots.
func (sc *SlotCache) Invalidate(mentorID string) {
	sc.cache.Delete(slotKeyPrefix + mentorID)
	metrics.CacheInvalidations.WithLabelValues("availability_slots").Inc()
	logger.Debug("Slot cache invalidated", zap.String("mentor_id", mentorID))
}

// Clear flushes the entire cache
func (sc *SlotCache) Clear() {
	sc.cache.Flush()
	logger.Info("Slot cache cleared")
}
