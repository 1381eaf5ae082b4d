package changefeed

import (
	"sync"
	"sync/atomic"

	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"go.uber.org/zap"
)

// State is the lifecycle state of a subscription
type State int32

const (
	StateUnsubscribed State = iota
	StateSubscribing
	StateActive
)

// String renders the state for logs
func (s State) String() string {
	switch s {
	case StateSubscribing:
		return "subscribing"
	case StateActive:
		return "active"
	default:
		return "unsubscribed"
	}
}

const eventBufferSize = 16

// Subscription is one live filter on the change feed: events for a single
// table, scoped to a single mentor. Callbacks fire for any insert, update
// or delete on matching rows; there is no per-action filtering. After Close
// the handle is Unsubscribed and later events are discarded.
type Subscription struct {
	feed     *Feed
	table    string
	mentorID string

	state atomic.Int32

	mu        sync.RWMutex
	callbacks []func(Event)

	events    chan Event
	stop      chan struct{}
	closeOnce sync.Once
}

func newSubscription(feed *Feed, table, mentorID string) *Subscription {
	return &Subscription{
		feed:     feed,
		table:    table,
		mentorID: mentorID,
		events:   make(chan Event, eventBufferSize),
		stop:     make(chan struct{}),
	}
}

// Table returns the subscribed table name
func (s *Subscription) Table() string {
	return s.table
}

// State returns the current lifecycle state
func (s *Subscription) State() State {
	return State(s.state.Load())
}

func (s *Subscription) setState(state State) {
	s.state.Store(int32(state))
}

// OnAnyChange registers a callback invoked for every matching event,
// regardless of action. Callbacks run on the subscription's own goroutine,
// in registration order.
func (s *Subscription) OnAnyChange(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// matches reports whether an event passes the subscription's filter
func (s *Subscription) matches(event Event) bool {
	if event.Table != s.table {
		return false
	}
	return s.mentorID == AllMentors || event.MentorID == s.mentorID
}

// deliver hands an event to the subscription without blocking the feed's
// dispatch loop. A full buffer drops the event; the consumer's next refresh
// reloads authoritative state anyway.
func (s *Subscription) deliver(event Event) {
	if s.State() != StateActive {
		return
	}

	select {
	case s.events <- event:
	default:
		metrics.ChangeFeedDroppedEvents.WithLabelValues(s.table).Inc()
		logger.Warn("Subscription buffer full, dropping event",
			zap.String("table", s.table), zap.String("action", event.Action))
	}
}

// run invokes callbacks until the subscription is closed
func (s *Subscription) run() {
	for {
		select {
		case <-s.stop:
			return
		case event := <-s.events:
			if s.State() != StateActive {
				return
			}

			s.mu.RLock()
			callbacks := s.callbacks
			s.mu.RUnlock()

			for _, fn := range callbacks {
				fn(event)
			}
		}
	}
}

// Close tears the subscription down. Safe to call more than once; events
// arriving after Close never reach callbacks.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.setState(StateUnsubscribed)
		s.feed.unsubscribe(s)
		close(s.stop)

		logger.Debug("Change feed subscription closed",
			zap.String("table", s.table), zap.String("mentor_id", s.mentorID))
	})
}
