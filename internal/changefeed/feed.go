package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"github.com/mentorstack/mentorstack-api/pkg/retry"
	"go.uber.org/zap"
)

// ChannelName is the Postgres notification channel the row triggers emit on.
const ChannelName = "mentorstack_changes"

// Tables the feed carries events for
const (
	TableAvailabilitySlots = "availability_slots"
	TableSessions          = "sessions"
)

// AllMentors subscribes to a table's events without a mentor filter
const AllMentors = ""

// Event is a single row-level change parsed from a NOTIFY payload
type Event struct {
	Table    string `json:"table"`
	Action   string `json:"action"`
	ID       string `json:"id"`
	MentorID string `json:"mentor_id"`
}

// Feed holds one LISTEN connection and fans incoming events out to
// registered subscriptions. Subscriptions are filtered by table and
// mentor_id; an event only reaches subscriptions matching both.
type Feed struct {
	pool *pgxpool.Pool

	mu   sync.RWMutex
	subs map[*Subscription]struct{}

	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewFeed creates a change feed backed by the given pool
func NewFeed(pool *pgxpool.Pool) *Feed {
	return &Feed{
		pool: pool,
		subs: make(map[*Subscription]struct{}),
		done: make(chan struct{}),
	}
}

// Start acquires a dedicated connection, issues LISTEN and begins
// dispatching notifications. It returns once the first LISTEN succeeds.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return fmt.Errorf("change feed already started")
	}
	f.started = true
	f.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel

	conn, err := f.listen(ctx)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to start change feed: %w", err)
	}

	logger.Info("Change feed listening", zap.String("channel", ChannelName))

	go f.run(runCtx, conn)
	return nil
}

// listen acquires a pool connection and subscribes it to the channel
func (f *Feed) listen(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+ChannelName); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on %s: %w", ChannelName, err)
	}

	return conn, nil
}

// run blocks on notifications and re-establishes the connection on failure
func (f *Feed) run(ctx context.Context, conn *pgxpool.Conn) {
	defer close(f.done)
	defer func() {
		if conn != nil {
			conn.Release()
		}
	}()

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.Warn("Change feed connection lost, reconnecting", zap.Error(err))
			conn.Release()
			conn = nil

			reconnect := retry.DefaultConfig()
			reconnect.MaxRetries = 10
			reconnect.MaxDelay = 30 * time.Second

			conn, err = retry.DoWithResult(ctx, reconnect, "changefeed_listen",
				func() (*pgxpool.Conn, error) { return f.listen(ctx) })
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("Change feed could not reconnect, stopping", zap.Error(err))
				}
				return
			}

			logger.Info("Change feed reconnected", zap.String("channel", ChannelName))
			continue
		}

		f.dispatch(notification.Payload)
	}
}

// dispatch parses a payload and routes it to matching subscriptions
func (f *Feed) dispatch(payload string) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		logger.Warn("Discarding malformed change feed payload", zap.Error(err))
		return
	}

	metrics.ChangeFeedEvents.WithLabelValues(event.Table, event.Action).Inc()

	f.mu.RLock()
	defer f.mu.RUnlock()

	for sub := range f.subs {
		if sub.matches(event) {
			sub.deliver(event)
		}
	}
}

// Subscribe opens a subscription for one table filtered to one mentor.
// The returned handle is Active once Subscribe returns; the caller owns
// its lifecycle and must call Close on teardown.
func (f *Feed) Subscribe(table, mentorID string) *Subscription {
	sub := newSubscription(f, table, mentorID)
	sub.setState(StateSubscribing)

	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()

	sub.setState(StateActive)
	go sub.run()

	metrics.ChangeFeedSubscriptions.WithLabelValues(table).Inc()
	logger.Debug("Change feed subscription opened",
		zap.String("table", table), zap.String("mentor_id", mentorID))

	return sub
}

// unsubscribe removes a subscription from the routing set
func (f *Feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	delete(f.subs, sub)
	f.mu.Unlock()

	metrics.ChangeFeedSubscriptions.WithLabelValues(sub.table).Dec()
}

// Close stops the dispatch loop and closes every open subscription
func (f *Feed) Close() {
	if f.cancel != nil {
		f.cancel()
		<-f.done
	}

	f.mu.Lock()
	subs := make([]*Subscription, 0, len(f.subs))
	for sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}

	logger.Info("Change feed closed")
}
