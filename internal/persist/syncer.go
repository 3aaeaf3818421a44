package persist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/reception-scheduler/internal/kv/core"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
)

const writeTimeout = 10 * time.Second

// Syncer writes store snapshots to a key/value backend in the background.
// Pending writes are coalesced per key, so only the latest snapshot of each
// collection is written. Write failures are logged and never reach the
// mutation that caused them.
type Syncer struct {
	kv  core.Store
	log *zap.Logger

	mu      sync.Mutex
	pending map[string]any
	wake    chan struct{}

	// writeMu keeps Run and Flush from writing the same key out of order.
	writeMu sync.Mutex

	cancels []func()
}

func NewSyncer(kv core.Store, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{
		kv:      kv,
		log:     log,
		pending: make(map[string]any),
		wake:    make(chan struct{}, 1),
	}
}

// Attach subscribes to every collection of st. The replayed snapshots are
// queued as well, which writes the initial state once.
func (s *Syncer) Attach(st *store.Store) {
	s.cancels = append(s.cancels,
		st.WatchProviders(func(ps []models.Provider) {
			s.enqueue(KeyProviders, ps)
			s.enqueue(KeySequences, st.Sequences())
		}),
		st.WatchProducts(func(ps []models.Product) {
			s.enqueue(KeyProducts, ps)
			s.enqueue(KeySequences, st.Sequences())
		}),
		st.WatchCages(func(cs []models.Cage) {
			s.enqueue(KeyCages, cs)
			s.enqueue(KeySequences, st.Sequences())
		}),
		st.WatchAppointments(func(as []models.Appointment) {
			s.enqueue(KeyAppointments, as)
			s.enqueue(KeySequences, st.Sequences())
		}),
	)
}

// Detach drops the store subscriptions. Already queued writes are kept.
func (s *Syncer) Detach() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

func (s *Syncer) enqueue(key string, v any) {
	s.mu.Lock()
	s.pending[key] = v
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending reports how many keys wait to be written.
func (s *Syncer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Run writes queued snapshots until ctx is done.
func (s *Syncer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
			s.writePending(ctx)
		}
	}
}

// Flush writes everything queued so far and returns the first error.
func (s *Syncer) Flush(ctx context.Context) error {
	return s.writePending(ctx)
}

func (s *Syncer) writePending(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[string]any, len(batch))
	s.mu.Unlock()

	var firstErr error
	for key, v := range batch {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := core.SetJSON(wctx, s.kv, key, v)
		cancel()
		if err != nil {
			s.log.Error("persist snapshot failed",
				zap.String("key", key),
				zap.String("driver", string(s.kv.Driver())),
				zap.Error(err),
			)
			s.requeue(key, v)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.log.Debug("snapshot persisted", zap.String("key", key))
	}
	return firstErr
}

// requeue puts a failed write back unless a newer snapshot arrived.
func (s *Syncer) requeue(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, newer := s.pending[key]; !newer {
		s.pending[key] = v
	}
}
