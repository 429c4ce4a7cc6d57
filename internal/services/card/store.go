package card

import (
	"sync"
	"time"

	"cardkeeper/internal/logger"
	"cardkeeper/internal/models"

	"github.com/google/uuid"
)

// Store owns one collection of cards and applies every transition to it.
type Store struct {
	backend Backend
	metrics MetricsCollector
	now     func() time.Time
	newID   func() string

	mu    sync.Mutex
	state State

	seq uint64

	// notifyMu serializes delivery; delivered is the last seq handed to listeners.
	notifyMu  sync.Mutex
	delivered uint64
	listeners map[int]func(State)
	nextSub   int
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics sets the metrics collector. A nil collector is ignored.
func WithMetrics(m MetricsCollector) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how card ids are assigned.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithCards seeds the collection, e.g. from a Loader.
func WithCards(cards []models.Card) Option {
	return func(s *Store) {
		s.state.Cards = append([]models.Card(nil), cards...)
	}
}

// NewStore creates a store with an empty collection, no error and both flags false.
func NewStore(backend Backend, opts ...Option) *Store {
	if backend == nil {
		panic("backend is required")
	}

	s := &Store{
		backend:   backend,
		metrics:   &NoopMetricsCollector{},
		now:       time.Now,
		newID:     newCardID,
		state:     State{Cards: []models.Card{}},
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newCardID returns a time-ordered UUID, falling back to a random one.
func newCardID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := s.state
	st.Cards = append([]models.Card{}, s.state.Cards...)
	return st
}

// Subscribe registers fn to receive snapshots in transition order. A snapshot that is
// already superseded when its turn comes is skipped. fn may read the store but must not
// mutate it.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.notifyMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.notifyMu.Unlock()

	return func() {
		s.notifyMu.Lock()
		delete(s.listeners, id)
		s.notifyMu.Unlock()
	}
}

// ClearError drops the last error. Nothing else changes.
func (s *Store) ClearError() {
	s.apply(func(st *State) {
		st.Error = ""
	})
}

// ClearCards empties the collection regardless of flags or error.
func (s *Store) ClearCards() {
	s.apply(func(st *State) {
		st.Cards = []models.Card{}
	})
}

// apply runs mutate under the state lock and then notifies listeners.
func (s *Store) apply(mutate func(st *State)) {
	s.mu.Lock()
	mutate(&s.state)
	s.seq++
	seq := s.seq
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// pending marks an operation as in flight. Add uses IsSubmitting, the rest IsLoading.
// Every operation start clears the error, whatever its kind.
func (s *Store) pending(kind Kind) {
	s.apply(func(st *State) {
		setFlag(st, kind, true)
		st.Error = ""
	})
	s.metrics.RecordOperationResult(kind, PhasePending)
}

// rejected resets the kind's flag and records the failure message.
func (s *Store) rejected(kind Kind, err error) {
	s.apply(func(st *State) {
		setFlag(st, kind, false)
		st.Error = err.Error()
	})
	s.metrics.RecordOperationResult(kind, PhaseRejected)
	logger.Warning("card operation rejected",
		logger.LoggerOptions{Key: "operation", Data: kind},
		logger.LoggerOptions{Key: "error", Data: err.Error()},
	)
}

// fulfilled resets the kind's flag after applying mutate.
func (s *Store) fulfilled(kind Kind, mutate func(st *State)) {
	s.apply(func(st *State) {
		mutate(st)
		setFlag(st, kind, false)
	})
	s.metrics.RecordOperationResult(kind, PhaseFulfilled)
}

// Flags are plain booleans: overlapping operations sharing a flag can mask each other.
func setFlag(st *State, kind Kind, v bool) {
	if kind == KindAdd {
		st.IsSubmitting = v
		return
	}
	st.IsLoading = v
}

func (s *Store) track(kind Kind, started time.Time) {
	s.metrics.RecordOperationDuration(kind, time.Since(started))
}
