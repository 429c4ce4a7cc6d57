package card

import (
	"context"
	"fmt"
	"sync"

	"cardkeeper/internal/logger"
	"cardkeeper/internal/models"
)

// BackendFactory builds the backend for one user's store.
type BackendFactory func(claims models.UserClaims) (Backend, error)

// SnapshotSink receives every snapshot of every store the registry creates.
type SnapshotSink interface {
	Publish(ctx context.Context, userID uint, state State) error
}

// Registry holds one Store per user for the life of the process.
type Registry struct {
	factory BackendFactory
	sink    SnapshotSink
	metrics MetricsCollector

	mu     sync.Mutex
	stores map[uint]*Store
}

func NewRegistry(factory BackendFactory, sink SnapshotSink, metrics MetricsCollector) *Registry {
	if factory == nil {
		panic("backend factory is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &Registry{
		factory: factory,
		sink:    sink,
		metrics: metrics,
		stores:  make(map[uint]*Store),
	}
}

// For returns the user's store, creating it on first use. Backends implementing Loader
// seed the new store with the cards they already hold. The backend is built and loaded
// outside the registry lock; when two calls race for the same user the first store
// inserted wins and the other is dropped.
func (r *Registry) For(ctx context.Context, claims models.UserClaims) (*Store, error) {
	if s, ok := r.lookup(claims.UserID); ok {
		return s, nil
	}

	backend, err := r.factory(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to create card backend: %w", err)
	}

	opts := []Option{WithMetrics(r.metrics)}
	if loader, ok := backend.(Loader); ok {
		cards, err := loader.ListCards(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load cards: %w", err)
		}
		opts = append(opts, WithCards(cards))
	}
	created := NewStore(backend, opts...)

	r.mu.Lock()
	if s, ok := r.stores[claims.UserID]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.stores[claims.UserID] = created
	r.mu.Unlock()

	if r.sink != nil {
		r.subscribeSink(claims.UserID, created)
	}
	logger.Info("card store created", logger.LoggerOptions{Key: "user_id", Data: claims.UserID})
	return created, nil
}

func (r *Registry) lookup(userID uint) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[userID]
	return s, ok
}

// subscribeSink publishes every snapshot of s. Delivery holds the store's notify lock,
// so each publish is bounded by PublishTimeout.
func (r *Registry) subscribeSink(userID uint, s *Store) {
	s.Subscribe(func(st State) {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		if err := r.sink.Publish(ctx, userID, st); err != nil {
			logger.Warning("failed to publish card snapshot",
				logger.LoggerOptions{Key: "user_id", Data: userID},
				logger.LoggerOptions{Key: "error", Data: err.Error()},
			)
		}
	})
}

// Len returns the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
