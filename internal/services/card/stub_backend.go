package card

import (
	"context"
	"sync"

	"cardkeeper/internal/models"
)

// StubBackend is a synchronous Backend for tests. Errors set on it are returned by the
// matching call; a non-nil gate blocks the call until it is closed or receives a value.
type StubBackend struct {
	mu sync.Mutex

	SubmitErr  error
	DeleteErr  error
	DefaultErr error

	SubmitGate  chan struct{}
	DeleteGate  chan struct{}
	DefaultGate chan struct{}

	Submitted []models.Card
	Deleted   []string
	Defaults  []string
}

func (b *StubBackend) SubmitCard(_ context.Context, card models.Card, _ models.CardFormData) (models.Card, error) {
	wait(b.SubmitGate)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SubmitErr != nil {
		return models.Card{}, b.SubmitErr
	}
	b.Submitted = append(b.Submitted, card)
	return card, nil
}

func (b *StubBackend) DeleteCard(_ context.Context, cardID string) error {
	wait(b.DeleteGate)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.DeleteErr != nil {
		return b.DeleteErr
	}
	b.Deleted = append(b.Deleted, cardID)
	return nil
}

func (b *StubBackend) MarkDefault(_ context.Context, cardID string) error {
	wait(b.DefaultGate)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.DefaultErr != nil {
		return b.DefaultErr
	}
	b.Defaults = append(b.Defaults, cardID)
	return nil
}

// Calls returns how many successful calls of each kind were recorded.
func (b *StubBackend) Calls() (submitted, deleted, defaults int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Submitted), len(b.Deleted), len(b.Defaults)
}

func wait(gate chan struct{}) {
	if gate != nil {
		<-gate
	}
}
