package card

import (
	"context"
	"time"

	"cardkeeper/internal/models"
)

// SimulatedBackend stands in for a remote card API: every call waits a fixed delay and
// succeeds. The delay is not interrupted by context cancellation.
type SimulatedBackend struct {
	AddDelay        time.Duration
	RemoveDelay     time.Duration
	SetDefaultDelay time.Duration
}

// NewSimulatedBackend returns a backend with the default latencies.
func NewSimulatedBackend() *SimulatedBackend {
	return &SimulatedBackend{
		AddDelay:        DefaultAddDelay,
		RemoveDelay:     DefaultRemoveDelay,
		SetDefaultDelay: DefaultSetDefaultDelay,
	}
}

func (b *SimulatedBackend) SubmitCard(_ context.Context, card models.Card, _ models.CardFormData) (models.Card, error) {
	time.Sleep(b.AddDelay)
	return card, nil
}

func (b *SimulatedBackend) DeleteCard(_ context.Context, _ string) error {
	time.Sleep(b.RemoveDelay)
	return nil
}

func (b *SimulatedBackend) MarkDefault(_ context.Context, _ string) error {
	time.Sleep(b.SetDefaultDelay)
	return nil
}
