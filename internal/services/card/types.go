package card

import (
	"context"
	"time"

	"cardkeeper/internal/models"
)

// Kind identifies one of the asynchronous operations of the store.
type Kind string

const (
	KindAdd        Kind = "add"
	KindRemove     Kind = "remove"
	KindSetDefault Kind = "set_default"
)

// defaultMessage is used when a failure carries no message of its own.
func (k Kind) defaultMessage() string {
	switch k {
	case KindAdd:
		return MsgAddFailed
	case KindRemove:
		return MsgRemoveFailed
	default:
		return MsgSetDefaultFailed
	}
}

// Phase is a step of an operation's lifecycle.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// State is a snapshot of the card collection. An empty Error means no error.
type State struct {
	Cards        []models.Card `json:"cards"`
	IsLoading    bool          `json:"isLoading"`
	IsSubmitting bool          `json:"isSubmitting"`
	Error        string        `json:"error,omitempty"`
}

// DefaultCard returns the first card flagged as default.
func (s State) DefaultCard() (models.Card, bool) {
	for _, c := range s.Cards {
		if c.IsDefault {
			return c, true
		}
	}
	return models.Card{}, false
}

// Backend is the remote boundary the store talks to.
type Backend interface {
	SubmitCard(ctx context.Context, card models.Card, form models.CardFormData) (models.Card, error)
	DeleteCard(ctx context.Context, cardID string) error
	MarkDefault(ctx context.Context, cardID string) error
}

// DefaultFollower is implemented by backends that keep their own default flag. It is
// told when an added card became the default, since that is decided by the store.
type DefaultFollower interface {
	FollowDefault(ctx context.Context, cardID string) error
}

// Loader is implemented by backends that can list previously stored cards.
type Loader interface {
	ListCards(ctx context.Context) ([]models.Card, error)
}

// MetricsCollector defines the interface for collecting card store metrics
type MetricsCollector interface {
	RecordOperationDuration(op Kind, duration time.Duration)
	RecordOperationResult(op Kind, phase Phase)
}
