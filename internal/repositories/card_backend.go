package repositories

import (
	"context"

	"cardkeeper/internal/models"
)

// CardBackend exposes one user's rows as the card store's backend.
type CardBackend struct {
	repo   CardRepository
	userID uint
}

func NewCardBackend(repo CardRepository, userID uint) *CardBackend {
	return &CardBackend{repo: repo, userID: userID}
}

// SubmitCard stores the card without the default flag; FollowDefault sets it once the
// store has decided.
func (b *CardBackend) SubmitCard(ctx context.Context, card models.Card, _ models.CardFormData) (models.Card, error) {
	card.UserID = b.userID
	card.IsDefault = false
	if err := b.repo.Create(ctx, &card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (b *CardBackend) DeleteCard(ctx context.Context, cardID string) error {
	return b.repo.Delete(ctx, b.userID, cardID)
}

func (b *CardBackend) MarkDefault(ctx context.Context, cardID string) error {
	return b.repo.SetDefault(ctx, b.userID, cardID)
}

// FollowDefault makes cardID the user's only default row.
func (b *CardBackend) FollowDefault(ctx context.Context, cardID string) error {
	return b.repo.SetDefault(ctx, b.userID, cardID)
}

func (b *CardBackend) ListCards(ctx context.Context) ([]models.Card, error) {
	return b.repo.GetByUserID(ctx, b.userID)
}
