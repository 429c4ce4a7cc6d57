package repositories

import (
	"context"

	"cardkeeper/internal/models"
)

type CardRepository interface {
	// Core operations
	Create(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, userID uint, cardID string) error

	// Query operations
	GetByUserID(ctx context.Context, userID uint) ([]models.Card, error)

	// Status operations
	SetDefault(ctx context.Context, userID uint, cardID string) error
}
