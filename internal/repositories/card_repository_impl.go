package repositories

import (
	"context"
	"fmt"

	"cardkeeper/internal/models"

	"gorm.io/gorm"
)

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{
		db: db,
	}
}

// Create inserts the card as given. The default flag is owned by the card store and
// reaches the table through SetDefault.
func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}
	return nil
}

// Delete removes the card if it exists. Deleting nothing is not an error.
func (r *cardRepository) Delete(ctx context.Context, userID uint, cardID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cardID, userID).
		Delete(&models.Card{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	return nil
}

func (r *cardRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to get user cards: %w", err)
	}
	return cards, nil
}

// SetDefault clears every default flag of the user and sets the one matching cardID.
// An unknown cardID leaves the user without a default.
func (r *cardRepository) SetDefault(ctx context.Context, userID uint, cardID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Remove default flag from all user's cards
		if err := tx.Model(&models.Card{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return fmt.Errorf("failed to clear default card: %w", err)
		}

		// Set the new default card
		if err := tx.Model(&models.Card{}).
			Where("id = ? AND user_id = ?", cardID, userID).
			Update("is_default", true).Error; err != nil {
			return fmt.Errorf("failed to set default card: %w", err)
		}
		return nil
	})
}
