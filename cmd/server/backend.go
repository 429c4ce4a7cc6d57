package main

import (
	"errors"
	"fmt"

	"cardkeeper/internal/config"
	"cardkeeper/internal/models"
	"cardkeeper/internal/repositories"
	"cardkeeper/internal/services/card"
	creditcard "cardkeeper/internal/services/credit-card"
)

// newBackendFactory picks the card backend named by CARD_BACKEND and opens the
// connections it needs.
func newBackendFactory(cfg config.Config) (card.BackendFactory, error) {
	switch cfg.CardBackend {
	case config.BackendSimulated:
		return func(models.UserClaims) (card.Backend, error) {
			return &card.SimulatedBackend{
				AddDelay:        cfg.AddDelay,
				RemoveDelay:     cfg.RemoveDelay,
				SetDefaultDelay: cfg.SetDefaultDelay,
			}, nil
		}, nil

	case config.BackendPostgres:
		if err := repositories.InitDB(cfg.DB); err != nil {
			return nil, err
		}
		repo := repositories.NewCardRepository(repositories.DB)
		return func(claims models.UserClaims) (card.Backend, error) {
			return repositories.NewCardBackend(repo, claims.UserID), nil
		}, nil

	case config.BackendStripe:
		if cfg.StripeSecretKey == "" {
			return nil, errors.New("STRIPE_SECRET_KEY must be set for the stripe backend")
		}
		return func(claims models.UserClaims) (card.Backend, error) {
			backend, err := creditcard.NewStripeBackend(cfg.StripeSecretKey, claims.StripeCustomerID)
			if err != nil {
				return nil, err
			}
			return backend, nil
		}, nil

	default:
		return nil, fmt.Errorf("unknown card backend %q", cfg.CardBackend)
	}
}
