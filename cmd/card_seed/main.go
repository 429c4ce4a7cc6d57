// Command card_seed stores a set of demo cards for one user in Postgres and prints a
// bearer token for that user.
package main

import (
	"context"
	"log"
	"time"

	"cardkeeper/internal/config"
	"cardkeeper/internal/logger"
	"cardkeeper/internal/models"
	"cardkeeper/internal/repositories"
	"cardkeeper/internal/repositories/cache"
	"cardkeeper/internal/services/card"
	"cardkeeper/internal/utils"

	"go.uber.org/zap"
)

var demoCards = []models.CardFormData{
	{CardNumber: "4242 4242 4242 4242", CardHolderName: "Demo User", ExpiryDate: "12/30", CardName: "Personal"},
	{CardNumber: "5555 5555 5555 4444", CardHolderName: "Demo User", ExpiryDate: "06/29", CardName: "Work"},
	{CardNumber: "3782 8224 6310 0050", CardHolderName: "Demo User", ExpiryDate: "01/28", CardName: "Travel"},
}

func main() {
	config.LoadEnv()
	cfg := config.Load()

	if err := logger.Init(config.IsProduction()); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Sync()

	userID := uint(config.GetIntEnv("USER_ID", 0))
	if userID == 0 {
		logger.Logger.Fatal("USER_ID must be set in environment")
	}

	if err := repositories.InitDB(cfg.DB); err != nil {
		logger.Logger.Fatal("failed to initialise database", zap.Error(err))
	}
	defer repositories.CloseDB()

	repo := repositories.NewCardRepository(repositories.DB)
	factory := func(claims models.UserClaims) (card.Backend, error) {
		return repositories.NewCardBackend(repo, claims.UserID), nil
	}

	var (
		snapshots *cache.SnapshotCache
		sink      card.SnapshotSink
	)
	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		snapshots = cache.NewSnapshotCache(client, cfg.SnapshotTTL)
		sink = snapshots
	}

	ctx := context.Background()
	claims := models.UserClaims{UserID: userID, Email: config.GetEnv("USER_EMAIL", "")}

	store, err := card.NewRegistry(factory, sink, nil).For(ctx, claims)
	if err != nil {
		logger.Logger.Fatal("failed to load cards", zap.Error(err))
	}

	if n := len(store.Snapshot().Cards); n > 0 {
		logger.Info("user already has cards, nothing to seed",
			logger.LoggerOptions{Key: "user_id", Data: userID},
			logger.LoggerOptions{Key: "cards", Data: n},
		)
	} else {
		var last models.Card
		for _, form := range demoCards {
			last, err = store.AddCard(ctx, form)
			if err != nil {
				logger.Logger.Fatal("failed to add card", zap.Error(err))
			}
		}
		// Move the default away from the first card so both flags are exercised
		if _, err := store.SetDefaultCard(ctx, last.ID); err != nil {
			logger.Logger.Fatal("failed to set default card", zap.Error(err))
		}
		logger.Info("cards seeded",
			logger.LoggerOptions{Key: "user_id", Data: userID},
			logger.LoggerOptions{Key: "cards", Data: len(demoCards)},
		)
	}

	if def, ok := store.Snapshot().DefaultCard(); ok {
		logger.Info("default card",
			logger.LoggerOptions{Key: "card_id", Data: def.ID},
			logger.LoggerOptions{Key: "card_type", Data: def.CardType},
			logger.LoggerOptions{Key: "last4", Data: def.Last4Digits},
		)
	} else {
		logger.Warning("user has no default card", logger.LoggerOptions{Key: "user_id", Data: userID})
	}

	if snapshots != nil {
		st, ok, err := snapshots.Get(ctx, userID)
		switch {
		case err != nil:
			logger.Warning("failed to read cached snapshot", logger.LoggerOptions{Key: "error", Data: err.Error()})
		case ok:
			logger.Info("cached snapshot", logger.LoggerOptions{Key: "cards", Data: len(st.Cards)})
		}
	}

	token, err := utils.GenerateToken(cfg.JWTSecret, claims, 24*time.Hour)
	if err != nil {
		logger.Logger.Fatal("failed to sign token", zap.Error(err))
	}
	logger.Info("bearer token issued",
		logger.LoggerOptions{Key: "user_id", Data: userID},
		logger.LoggerOptions{Key: "token", Data: token},
	)
}
