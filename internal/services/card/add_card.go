package card

import (
	"context"
	"time"

	"cardkeeper/internal/logger"
	"cardkeeper/internal/models"
)

// AddCard builds a card from form, submits it to the backend and appends it.
// The card is default when it is the only one in the collection once inserted.
// Failures are recorded in the state and also returned.
func (s *Store) AddCard(ctx context.Context, form models.CardFormData) (models.Card, error) {
	defer s.track(KindAdd, time.Now())
	s.pending(KindAdd)

	card, err := s.buildCard(form)
	if err == nil {
		card, err = s.backend.SubmitCard(context.WithoutCancel(ctx), card, form)
	}
	if err != nil {
		err = asFailure(KindAdd, err)
		s.rejected(KindAdd, err)
		return models.Card{}, err
	}

	// The default flag is decided here, whatever the backend reported.
	card.IsDefault = false
	s.fulfilled(KindAdd, func(st *State) {
		st.Cards = append(st.Cards, card)
		if len(st.Cards) == 1 {
			st.Cards[0].IsDefault = true
			card.IsDefault = true
		}
	})

	if card.IsDefault {
		s.followDefault(ctx, card.ID)
	}
	return card, nil
}

// followDefault hands the default decision to backends that persist it. A failure is
// logged only; the add has already succeeded.
func (s *Store) followDefault(ctx context.Context, cardID string) {
	follower, ok := s.backend.(DefaultFollower)
	if !ok {
		return
	}
	if err := follower.FollowDefault(context.WithoutCancel(ctx), cardID); err != nil {
		logger.Warning("failed to persist default card",
			logger.LoggerOptions{Key: "card_id", Data: cardID},
			logger.LoggerOptions{Key: "error", Data: err.Error()},
		)
	}
}

func (s *Store) buildCard(form models.CardFormData) (models.Card, error) {
	cleaned := CleanCardNumber(form.CardNumber)
	if len(cleaned) < MinCardNumberLength {
		return models.Card{}, ValidationError(MsgInvalidNumber)
	}

	return models.Card{
		ID:             s.newID(),
		CardNumber:     form.CardNumber,
		CardHolderName: form.CardHolderName,
		ExpiryDate:     form.ExpiryDate,
		CardType:       DetectCardType(cleaned),
		Last4Digits:    LastFour(cleaned),
		IsDefault:      false,
		CreatedAt:      s.now(),
	}, nil
}
