package card

import (
	"context"
	"time"

	"cardkeeper/internal/models"
)

// RemoveCard deletes the card with cardID. An unknown id is a successful no-op.
// Removing the default card leaves the collection without one.
func (s *Store) RemoveCard(ctx context.Context, cardID string) (string, error) {
	defer s.track(KindRemove, time.Now())
	s.pending(KindRemove)

	if err := s.backend.DeleteCard(context.WithoutCancel(ctx), cardID); err != nil {
		err = asFailure(KindRemove, err)
		s.rejected(KindRemove, err)
		return "", err
	}

	s.fulfilled(KindRemove, func(st *State) {
		kept := make([]models.Card, 0, len(st.Cards))
		for _, c := range st.Cards {
			if c.ID != cardID {
				kept = append(kept, c)
			}
		}
		st.Cards = kept
	})
	return cardID, nil
}
