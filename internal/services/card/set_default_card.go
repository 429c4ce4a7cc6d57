package card

import (
	"context"
	"time"
)

// SetDefaultCard flags cardID as default and every other card as not default.
// An id matching no card leaves no default at all.
func (s *Store) SetDefaultCard(ctx context.Context, cardID string) (string, error) {
	defer s.track(KindSetDefault, time.Now())
	s.pending(KindSetDefault)

	if err := s.backend.MarkDefault(context.WithoutCancel(ctx), cardID); err != nil {
		err = asFailure(KindSetDefault, err)
		s.rejected(KindSetDefault, err)
		return "", err
	}

	s.fulfilled(KindSetDefault, func(st *State) {
		for i := range st.Cards {
			st.Cards[i].IsDefault = st.Cards[i].ID == cardID
		}
	})
	return cardID, nil
}
