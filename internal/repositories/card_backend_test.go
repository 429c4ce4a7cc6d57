package repositories

import (
	"context"
	"errors"
	"testing"

	"cardkeeper/internal/config"
	"cardkeeper/internal/models"
	"cardkeeper/internal/services/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, userID uint, cardID string) error {
	args := m.Called(ctx, userID, cardID)
	return args.Error(0)
}

func (m *MockCardRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Card, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) SetDefault(ctx context.Context, userID uint, cardID string) error {
	args := m.Called(ctx, userID, cardID)
	return args.Error(0)
}

func TestCardBackend_SubmitCardScopesToUser(t *testing.T) {
	repo := new(MockCardRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Card) bool {
		return c.UserID == 9 && c.ID == "c1" && !c.IsDefault
	})).Return(nil)
	backend := NewCardBackend(repo, 9)

	card, err := backend.SubmitCard(context.Background(), models.Card{ID: "c1", IsDefault: true}, models.CardFormData{})

	require.NoError(t, err)
	assert.Equal(t, uint(9), card.UserID)
	repo.AssertExpectations(t)
}

func TestCardBackend_SubmitCardFailure(t *testing.T) {
	repo := new(MockCardRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("failed to save card: duplicate key"))
	backend := NewCardBackend(repo, 9)

	_, err := backend.SubmitCard(context.Background(), models.Card{ID: "c1"}, models.CardFormData{})

	assert.EqualError(t, err, "failed to save card: duplicate key")
}

func TestCardBackend_Delegates(t *testing.T) {
	repo := new(MockCardRepository)
	repo.On("Delete", mock.Anything, uint(4), "c1").Return(nil)
	repo.On("SetDefault", mock.Anything, uint(4), "c2").Return(nil)
	repo.On("GetByUserID", mock.Anything, uint(4)).Return([]models.Card{{ID: "c2"}}, nil)
	backend := NewCardBackend(repo, 4)

	require.NoError(t, backend.DeleteCard(context.Background(), "c1"))
	require.NoError(t, backend.MarkDefault(context.Background(), "c2"))
	cards, err := backend.ListCards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Card{{ID: "c2"}}, cards)

	repo.AssertExpectations(t)
}

func TestCardBackend_FollowDefault(t *testing.T) {
	repo := new(MockCardRepository)
	repo.On("SetDefault", mock.Anything, uint(4), "c3").Return(nil)
	backend := NewCardBackend(repo, 4)

	require.NoError(t, backend.FollowDefault(context.Background(), "c3"))
	repo.AssertExpectations(t)
}

// The row a store flags as default becomes the only default row, even when the user
// still has rows the store no longer shows.
func TestCardBackend_StoreDecidesDefault(t *testing.T) {
	repo := new(MockCardRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Card) bool {
		return !c.IsDefault
	})).Return(nil).Twice()
	repo.On("SetDefault", mock.Anything, uint(4), mock.Anything).Return(nil)
	repo.On("GetByUserID", mock.Anything, uint(4)).Return([]models.Card{}, nil)

	s, err := card.NewRegistry(func(models.UserClaims) (card.Backend, error) {
		return NewCardBackend(repo, 4), nil
	}, nil, nil).For(context.Background(), models.UserClaims{UserID: 4})
	require.NoError(t, err)

	first, err := s.AddCard(context.Background(), models.CardFormData{CardNumber: "4111111111111111"})
	require.NoError(t, err)
	s.ClearCards()
	second, err := s.AddCard(context.Background(), models.CardFormData{CardNumber: "5555555555554444"})
	require.NoError(t, err)

	assert.True(t, second.IsDefault)
	repo.AssertCalled(t, "SetDefault", mock.Anything, uint(4), first.ID)
	repo.AssertCalled(t, "SetDefault", mock.Anything, uint(4), second.ID)
	repo.AssertNumberOfCalls(t, "SetDefault", 2)
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{Host: "db", User: "u", Password: "p", Name: "cards", Port: "6543"})
	assert.Equal(t, "host=db user=u password=p dbname=cards port=6543 sslmode=disable", dsn)
}
