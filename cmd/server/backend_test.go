package main

import (
	"testing"
	"time"

	"cardkeeper/internal/config"
	"cardkeeper/internal/models"
	"cardkeeper/internal/services/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackendFactory_Simulated(t *testing.T) {
	cfg := config.Config{
		CardBackend:     config.BackendSimulated,
		AddDelay:        time.Millisecond,
		RemoveDelay:     2 * time.Millisecond,
		SetDefaultDelay: 3 * time.Millisecond,
	}

	factory, err := newBackendFactory(cfg)
	require.NoError(t, err)

	backend, err := factory(models.UserClaims{UserID: 1})
	require.NoError(t, err)

	sim, ok := backend.(*card.SimulatedBackend)
	require.True(t, ok)
	assert.Equal(t, time.Millisecond, sim.AddDelay)
	assert.Equal(t, 2*time.Millisecond, sim.RemoveDelay)
	assert.Equal(t, 3*time.Millisecond, sim.SetDefaultDelay)
}

func TestNewBackendFactory_StripeNeedsKey(t *testing.T) {
	_, err := newBackendFactory(config.Config{CardBackend: config.BackendStripe})
	assert.Error(t, err)
}

func TestNewBackendFactory_StripeNeedsCustomer(t *testing.T) {
	factory, err := newBackendFactory(config.Config{
		CardBackend:     config.BackendStripe,
		StripeSecretKey: "sk_test_123",
	})
	require.NoError(t, err)

	_, err = factory(models.UserClaims{UserID: 1})
	assert.Error(t, err)
}

func TestNewBackendFactory_Unknown(t *testing.T) {
	_, err := newBackendFactory(config.Config{CardBackend: "mongo"})
	assert.ErrorContains(t, err, "unknown card backend")
}
