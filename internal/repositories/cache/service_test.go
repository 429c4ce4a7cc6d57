package cache

import (
	"context"
	"testing"
	"time"

	"cardkeeper/internal/models"
	"cardkeeper/internal/services/card"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the few commands the snapshot cache issues.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func TestSnapshotCache_PublishAndGet(t *testing.T) {
	client := newFakeRedis()
	c := NewSnapshotCache(client, time.Hour)

	state := card.State{
		Cards:        []models.Card{{ID: "c1", CardType: models.CardTypeVisa, Last4Digits: "1111", IsDefault: true}},
		IsSubmitting: true,
	}
	require.NoError(t, c.Publish(context.Background(), 5, state))
	assert.Equal(t, time.Hour, client.ttls["card:user:5"])

	got, ok, err := c.Get(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, state.IsSubmitting, got.IsSubmitting)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "c1", got.Cards[0].ID)
	assert.True(t, got.Cards[0].IsDefault)
}

func TestSnapshotCache_Miss(t *testing.T) {
	c := NewSnapshotCache(newFakeRedis(), time.Hour)

	_, ok, err := c.Get(context.Background(), 99)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotCache_CorruptEntry(t *testing.T) {
	client := newFakeRedis()
	client.data["card:user:1"] = "{not json"
	c := NewSnapshotCache(client, time.Hour)

	_, _, err := c.Get(context.Background(), 1)

	assert.ErrorContains(t, err, "failed to unmarshal card snapshot")
}
