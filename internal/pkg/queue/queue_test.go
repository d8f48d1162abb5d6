package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestQueue_PushPop(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "test_notifications")
	ctx := context.Background()

	expiresAt := time.Now().Add(3 * time.Hour).UTC().Truncate(time.Second)
	err := q.Push(ctx, &NotificationMessage{
		Kind:            KindExpiryReminder,
		AdvertisementID: 7,
		UserID:          3,
		SlotID:          "AD00000007",
		Category:        "tour_guiders",
		ExpiresAt:       &expiresAt,
	})
	require.NoError(t, err)

	length, err := q.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), length)

	msg, err := q.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, KindExpiryReminder, msg.Kind)
	assert.Equal(t, int64(7), msg.AdvertisementID)
	assert.Equal(t, "AD00000007", msg.SlotID)
	require.NotNil(t, msg.ExpiresAt)
	assert.True(t, expiresAt.Equal(*msg.ExpiresAt))
	assert.False(t, msg.EnqueuedAt.IsZero())
}

func TestQueue_FIFO(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "test_fifo")
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		require.NoError(t, q.Push(ctx, &NotificationMessage{Kind: KindSlotExpired, AdvertisementID: i}))
	}

	for i := int64(1); i <= 3; i++ {
		msg, err := q.Pop(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, msg)
		assert.Equal(t, i, msg.AdvertisementID)
	}
}

func TestQueue_PopEmpty(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "empty_queue")

	msg, err := q.Pop(context.Background(), 100*time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, msg)
}

func TestQueue_PopInvalidPayload(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, client.LPush(ctx, "bad_queue", "not json").Err())

	q := NewQueue(client, "bad_queue")
	msg, err := q.Pop(ctx, time.Second)
	assert.Error(t, err)
	assert.Nil(t, msg)
}
