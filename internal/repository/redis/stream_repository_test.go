package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	redisRepo "github.com/doleances-service/internal/repository/redis"
)

const (
	testStream = "test:stream:doleance:submitted"
	testGroup  = "test-group"
)

// getTestRedisClient поднимает miniredis на время теста
func getTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// TestStreamRepository_CreateConsumerGroup tests consumer group creation
func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	err := repo.CreateConsumerGroup(ctx, testStream, testGroup)
	require.NoError(t, err)

	exists, err := client.Exists(ctx, testStream).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists, "MKSTREAM creates the stream")

	// Creating again should not error (BUSYGROUP handled)
	err = repo.CreateConsumerGroup(ctx, testStream, testGroup)
	assert.NoError(t, err)
}

// TestStreamRepository_PublishAndConsume tests publishing, batch reads and acks
func TestStreamRepository_PublishAndConsume(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	// Опубликовано до создания группы - всё равно должно быть прочитано
	first := domain.ReportSubmittedEvent{
		EventID:   uuid.New(),
		Report:    &domain.Report{ID: uuid.New(), ContentText: "Pont effondré", LocationCommune: "Mahitsy"},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.PublishToStream(ctx, testStream, first))
	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.PublishToStream(ctx, testStream, domain.ReportSubmittedEvent{EventID: uuid.New()}))
	}

	messages, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2, "count bounds the batch")

	var received domain.ReportSubmittedEvent
	require.NoError(t, json.Unmarshal([]byte(messages[0].Data), &received))
	assert.Equal(t, first.EventID, received.EventID)
	require.NotNil(t, received.Report)
	assert.Equal(t, "Mahitsy", received.Report.LocationCommune)

	rest, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 20)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending.Count)

	require.NoError(t, repo.AckMessages(ctx, testStream, testGroup, []string{messages[0].ID, messages[1].ID}))
	require.NoError(t, repo.AckMessage(ctx, testStream, testGroup, rest[0].ID))
	require.NoError(t, repo.AckMessages(ctx, testStream, testGroup, nil))

	pending, err = client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)

	empty, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 20)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// TestStreamRepository_MessageWithoutData tests that foreign messages surface with empty Data
func TestStreamRepository_MessageWithoutData(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: testStream,
		Values: map[string]interface{}{"other": "value"},
	}).Err())

	messages, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 20)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.NotEmpty(t, messages[0].ID)
	assert.Empty(t, messages[0].Data)
}

// TestStreamRepository_ConsumeWithoutGroup tests the error path
func TestStreamRepository_ConsumeWithoutGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())

	_, err := repo.ConsumeBatch(context.Background(), "missing:stream", "missing-group", "consumer-1", 20)
	assert.Error(t, err)
}

// TestStreamRepository_ClaimPending tests that unacked messages of a gone consumer are redelivered
func TestStreamRepository_ClaimPending(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))
	event := domain.ReportSubmittedEvent{EventID: uuid.New(), Report: &domain.Report{ID: uuid.New()}}
	require.NoError(t, repo.PublishToStream(ctx, testStream, event))

	// host-1 читает и пропадает без ACK
	first, err := repo.ConsumeBatch(ctx, testStream, testGroup, "host-1", 20)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// новые сообщения перезапущенному воркеру не видны
	fresh, err := repo.ConsumeBatch(ctx, testStream, testGroup, "host-2", 20)
	require.NoError(t, err)
	assert.Empty(t, fresh)

	// сообщение ещё не простаивало час - не забирается
	notIdle, err := repo.ClaimPending(ctx, testStream, testGroup, "host-2", time.Hour, 20)
	require.NoError(t, err)
	assert.Empty(t, notIdle)

	claimed, err := repo.ClaimPending(ctx, testStream, testGroup, "host-2", 0, 20)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, first[0].ID, claimed[0].ID)

	var received domain.ReportSubmittedEvent
	require.NoError(t, json.Unmarshal([]byte(claimed[0].Data), &received))
	assert.Equal(t, event.EventID, received.EventID)

	require.NoError(t, repo.AckMessage(ctx, testStream, testGroup, claimed[0].ID))

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)

	again, err := repo.ClaimPending(ctx, testStream, testGroup, "host-2", 0, 20)
	require.NoError(t, err)
	assert.Empty(t, again)
}
