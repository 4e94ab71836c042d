package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
)

const keyPrefix = "chat:response:"

// RedisStore - ответы чата в Redis, срок жизни задаётся TTL ключа
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ repository.ChatRepository = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Set(ctx context.Context, resp domain.ChatResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal chat response: %w", err)
	}
	if err := s.client.Set(ctx, key(resp.SessionID), data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to store chat response",
			zap.String("session_id", resp.SessionID),
			zap.Error(err))
		return fmt.Errorf("chat set error: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*domain.ChatResponse, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to get chat response",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, fmt.Errorf("chat get error: %w", err)
	}

	var resp domain.ChatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal chat response: %w", err)
	}
	return &resp, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Del(ctx, key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("chat delete error: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Has(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("chat exists error: %w", err)
	}
	return n > 0, nil
}
