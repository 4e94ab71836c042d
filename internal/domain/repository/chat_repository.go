package repository

import (
	"context"

	"github.com/doleances-service/internal/domain"
)

// ChatRepository хранит ответы n8n по sessionId
type ChatRepository interface {
	Set(ctx context.Context, resp domain.ChatResponse) error

	// Get возвращает (nil, nil), если ответа нет
	Get(ctx context.Context, sessionID string) (*domain.ChatResponse, error)

	Delete(ctx context.Context, sessionID string) (bool, error)

	Has(ctx context.Context, sessionID string) (bool, error)
}
