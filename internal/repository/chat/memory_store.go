package chat

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
)

// MemoryStore - ответы чата в памяти процесса. Старые записи удаляет Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.ChatResponse
	logger  *zap.Logger
}

var _ repository.ChatRepository = (*MemoryStore)(nil)

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]domain.ChatResponse),
		logger:  logger,
	}
}

func (s *MemoryStore) Set(ctx context.Context, resp domain.ChatResponse) error {
	s.mu.Lock()
	s.entries[resp.SessionID] = resp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*domain.ChatResponse, error) {
	s.mu.RLock()
	resp, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &resp, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[sessionID]; !ok {
		return false, nil
	}
	delete(s.entries, sessionID)
	return true, nil
}

func (s *MemoryStore) Has(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[sessionID]
	return ok, nil
}

// Len - число записей
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep удаляет записи с Timestamp раньше olderThan и возвращает их число
func (s *MemoryStore) Sweep(olderThan time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, resp := range s.entries {
		if resp.Timestamp.Before(olderThan) {
			delete(s.entries, id)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Debug("Chat responses swept",
			zap.Int("removed", removed),
			zap.Int("remaining", len(s.entries)))
	}
	return removed
}
