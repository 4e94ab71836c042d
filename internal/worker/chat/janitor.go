package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/pkg/metrics"
	"github.com/doleances-service/internal/worker"
)

// Sweeper - хранилище ответов с очисткой по возрасту (chat.MemoryStore)
type Sweeper interface {
	Sweep(olderThan time.Time) int
}

// NewJanitorWorker удаляет ответы старше ttl раз в interval
func NewJanitorWorker(store Sweeper, ttl, interval time.Duration, logger *zap.Logger) *worker.PeriodicWorker {
	return worker.NewPeriodicWorker("chat-janitor", interval, func(ctx context.Context) {
		Sweep(store, ttl, time.Now(), logger)
	}, logger)
}

// Sweep выполняет одну очистку относительно момента now
func Sweep(store Sweeper, ttl time.Duration, now time.Time, logger *zap.Logger) int {
	removed := store.Sweep(now.Add(-ttl))
	if removed > 0 {
		metrics.ChatSessionsSweptTotal.Add(float64(removed))
		logger.Info("Expired chat responses removed", zap.Int("removed", removed))
	}
	return removed
}
