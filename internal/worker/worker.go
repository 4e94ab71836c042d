package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker интерфейс для всех воркеров
type Worker interface {
	// Start запускает воркер и блокируется до остановки
	Start(ctx context.Context) error

	// Stop останавливает воркер
	Stop() error

	// Name возвращает имя воркера
	Name() string
}

// PeriodicWorker вызывает task раз в interval до остановки
type PeriodicWorker struct {
	*BaseWorker
	interval time.Duration
	task     func(ctx context.Context)
}

// NewPeriodicWorker создает PeriodicWorker
func NewPeriodicWorker(name string, interval time.Duration, task func(ctx context.Context), logger *zap.Logger) *PeriodicWorker {
	return &PeriodicWorker{
		BaseWorker: NewBaseWorker(name, "", logger),
		interval:   interval,
		task:       task,
	}
}

// Start запускает цикл
func (w *PeriodicWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting periodic worker", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.task(ctx)
		}
	}
}
