package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/metrics"
	"github.com/doleances-service/internal/worker"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second

	// pendingMinIdle - через сколько неподтверждённое сообщение считается брошенным
	pendingMinIdle = time.Minute
	// claimInterval - как часто забирать брошенные сообщения из pending
	claimInterval = 30 * time.Second
)

// errForwardAborted - пересылка прервана остановкой воркера, сообщение не подтверждается
var errForwardAborted = errors.New("report forward aborted")

// ForwardWorker пересылает новые отчёты в n8n
type ForwardWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	automation   repository.AutomationRepository
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
	claimMinIdle time.Duration
	lastClaim    time.Time
}

// NewForwardWorker создает новый ForwardWorker.
// retryDelay растёт линейно с номером попытки.
func NewForwardWorker(
	streamRepo repository.StreamRepository,
	automation repository.AutomationRepository,
	consumerGroup string,
	maxRetries int,
	retryDelay time.Duration,
	logger *zap.Logger,
) *ForwardWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &ForwardWorker{
		BaseWorker:   worker.NewBaseWorker("report-forward", consumerGroup, logger),
		streamRepo:   streamRepo,
		automation:   automation,
		consumerName: consumerName,
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
		claimMinIdle: pendingMinIdle,
	}
}

// Start запускает воркер
func (w *ForwardWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ReportForwardWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamReportSubmitted, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			if time.Since(w.lastClaim) >= claimInterval {
				if err := w.processPending(ctx); err != nil {
					logger.Error("Failed to process pending messages", zap.Error(err))
				}
				w.lastClaim = time.Now()
			}

			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Sleep(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// processPending забирает сообщения, брошенные прежними потребителями
// (остановка посреди пересылки, падение процесса), и пересылает их
func (w *ForwardWorker) processPending(ctx context.Context) error {
	messages, err := w.streamRepo.ClaimPending(
		ctx,
		domain.StreamReportSubmitted,
		w.ConsumerGroup(),
		w.consumerName,
		w.claimMinIdle,
		maxBatchSize,
	)
	if err != nil {
		return fmt.Errorf("failed to claim pending: %w", err)
	}
	if len(messages) > 0 {
		w.Logger().Info("Reprocessing pending messages", zap.Int("message_count", len(messages)))
		w.handle(ctx, messages)
	}
	return nil
}

// processBatch читает и пересылает пачку отчётов, возвращает число прочитанных сообщений
func (w *ForwardWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamReportSubmitted,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	w.Logger().Info("Processing batch", zap.Int("message_count", len(messages)))
	w.handle(ctx, messages)

	return len(messages), nil
}

// handle пересылает сообщения и подтверждает обработанные.
// При остановке воркера текущее и оставшиеся сообщения остаются в pending
// и позже забираются через processPending.
func (w *ForwardWorker) handle(ctx context.Context, messages []domain.StreamMessage) {
	logger := w.Logger()

	handled := make([]string, 0, len(messages))
	forwarded, failed := 0, 0

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamReportSubmitted, w.ConsumerGroup(), msg.ID)
			continue
		}

		attempts, err := w.forward(ctx, event.Report)
		if errors.Is(err, errForwardAborted) || ctx.Err() != nil {
			logger.Info("Forwarding interrupted, leaving message pending",
				zap.String("message_id", msg.ID))
			break
		}
		if err != nil {
			failed++
			metrics.ReportForwardsTotal.WithLabelValues("failed").Inc()
			w.publishFailed(ctx, event, attempts, err)
		} else {
			forwarded++
			metrics.ReportForwardsTotal.WithLabelValues("ok").Inc()
		}
		handled = append(handled, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamReportSubmitted, w.ConsumerGroup(), handled); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("forwarded", forwarded),
		zap.Int("failed", failed))
}

// forward делает до maxRetries попыток, возвращает число сделанных попыток
func (w *ForwardWorker) forward(ctx context.Context, report *domain.Report) (int, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		lastErr = w.automation.ForwardReport(ctx, report)
		if lastErr == nil {
			return attempt, nil
		}

		w.Logger().Warn("Report forward attempt failed",
			zap.String("report_id", report.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		if attempt < w.maxRetries && !w.Sleep(ctx, w.retryDelay*time.Duration(attempt)) {
			return attempt, errForwardAborted
		}
	}
	return w.maxRetries, lastErr
}

func (w *ForwardWorker) publishFailed(ctx context.Context, event *domain.ReportSubmittedEvent, attempts int, cause error) {
	failed := domain.ReportFailedEvent{
		EventID:  uuid.New(),
		ReportID: event.Report.ID,
		Attempts: attempts,
		Error:    cause.Error(),
	}

	w.Logger().Error("Report forward failed after retries",
		zap.String("report_id", event.Report.ID.String()),
		zap.Int("attempts", attempts),
		zap.Error(cause))

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamReportFailed, failed); err != nil {
		w.Logger().Error("Failed to publish failed event",
			zap.String("report_id", event.Report.ID.String()),
			zap.Error(err))
	}
}

// parseMessage парсит сообщение из стрима в ReportSubmittedEvent
func parseMessage(msg domain.StreamMessage) (*domain.ReportSubmittedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.ReportSubmittedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Report == nil {
		return nil, fmt.Errorf("event %s has no report", event.EventID)
	}

	return &event, nil
}
