package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockAutomationRepository is a mock of AutomationRepository
type MockAutomationRepository struct {
	mock.Mock
}

func (m *MockAutomationRepository) SendChatMessage(ctx context.Context, msg domain.ChatMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *MockAutomationRepository) ForwardReport(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockAutomationRepository) Register(ctx context.Context, reg domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockAutomationRepository) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func eventMessage(t *testing.T, id string, report *domain.Report) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(domain.ReportSubmittedEvent{
		EventID:   uuid.New(),
		Report:    report,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func newTestWorker(stream *MockStreamRepository, automation *MockAutomationRepository) *ForwardWorker {
	return NewForwardWorker(stream, automation, "test-group", 3, time.Millisecond, zap.NewNop())
}

func TestForwardWorker_Name(t *testing.T) {
	w := newTestWorker(&MockStreamRepository{}, &MockAutomationRepository{})
	assert.Equal(t, "report-forward", w.Name())
	assert.Equal(t, "test-group", w.ConsumerGroup())
}

func TestForwardWorker_Stop(t *testing.T) {
	w := newTestWorker(&MockStreamRepository{}, &MockAutomationRepository{})

	// Stop should not error even if not started
	assert.NoError(t, w.Stop())
	// Calling stop multiple times should be safe
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestForwardWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards reports and acks them", func(t *testing.T) {
		stream := &MockStreamRepository{}
		automation := &MockAutomationRepository{}
		w := newTestWorker(stream, automation)

		r1 := &domain.Report{ID: uuid.New(), ContentText: "Route coupée"}
		r2 := &domain.Report{ID: uuid.New(), ContentText: "Pas d'eau"}

		stream.On("ConsumeBatch", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
			Return([]domain.StreamMessage{eventMessage(t, "1-0", r1), eventMessage(t, "2-0", r2)}, nil)
		automation.On("ForwardReport", ctx, mock.Anything).Return(nil).Twice()
		stream.On("AckMessages", ctx, domain.StreamReportSubmitted, "test-group", []string{"1-0", "2-0"}).Return(nil)

		processed, err := w.processBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, processed)
		stream.AssertExpectations(t)
		automation.AssertExpectations(t)
	})

	t.Run("malformed message is acked and skipped", func(t *testing.T) {
		stream := &MockStreamRepository{}
		automation := &MockAutomationRepository{}
		w := newTestWorker(stream, automation)

		stream.On("ConsumeBatch", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
			Return([]domain.StreamMessage{{ID: "1-0", Data: "{not json"}, {ID: "2-0", Data: ""}}, nil)
		stream.On("AckMessage", ctx, domain.StreamReportSubmitted, "test-group", "1-0").Return(nil)
		stream.On("AckMessage", ctx, domain.StreamReportSubmitted, "test-group", "2-0").Return(nil)
		stream.On("AckMessages", ctx, domain.StreamReportSubmitted, "test-group", []string{}).Return(nil)

		processed, err := w.processBatch(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, processed)
		automation.AssertNotCalled(t, "ForwardReport", mock.Anything, mock.Anything)
		stream.AssertExpectations(t)
	})

	t.Run("retries then publishes failure", func(t *testing.T) {
		stream := &MockStreamRepository{}
		automation := &MockAutomationRepository{}
		w := newTestWorker(stream, automation)

		report := &domain.Report{ID: uuid.New(), ContentText: "Coupure"}
		stream.On("ConsumeBatch", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
			Return([]domain.StreamMessage{eventMessage(t, "1-0", report)}, nil)
		automation.On("ForwardReport", ctx, mock.Anything).Return(errors.New("n8n report webhook: status 500")).Times(3)
		stream.On("PublishToStream", ctx, domain.StreamReportFailed, mock.MatchedBy(func(e domain.ReportFailedEvent) bool {
			return e.ReportID == report.ID && e.Attempts == 3 && e.Error != ""
		})).Return(nil)
		stream.On("AckMessages", ctx, domain.StreamReportSubmitted, "test-group", []string{"1-0"}).Return(nil)

		_, err := w.processBatch(ctx)

		require.NoError(t, err)
		automation.AssertNumberOfCalls(t, "ForwardReport", 3)
		stream.AssertExpectations(t)
	})

	t.Run("succeeds on second attempt", func(t *testing.T) {
		stream := &MockStreamRepository{}
		automation := &MockAutomationRepository{}
		w := newTestWorker(stream, automation)

		stream.On("ConsumeBatch", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
			Return([]domain.StreamMessage{eventMessage(t, "1-0", &domain.Report{ID: uuid.New()})}, nil)
		automation.On("ForwardReport", ctx, mock.Anything).Return(errors.New("timeout")).Once()
		automation.On("ForwardReport", ctx, mock.Anything).Return(nil).Once()
		stream.On("AckMessages", ctx, domain.StreamReportSubmitted, "test-group", []string{"1-0"}).Return(nil)

		_, err := w.processBatch(ctx)

		require.NoError(t, err)
		automation.AssertNumberOfCalls(t, "ForwardReport", 2)
		stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty queue", func(t *testing.T) {
		stream := &MockStreamRepository{}
		w := newTestWorker(stream, &MockAutomationRepository{})
		stream.On("ConsumeBatch", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
			Return([]domain.StreamMessage{}, nil)

		processed, err := w.processBatch(ctx)

		require.NoError(t, err)
		assert.Zero(t, processed)
		stream.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("consume error", func(t *testing.T) {
		stream := &MockStreamRepository{}
		w := newTestWorker(stream, &MockAutomationRepository{})
		stream.On("ConsumeBatch", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
			Return(nil, errors.New("redis down"))

		_, err := w.processBatch(ctx)
		assert.Error(t, err)
	})
}

// TestForwardWorker_ContextCancellation tests worker stops on context cancellation
func TestForwardWorker_ContextCancellation(t *testing.T) {
	stream := &MockStreamRepository{}
	w := newTestWorker(stream, &MockAutomationRepository{})

	ctx, cancel := context.WithCancel(context.Background())
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamReportSubmitted, "test-group").Return(nil)
	stream.On("ClaimPending", mock.Anything, domain.StreamReportSubmitted, "test-group", mock.Anything, pendingMinIdle, maxBatchSize).
		Return([]domain.StreamMessage{}, nil)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
		Return([]domain.StreamMessage{}, nil)

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	// брошенные сообщения забираются сразу при старте
	stream.AssertCalled(t, "ClaimPending", mock.Anything, domain.StreamReportSubmitted, "test-group", mock.Anything, pendingMinIdle, maxBatchSize)
}

func TestForwardWorker_CreateGroupFailure(t *testing.T) {
	stream := &MockStreamRepository{}
	w := newTestWorker(stream, &MockAutomationRepository{})
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamReportSubmitted, "test-group").Return(errors.New("WRONGTYPE"))

	err := w.Start(context.Background())
	assert.Error(t, err)
}

func TestForwardWorker_StopDuringRetryLeavesMessagePending(t *testing.T) {
	ctx := context.Background()
	stream := &MockStreamRepository{}
	automation := &MockAutomationRepository{}
	w := NewForwardWorker(stream, automation, "test-group", 3, time.Hour, zap.NewNop())

	stream.On("ConsumeBatch", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, maxBatchSize).
		Return([]domain.StreamMessage{
			eventMessage(t, "1-0", &domain.Report{ID: uuid.New()}),
			eventMessage(t, "2-0", &domain.Report{ID: uuid.New()}),
		}, nil)
	automation.On("ForwardReport", ctx, mock.Anything).Return(errors.New("timeout"))
	stream.On("AckMessages", ctx, domain.StreamReportSubmitted, "test-group", []string{}).Return(nil)

	// остановка до первой паузы между попытками
	require.NoError(t, w.Stop())

	_, err := w.processBatch(ctx)

	require.NoError(t, err)
	automation.AssertNumberOfCalls(t, "ForwardReport", 1)
	stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	stream.AssertExpectations(t)
}

func TestForwardWorker_ProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("claimed messages are forwarded and acked", func(t *testing.T) {
		stream := &MockStreamRepository{}
		automation := &MockAutomationRepository{}
		w := newTestWorker(stream, automation)

		report := &domain.Report{ID: uuid.New(), ContentText: "Route inondée"}
		stream.On("ClaimPending", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, pendingMinIdle, maxBatchSize).
			Return([]domain.StreamMessage{eventMessage(t, "7-0", report)}, nil)
		automation.On("ForwardReport", ctx, mock.MatchedBy(func(r *domain.Report) bool {
			return r.ID == report.ID
		})).Return(nil).Once()
		stream.On("AckMessages", ctx, domain.StreamReportSubmitted, "test-group", []string{"7-0"}).Return(nil)

		require.NoError(t, w.processPending(ctx))
		stream.AssertExpectations(t)
		automation.AssertExpectations(t)
	})

	t.Run("nothing pending", func(t *testing.T) {
		stream := &MockStreamRepository{}
		w := newTestWorker(stream, &MockAutomationRepository{})
		stream.On("ClaimPending", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, pendingMinIdle, maxBatchSize).
			Return([]domain.StreamMessage{}, nil)

		require.NoError(t, w.processPending(ctx))
		stream.AssertNotCalled(t, "AckMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("claim error", func(t *testing.T) {
		stream := &MockStreamRepository{}
		w := newTestWorker(stream, &MockAutomationRepository{})
		stream.On("ClaimPending", ctx, domain.StreamReportSubmitted, "test-group", mock.Anything, pendingMinIdle, maxBatchSize).
			Return(nil, errors.New("NOGROUP"))

		assert.Error(t, w.processPending(ctx))
	})
}
