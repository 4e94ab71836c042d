package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	apperrors "github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/repository/chat"
	"github.com/doleances-service/internal/usecase"
	"github.com/doleances-service/internal/usecase/dto"
)

func TestChatUseCase_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("synchronous reply is stored as completed", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		store := chat.NewMemoryStore(zap.NewNop())
		automation.On("SendChatMessage", ctx, mock.MatchedBy(func(m domain.ChatMessage) bool {
			return m.SessionID == "s-1" && m.Message == "Bonjour"
		})).Return("Salama!", nil)

		uc := usecase.NewChatUseCase(automation, store, zap.NewNop())
		resp, err := uc.SendMessage(ctx, dto.ChatMessageRequest{SessionID: "s-1", Message: " Bonjour "})

		require.NoError(t, err)
		assert.Equal(t, domain.ChatStatusCompleted, resp.Status)
		assert.Equal(t, "Salama!", resp.Response)

		stored, err := uc.GetResponse(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, "Salama!", stored.Response)
		assert.Equal(t, domain.ChatStatusCompleted, stored.Status)
	})

	t.Run("no reply leaves the session pending with a generated id", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		store := chat.NewMemoryStore(zap.NewNop())
		automation.On("SendChatMessage", ctx, mock.Anything).Return("", nil)

		uc := usecase.NewChatUseCase(automation, store, zap.NewNop())
		resp, err := uc.SendMessage(ctx, dto.ChatMessageRequest{Message: "Bonjour"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.SessionID)
		assert.Equal(t, domain.ChatStatusPending, resp.Status)

		stored, err := uc.GetResponse(ctx, resp.SessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.ChatStatusPending, stored.Status)
	})

	t.Run("upstream failure stores an error entry", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		store := chat.NewMemoryStore(zap.NewNop())
		automation.On("SendChatMessage", ctx, mock.Anything).Return("", errors.New("timeout"))

		uc := usecase.NewChatUseCase(automation, store, zap.NewNop())
		_, err := uc.SendMessage(ctx, dto.ChatMessageRequest{SessionID: "s-2", Message: "Bonjour"})

		assert.ErrorIs(t, err, apperrors.ErrUpstream)
		stored, getErr := uc.GetResponse(ctx, "s-2")
		require.NoError(t, getErr)
		assert.Equal(t, domain.ChatStatusError, stored.Status)
		assert.Equal(t, domain.DefaultChatErrorResponse, stored.Response)
	})

	t.Run("empty message", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		uc := usecase.NewChatUseCase(automation, chat.NewMemoryStore(zap.NewNop()), zap.NewNop())

		_, err := uc.SendMessage(ctx, dto.ChatMessageRequest{Message: "  "})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		automation.AssertNotCalled(t, "SendChatMessage", mock.Anything, mock.Anything)
	})
}

func TestChatUseCase_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewChatUseCase(&MockAutomationRepository{}, chat.NewMemoryStore(zap.NewNop()), zap.NewNop())

	tests := []struct {
		name       string
		req        dto.WebhookRequest
		wantErr    error
		wantStatus domain.ChatStatus
		wantReply  string
	}{
		{
			name:       "response defaults to completed",
			req:        dto.WebhookRequest{SessionID: "a", Response: "Voici la réponse"},
			wantStatus: domain.ChatStatusCompleted,
			wantReply:  "Voici la réponse",
		},
		{
			name:       "output field accepted",
			req:        dto.WebhookRequest{SessionID: "b", Output: "Depuis output"},
			wantStatus: domain.ChatStatusCompleted,
			wantReply:  "Depuis output",
		},
		{
			name:       "error without response",
			req:        dto.WebhookRequest{SessionID: "c", Status: "error"},
			wantStatus: domain.ChatStatusError,
			wantReply:  domain.DefaultChatErrorResponse,
		},
		{
			name:    "missing session id",
			req:     dto.WebhookRequest{Response: "x"},
			wantErr: apperrors.ErrSessionIDRequired,
		},
		{
			name:    "missing response",
			req:     dto.WebhookRequest{SessionID: "d"},
			wantErr: apperrors.ErrResponseRequired,
		},
		{
			name:    "unknown status",
			req:     dto.WebhookRequest{SessionID: "e", Response: "x", Status: "done"},
			wantErr: apperrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.HandleWebhook(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.req.SessionID, resp.SessionID)

			stored, err := uc.GetResponse(ctx, tt.req.SessionID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.Equal(t, tt.wantReply, stored.Response)
		})
	}
}

func TestChatUseCase_GetResponse(t *testing.T) {
	uc := usecase.NewChatUseCase(&MockAutomationRepository{}, chat.NewMemoryStore(zap.NewNop()), zap.NewNop())

	_, err := uc.GetResponse(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrSessionIDRequired)

	_, err = uc.GetResponse(context.Background(), "unknown")
	assert.ErrorIs(t, err, apperrors.ErrChatResponseNotFound)
}
