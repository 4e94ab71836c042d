package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/usecase/dto"
)

// ChatUseCase - ретрансляция чата ассистента в n8n и хранение ответов
type ChatUseCase struct {
	automation repository.AutomationRepository
	chatRepo   repository.ChatRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewChatUseCase - создание нового ChatUseCase
func NewChatUseCase(automation repository.AutomationRepository, chatRepo repository.ChatRepository, logger *zap.Logger) *ChatUseCase {
	return &ChatUseCase{
		automation: automation,
		chatRepo:   chatRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// SendMessage пересылает сообщение. Синхронный ответ n8n сохраняется как completed,
// иначе запись остаётся pending до callback.
func (uc *ChatUseCase) SendMessage(ctx context.Context, req dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errors.ErrValidationFailed.WithDetails(map[string]interface{}{
			"message": "required",
		})
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := uc.now()
	reply, err := uc.automation.SendChatMessage(ctx, domain.ChatMessage{
		SessionID: sessionID,
		Message:   message,
		SentAt:    now,
	})
	if err != nil {
		uc.logger.Warn("Chat message relay failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		uc.store(ctx, domain.ChatResponse{
			SessionID: sessionID,
			Response:  domain.DefaultChatErrorResponse,
			Timestamp: now,
			Status:    domain.ChatStatusError,
		})
		return nil, errors.ErrUpstream.WithDetails(map[string]interface{}{
			"sessionId": sessionID,
		})
	}

	resp := domain.ChatResponse{
		SessionID: sessionID,
		Response:  reply,
		Timestamp: now,
		Status:    domain.ChatStatusPending,
	}
	if reply != "" {
		resp.Status = domain.ChatStatusCompleted
	}
	if err := uc.chatRepo.Set(ctx, resp); err != nil {
		uc.logger.Error("Failed to store chat response", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.ErrCacheError
	}

	return &dto.ChatMessageResponse{
		SessionID: sessionID,
		Status:    resp.Status,
		Response:  reply,
	}, nil
}

func (uc *ChatUseCase) store(ctx context.Context, resp domain.ChatResponse) {
	if err := uc.chatRepo.Set(ctx, resp); err != nil {
		uc.logger.Error("Failed to store chat response",
			zap.String("session_id", resp.SessionID),
			zap.Error(err))
	}
}

// HandleWebhook сохраняет ответ, присланный n8n
func (uc *ChatUseCase) HandleWebhook(ctx context.Context, req dto.WebhookRequest) (*dto.WebhookResponse, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return nil, errors.ErrSessionIDRequired
	}

	status := domain.ChatStatusCompleted
	if req.Status != "" {
		status = domain.ChatStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			return nil, errors.ErrValidationFailed.WithDetails(map[string]interface{}{
				"status": "oneof=pending completed error",
			})
		}
	}

	reply := req.Reply()
	if reply == "" {
		if status != domain.ChatStatusError {
			return nil, errors.ErrResponseRequired
		}
		reply = domain.DefaultChatErrorResponse
	}

	if err := uc.chatRepo.Set(ctx, domain.ChatResponse{
		SessionID: sessionID,
		Response:  reply,
		Timestamp: uc.now(),
		Status:    status,
	}); err != nil {
		uc.logger.Error("Failed to store webhook response", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.ErrCacheError
	}

	uc.logger.Info("Chat response received",
		zap.String("session_id", sessionID),
		zap.String("status", string(status)))

	return &dto.WebhookResponse{
		Success:   true,
		Message:   "Réponse reçue avec succès",
		SessionID: sessionID,
	}, nil
}

// GetResponse возвращает сохранённый ответ сессии
func (uc *ChatUseCase) GetResponse(ctx context.Context, sessionID string) (*domain.ChatResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errors.ErrSessionIDRequired
	}

	resp, err := uc.chatRepo.Get(ctx, sessionID)
	if err != nil {
		uc.logger.Error("Failed to read chat response", zap.String("session_id", sessionID), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if resp == nil {
		return nil, errors.ErrChatResponseNotFound
	}
	return resp, nil
}
