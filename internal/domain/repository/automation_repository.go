package repository

import (
	"context"

	"github.com/doleances-service/internal/domain"
)

// AutomationRepository - исходящие вебхуки n8n
type AutomationRepository interface {
	// SendChatMessage отправляет сообщение; reply пустой, если n8n ответит позже через callback
	SendChatMessage(ctx context.Context, msg domain.ChatMessage) (reply string, err error)

	// ForwardReport пересылает отчёт в n8n
	ForwardReport(ctx context.Context, report *domain.Report) error

	// Register пересылает заявку на регистрацию
	Register(ctx context.Context, reg domain.Registration) error

	// Login проверяет учётные данные и возвращает токен сессии
	Login(ctx context.Context, email, password string) (token string, err error)
}
