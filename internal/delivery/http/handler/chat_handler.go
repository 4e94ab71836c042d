package handler

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/pkg/utils"
	"github.com/doleances-service/internal/usecase"
	"github.com/doleances-service/internal/usecase/dto"
)

// ChatHandler - чат ассистента и callback n8n. Ответы без конверта {data}.
type ChatHandler struct {
	chatUC *usecase.ChatUseCase
	logger *zap.Logger
}

// NewChatHandler - создание нового ChatHandler
func NewChatHandler(chatUC *usecase.ChatUseCase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatUC: chatUC,
		logger: logger,
	}
}

// SendMessage godoc
// @Summary Сообщение ассистенту
// @Description Пересылает сообщение в n8n. sessionId создаётся, если не передан.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatMessageRequest true "Сообщение"
// @Success 200 {object} dto.ChatMessageResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/chat/message [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendPlainError(c, err, nil)
	}

	result, err := h.chatUC.SendMessage(c.UserContext(), req)
	if err != nil {
		return utils.SendPlainError(c, err, nil)
	}
	return c.JSON(result)
}

// Webhook godoc
// @Summary Callback n8n с ответом ассистента
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.WebhookRequest true "Ответ n8n"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/webhook/n8n [post]
func (h *ChatHandler) Webhook(c *fiber.Ctx) error {
	var req dto.WebhookRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendPlainError(c, err, nil)
	}

	result, err := h.chatUC.HandleWebhook(c.UserContext(), req)
	if err != nil {
		return utils.SendPlainError(c, err, nil)
	}
	return c.JSON(result)
}

// WebhookStatus godoc
// @Summary Сохранённый ответ сессии (проверка callback)
// @Tags Chat
// @Produce json
// @Param sessionId query string true "Идентификатор сессии"
// @Success 200 {object} domain.ChatResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/webhook/n8n [get]
func (h *ChatHandler) WebhookStatus(c *fiber.Ctx) error {
	resp, err := h.chatUC.GetResponse(c.UserContext(), c.Query("sessionId"))
	if err != nil {
		return utils.SendPlainError(c, err, nil)
	}
	return c.JSON(resp)
}

// Response godoc
// @Summary Ответ ассистента для опроса клиентом
// @Description 404 со status=pending, пока ответа нет
// @Tags Chat
// @Produce json
// @Param sessionId query string true "Идентификатор сессии"
// @Success 200 {object} domain.ChatResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/chat/response [get]
func (h *ChatHandler) Response(c *fiber.Ctx) error {
	resp, err := h.chatUC.GetResponse(c.UserContext(), c.Query("sessionId"))
	if stderrors.Is(err, errors.ErrChatResponseNotFound) {
		return utils.SendPlainError(c, err, fiber.Map{"status": domain.ChatStatusPending})
	}
	if err != nil {
		return utils.SendPlainError(c, err, nil)
	}
	return c.JSON(resp)
}
