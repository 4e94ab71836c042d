package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/config"
	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/metrics"
)

const (
	hookChat     = "chat"
	hookReport   = "report"
	hookRegister = "register"
	hookLogin    = "login"

	maxBodyBytes = 1 << 20
)

// ErrNotConfigured - URL вебхука не задан
var ErrNotConfigured = errors.New("n8n webhook url is not configured")

// UpstreamError - n8n ответил статусом вне 2xx
type UpstreamError struct {
	Hook       string
	StatusCode int
	// Message - поле message из тела ответа, если есть
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("n8n %s webhook: status %d: %s", e.Hook, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("n8n %s webhook: status %d", e.Hook, e.StatusCode)
}

// UpstreamMessage - сообщение n8n для пользователя
func (e *UpstreamError) UpstreamMessage() string {
	return e.Message
}

type Client struct {
	httpClient *http.Client
	cfg        config.N8NConfig
	logger     *zap.Logger
}

var _ repository.AutomationRepository = (*Client)(nil)

// NewClient создает клиент вебхуков n8n
func NewClient(cfg *config.N8NConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        *cfg,
		logger:     logger,
	}
}

type chatPayload struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	ChatInput string `json:"chatInput"`
	SentAt    string `json:"sentAt"`
}

// SendChatMessage отправляет сообщение ассистенту. Если n8n ответил сразу,
// возвращается извлечённый текст ответа, иначе пустая строка.
func (c *Client) SendChatMessage(ctx context.Context, msg domain.ChatMessage) (string, error) {
	body, err := c.post(ctx, hookChat, c.cfg.ChatWebhookURL, chatPayload{
		SessionID: msg.SessionID,
		Message:   msg.Message,
		ChatInput: msg.Message,
		SentAt:    msg.SentAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		return "", err
	}
	return ExtractReply(body), nil
}

// ForwardReport пересылает отчёт целиком
func (c *Client) ForwardReport(ctx context.Context, report *domain.Report) error {
	_, err := c.post(ctx, hookReport, c.cfg.ReportWebhookURL, report)
	return err
}

// Register пересылает заявку на регистрацию
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	_, err := c.post(ctx, hookRegister, c.cfg.RegisterWebhookURL, reg)
	return err
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login проверяет учётные данные через n8n и возвращает токен сессии
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.post(ctx, hookLogin, c.cfg.LoginWebhookURL, loginPayload{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	token := ExtractToken(body)
	if token == "" {
		c.logger.Warn("n8n login response without token", zap.String("email", email))
		return "", domain.ErrNoSessionToken
	}
	return token, nil
}

func (c *Client) post(ctx context.Context, hook, url string, payload interface{}) ([]byte, error) {
	if url == "" {
		return nil, ErrNotConfigured
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.N8NRequestsTotal.WithLabelValues(hook, "error").Inc()
		c.logger.Error("n8n webhook request failed",
			zap.String("hook", hook),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.N8NRequestsTotal.WithLabelValues(hook, "error").Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.N8NRequestsTotal.WithLabelValues(hook, "http_error").Inc()
		c.logger.Warn("n8n webhook returned error",
			zap.String("hook", hook),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(string(body), 512)))
		return nil, &UpstreamError{Hook: hook, StatusCode: resp.StatusCode, Message: extractField(body, "message")}
	}

	metrics.N8NRequestsTotal.WithLabelValues(hook, "ok").Inc()
	c.logger.Debug("n8n webhook call successful",
		zap.String("hook", hook),
		zap.Int("status_code", resp.StatusCode))

	return body, nil
}

// replyKeys - поля, в которых разные сценарии n8n возвращают текст ответа
var replyKeys = []string{"response", "output", "resultText"}

// ExtractReply достаёт текст ответа из тела n8n. Форма ответа не фиксирована:
// объект с полем response/output/resultText, массив таких объектов,
// JSON-строка или просто текст. Пустая строка - ответа нет.
func ExtractReply(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed)
	}
	return replyFrom(v)
}

// ReplyFromMap извлекает ответ из уже разобранного объекта (callback n8n)
func ReplyFromMap(m map[string]interface{}) string {
	return replyFrom(m)
}

func replyFrom(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]interface{}:
		for _, k := range replyKeys {
			if s, ok := val[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		// {"json": {...}} - формат элемента n8n
		if inner, ok := val["json"].(map[string]interface{}); ok {
			return replyFrom(inner)
		}
	case []interface{}:
		for _, item := range val {
			if s := replyFrom(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// ExtractToken ищет поле token в ответе: на верхнем уровне, в data,
// в обёртке json или в первом элементе массива
func ExtractToken(body []byte) string {
	var v interface{}
	if err := json.Unmarshal(bytes.TrimSpace(body), &v); err != nil {
		return ""
	}
	return tokenFrom(v)
}

func tokenFrom(v interface{}) string {
	switch val := v.(type) {
	case map[string]interface{}:
		if s, ok := val["token"].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		for _, k := range []string{"data", "json"} {
			if inner, ok := val[k].(map[string]interface{}); ok {
				if s := tokenFrom(inner); s != "" {
					return s
				}
			}
		}
	case []interface{}:
		if len(val) > 0 {
			return tokenFrom(val[0])
		}
	}
	return ""
}

func extractField(body []byte, key string) string {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// не режем посреди многобайтового символа
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
