package domain

import "time"

// ChatStatus - статус ответа ассистента
type ChatStatus string

const (
	ChatStatusPending   ChatStatus = "pending"
	ChatStatusCompleted ChatStatus = "completed"
	ChatStatusError     ChatStatus = "error"
)

// Valid - статус из известного набора
func (s ChatStatus) Valid() bool {
	switch s {
	case ChatStatusPending, ChatStatusCompleted, ChatStatusError:
		return true
	}
	return false
}

// ChatResponse - ответ n8n для сессии чата
type ChatResponse struct {
	SessionID string     `json:"sessionId"`
	Response  string     `json:"response"`
	Timestamp time.Time  `json:"timestamp"`
	Status    ChatStatus `json:"status"`
}

// ChatMessage - сообщение пользователя, отправляемое в n8n
type ChatMessage struct {
	SessionID string    `json:"sessionId"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sentAt"`
}

// DefaultChatErrorResponse - текст, если n8n сообщил об ошибке без ответа
const DefaultChatErrorResponse = "Erreur lors du traitement"
