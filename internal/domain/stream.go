package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamReportSubmitted = "stream:doleance:submitted"
	StreamReportFailed    = "stream:doleance:failed"
)

// ReportSubmittedEvent - событие о новом отчёте для пересылки в n8n
type ReportSubmittedEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	Report    *Report   `json:"report"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportFailedEvent - отчёт не удалось переслать после всех попыток
type ReportFailedEvent struct {
	EventID  uuid.UUID `json:"event_id"`
	ReportID uuid.UUID `json:"report_id"`
	Attempts int       `json:"attempts"`
	Error    string    `json:"error"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
