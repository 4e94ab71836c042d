package dto

import (
	"time"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/locationsearch"
)

// LocationSearchResponse - выдача серверного поиска места
type LocationSearchResponse struct {
	Query   string           `json:"query"`
	Results []LocationResult `json:"results"`
	Total   int              `json:"total"`
}

// LocationResult - один результат поиска с готовым SelectedLocation
type LocationResult struct {
	Kind     string                  `json:"kind"`
	Label    string                  `json:"label"`
	Subtitle string                  `json:"subtitle,omitempty"`
	Code     string                  `json:"code,omitempty"`
	PlaceID  int64                   `json:"placeId,omitempty"`
	Location domain.SelectedLocation `json:"location"`
}

// ConvertSearchResults переводит результаты поиска в DTO
func ConvertSearchResults(results []locationsearch.SearchResult) []LocationResult {
	out := make([]LocationResult, 0, len(results))
	for _, r := range results {
		item := LocationResult{
			Kind:     string(r.Kind),
			Label:    r.Label,
			Subtitle: r.Subtitle,
			Location: r.Location(),
		}
		if r.Area != nil {
			item.Code = r.Area.Code
		}
		if r.Place != nil {
			item.PlaceID = r.Place.ID
		}
		out = append(out, item)
	}
	return out
}

// CreateReportResponse - результат отправки отчёта
type CreateReportResponse struct {
	ID        string    `json:"id"`
	PDFURL    *string   `json:"pdfUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportCountResponse - количество отчётов
type ReportCountResponse struct {
	Total int64 `json:"total"`
}

// ChatMessageResponse - результат отправки сообщения
type ChatMessageResponse struct {
	SessionID string            `json:"sessionId"`
	Status    domain.ChatStatus `json:"status"`
	Response  string            `json:"response,omitempty"`
}

// WebhookResponse - подтверждение callback n8n
type WebhookResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// RegisterResponse - заявка принята n8n
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse - состояние сервиса и зависимостей
type HealthResponse struct {
	Status       string            `json:"status"`
	Time         time.Time         `json:"time"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
