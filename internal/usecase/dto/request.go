package dto

import (
	"io"
	"strings"

	"github.com/doleances-service/internal/domain"
)

// GeocodeRequest - параметры прокси /api/nominatim/search
type GeocodeRequest struct {
	Query        string `query:"q"`
	CountryCodes string `query:"countryCodes"`
	Limit        int    `query:"limit"`
}

// LocationSearchRequest - серверный поиск места
type LocationSearchRequest struct {
	Query string `query:"q"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// SearchFilter - поле поиска и выбранный фильтр формы
type SearchFilter struct {
	Query  string              `json:"query"`
	Filter domain.FilterOption `json:"filter"`
}

// EditorContent - содержимое редактора
type EditorContent struct {
	HTML      string `json:"html"`
	PlainText string `json:"plainText"`
}

// CreateReportRequest - отправка формы doléance
type CreateReportRequest struct {
	SearchFilter  SearchFilter             `json:"searchFilter"`
	Location      *domain.SelectedLocation `json:"location,omitempty"`
	EditorContent EditorContent            `json:"editorContent"`
	SubmittedBy   *string                  `json:"submittedBy,omitempty"`
}

// AttachmentUpload - файл из multipart-запроса
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ChatMessageRequest - сообщение пользователя ассистенту
type ChatMessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// WebhookRequest - callback n8n с ответом ассистента
type WebhookRequest struct {
	SessionID  string `json:"sessionId"`
	Response   string `json:"response"`
	Output     string `json:"output"`
	ResultText string `json:"resultText"`
	Status     string `json:"status"`
}

// Reply - текст ответа из первого заполненного поля
func (r WebhookRequest) Reply() string {
	for _, v := range []string{r.Response, r.Output, r.ResultText} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// RegisterRequest - заявка на регистрацию
type RegisterRequest struct {
	Nom             string `json:"nom" validate:"required,min=2"`
	Prenom          string `json:"prenom" validate:"required,min=2"`
	Role            string `json:"role" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Telephone       string `json:"telephone" validate:"required,mgphone"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Normalize убирает крайние пробелы у текстовых полей
func (r *RegisterRequest) Normalize() {
	r.Nom = strings.TrimSpace(r.Nom)
	r.Prenom = strings.TrimSpace(r.Prenom)
	r.Role = strings.TrimSpace(r.Role)
	r.Email = strings.TrimSpace(r.Email)
	r.Telephone = strings.TrimSpace(r.Telephone)
}

// LoginRequest - вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize убирает крайние пробелы у email
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}
