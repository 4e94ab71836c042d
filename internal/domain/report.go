package domain

import (
	"errors"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report - жалоба (doléance), отправленная через форму
type Report struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SearchQuery string    `json:"searchQuery" db:"search_query"`
	FilterValue string    `json:"filterValue" db:"filter_value"`
	FilterLabel string    `json:"filterLabel" db:"filter_label"`

	LocationName        string `json:"locationName" db:"location_name"`
	LocationCity        string `json:"locationCity" db:"location_city"`
	LocationRegion      string `json:"locationRegion" db:"location_region"`
	LocationCommune     string `json:"locationCommune" db:"location_commune"`
	LocationLat         string `json:"locationLat" db:"location_lat"`
	LocationLon         string `json:"locationLon" db:"location_lon"`
	LocationDisplayName string `json:"locationDisplayName" db:"location_display_name"`

	ContentHTML string `json:"contentHtml" db:"content_html"`
	ContentText string `json:"contentText" db:"content_text"`

	AttachmentName *string `json:"attachmentName,omitempty" db:"attachment_name"`
	AttachmentType *string `json:"attachmentType,omitempty" db:"attachment_type"`
	AttachmentSize *int64  `json:"attachmentSize,omitempty" db:"attachment_size"`
	AttachmentURL  *string `json:"attachmentUrl,omitempty" db:"attachment_url"`

	SubmittedBy *string   `json:"submittedBy,omitempty" db:"submitted_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// SetLocation копирует выбранное место в плоские колонки отчёта
func (r *Report) SetLocation(l SelectedLocation) {
	r.LocationName = l.Name
	r.LocationCity = l.City
	r.LocationRegion = l.Region
	r.LocationCommune = l.Commune
	r.LocationLat = l.Lat
	r.LocationLon = l.Lon
	r.LocationDisplayName = l.DisplayName
}

// Location собирает SelectedLocation обратно
func (r *Report) Location() SelectedLocation {
	return SelectedLocation{
		Name:        r.LocationName,
		City:        r.LocationCity,
		Region:      r.LocationRegion,
		Commune:     r.LocationCommune,
		Lat:         r.LocationLat,
		Lon:         r.LocationLon,
		DisplayName: r.LocationDisplayName,
	}
}

// Attachment - загружаемый файл отчёта
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
}

// Registration - заявка на регистрацию, пересылаемая в n8n
type Registration struct {
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password"`
}

// ErrNoSessionToken - сервис входа ответил успехом, но не выдал токен
var ErrNoSessionToken = errors.New("login response has no session token")

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// AttachmentKey - ключ объекта вложения: reports/<id>/<безопасное имя файла>
func AttachmentKey(reportID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = strings.Trim(unsafeFileChars.ReplaceAllString(name, "_"), "_")
	if name == "" || name == "." {
		name = "attachment.pdf"
	}
	return path.Join("reports", reportID, name)
}
