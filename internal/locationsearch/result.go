package locationsearch

import (
	"strings"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/pkg/utils"
)

// ResultKind - тип строки в выдаче поиска
type ResultKind string

const (
	KindRegion   ResultKind = "region"
	KindDistrict ResultKind = "district"
	KindCommune  ResultKind = "commune"
	KindPlace    ResultKind = "place"
)

// SearchResult - строка выдачи: административная единица или место геокодера.
// Заполнено ровно одно из полей Area и Place.
type SearchResult struct {
	Kind     ResultKind            `json:"kind"`
	Label    string                `json:"label"`
	Subtitle string                `json:"subtitle,omitempty"`
	Area     *domain.AdminArea     `json:"area,omitempty"`
	Place    *domain.GeocodeResult `json:"place,omitempty"`
}

func kindOf(level domain.AdminLevel) ResultKind {
	switch level {
	case domain.LevelRegion:
		return KindRegion
	case domain.LevelDistrict:
		return KindDistrict
	default:
		return KindCommune
	}
}

// Level возвращает уровень для административных результатов
func (k ResultKind) Level() (domain.AdminLevel, bool) {
	switch k {
	case KindRegion:
		return domain.LevelRegion, true
	case KindDistrict:
		return domain.LevelDistrict, true
	case KindCommune:
		return domain.LevelCommune, true
	}
	return "", false
}

// NewAreaResult строит строку выдачи для единицы уровня level.
// Подзаголовок: "Commune · Antananarivo Renivohitra, Analamanga".
func NewAreaResult(level domain.AdminLevel, area domain.AdminArea) SearchResult {
	a := area
	subtitle := level.Label()
	if parents := a.ParentNames(); len(parents) > 0 {
		subtitle += " · " + strings.Join(parents, ", ")
	}
	return SearchResult{
		Kind:     kindOf(level),
		Label:    a.Name,
		Subtitle: subtitle,
		Area:     &a,
	}
}

// NewPlaceResult строит строку выдачи для места геокодера
func NewPlaceResult(place domain.GeocodeResult) SearchResult {
	p := place
	subtitle := "Lieu"
	if p.Type != "" {
		subtitle += " · " + p.Type
	}
	return SearchResult{
		Kind:     KindPlace,
		Label:    p.DisplayName,
		Subtitle: subtitle,
		Place:    &p,
	}
}

// Location преобразует результат в выбранное место
func (r SearchResult) Location() domain.SelectedLocation {
	if r.Place != nil {
		return r.Place.ToSelectedLocation()
	}
	if r.Area == nil {
		return domain.SelectedLocation{Name: r.Label, DisplayName: r.Label}
	}

	a := r.Area
	parts := []string{a.Name}
	for _, p := range a.ParentNames() {
		if p != a.Name {
			parts = append(parts, p)
		}
	}
	loc := domain.SelectedLocation{
		Name:        a.Name,
		DisplayName: strings.Join(parts, ", "),
	}
	if a.Lat != nil && a.Lon != nil {
		loc.Lat = utils.FormatCoordinate(*a.Lat)
		loc.Lon = utils.FormatCoordinate(*a.Lon)
	}

	switch r.Kind {
	case KindRegion:
		loc.Region = a.Name
	case KindDistrict:
		loc.City = a.Name
		loc.Region = a.ParentName
	case KindCommune:
		loc.City = a.Name
		loc.Commune = a.Name
		loc.Region = a.RegionName
	}
	return loc
}

// key - ключ дедупликации: уровень+код для единиц, id для мест
func (r SearchResult) key() string {
	if r.Place != nil {
		return "place:" + formatID(r.Place.ID)
	}
	if r.Area != nil {
		return string(r.Kind) + ":" + r.Area.Code
	}
	return string(r.Kind) + ":" + r.Label
}
