package domain

import "fmt"

// AdminLevel - уровень административного деления Мадагаскара
type AdminLevel string

const (
	LevelRegion   AdminLevel = "region"
	LevelDistrict AdminLevel = "district"
	LevelCommune  AdminLevel = "commune"
)

// AdminLevels - все уровни в порядке выдачи результатов поиска
var AdminLevels = []AdminLevel{LevelRegion, LevelDistrict, LevelCommune}

// ParseAdminLevel принимает как единственное, так и множественное число (regions, communes)
func ParseAdminLevel(s string) (AdminLevel, error) {
	switch s {
	case "region", "regions":
		return LevelRegion, nil
	case "district", "districts":
		return LevelDistrict, nil
	case "commune", "communes":
		return LevelCommune, nil
	}
	return "", fmt.Errorf("unknown admin level %q", s)
}

// Label - подпись уровня для интерфейса
func (l AdminLevel) Label() string {
	switch l {
	case LevelRegion:
		return "Région"
	case LevelDistrict:
		return "District"
	case LevelCommune:
		return "Commune"
	}
	return string(l)
}

// AdminArea - регион, район или коммуна. После загрузки не изменяется.
//
// ParentName: для района - регион, для коммуны - район.
// RegionName заполнен только у коммун.
type AdminArea struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	ParentName string   `json:"parentName,omitempty"`
	ParentCode string   `json:"parentCode,omitempty"`
	RegionName string   `json:"regionName,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
}

// ParentNames возвращает непустые названия вышестоящих единиц
func (a AdminArea) ParentNames() []string {
	names := make([]string, 0, 2)
	if a.ParentName != "" {
		names = append(names, a.ParentName)
	}
	if a.RegionName != "" && a.RegionName != a.ParentName {
		names = append(names, a.RegionName)
	}
	return names
}

// FilterOption - элемент выпадающего фильтра (commune, region, zone, district)
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DefaultFilter - фильтр по умолчанию в форме
var DefaultFilter = FilterOption{Value: "commune", Label: "Commune"}

// Zones - статические зоны вмешательства
var Zones = []FilterOption{
	{Value: "zone-1", Label: "Zone Nord"},
	{Value: "zone-2", Label: "Zone Sud"},
	{Value: "zone-3", Label: "Zone Est"},
	{Value: "zone-4", Label: "Zone Ouest"},
	{Value: "zone-5", Label: "Zone Centre"},
}
