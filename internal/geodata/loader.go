// Package geodata читает административные границы Мадагаскара из GeoJSON
// (regions.geojson, districts.geojson, communes.geojson, свойства ADMx_PCODE / ADMx_EN).
package geodata

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/paulmach/orb/geojson"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/pkg/utils"
)

type levelSpec struct {
	file          string
	codeKey       string
	nameKey       string
	parentNameKey string
	parentCodeKey string
	regionNameKey string
}

var levelSpecs = map[domain.AdminLevel]levelSpec{
	domain.LevelRegion: {
		file:    "regions.geojson",
		codeKey: "ADM1_PCODE",
		nameKey: "ADM1_EN",
	},
	domain.LevelDistrict: {
		file:          "districts.geojson",
		codeKey:       "ADM2_PCODE",
		nameKey:       "ADM2_EN",
		parentNameKey: "ADM1_EN",
		parentCodeKey: "ADM1_PCODE",
	},
	domain.LevelCommune: {
		file:          "communes.geojson",
		codeKey:       "ADM3_PCODE",
		nameKey:       "ADM3_EN",
		parentNameKey: "ADM2_EN",
		parentCodeKey: "ADM2_PCODE",
		regionNameKey: "ADM1_EN",
	},
}

// FileName возвращает имя GeoJSON-файла уровня
func FileName(level domain.AdminLevel) (string, error) {
	layout, ok := levelSpecs[level]
	if !ok {
		return "", fmt.Errorf("unknown admin level %q", level)
	}
	return layout.file, nil
}

// LoadFile читает файл уровня из каталога dir
func LoadFile(dir string, level domain.AdminLevel) ([]domain.AdminArea, error) {
	name, err := FileName(level)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	areas, err := ParseAreas(raw, level)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return areas, nil
}

// ParseAreas извлекает список единиц из FeatureCollection.
// Фичи без кода или названия пропускаются, дубликаты по коду отбрасываются,
// результат отсортирован по названию.
func ParseAreas(raw []byte, level domain.AdminLevel) ([]domain.AdminArea, error) {
	layout, ok := levelSpecs[level]
	if !ok {
		return nil, fmt.Errorf("unknown admin level %q", level)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(fc.Features))
	areas := make([]domain.AdminArea, 0, len(fc.Features))

	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		code := f.Properties.MustString(layout.codeKey, "")
		name := f.Properties.MustString(layout.nameKey, "")
		if code == "" || name == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		area := domain.AdminArea{Code: code, Name: name}
		if layout.parentNameKey != "" {
			area.ParentName = f.Properties.MustString(layout.parentNameKey, "")
			area.ParentCode = f.Properties.MustString(layout.parentCodeKey, "")
		}
		if layout.regionNameKey != "" {
			area.RegionName = f.Properties.MustString(layout.regionNameKey, "")
		}

		if f.Geometry != nil {
			bound := f.Geometry.Bound()
			if !bound.IsEmpty() && !bound.IsZero() {
				center := bound.Center()
				lat, lon := center.Lat(), center.Lon()
				if utils.ValidateCoordinates(lat, lon) {
					area.Lat, area.Lon = &lat, &lon
				}
			}
		}

		areas = append(areas, area)
	}

	SortByName(areas)
	return areas, nil
}

// SortByName сортирует единицы по названию (французская сортировка)
func SortByName(areas []domain.AdminArea) {
	col := utils.NewCollator()
	sort.SliceStable(areas, func(i, j int) bool {
		return col.CompareString(areas[i].Name, areas[j].Name) < 0
	})
}
