package locationsearch

import (
	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/pkg/utils"
)

// MaxResults - предельная длина объединённой выдачи
const MaxResults = 15

// Merge объединяет локальные совпадения и места геокодера: сначала локальные,
// затем внешние. Повторы отбрасываются (единицы по уровню и коду, места по id
// и по отображаемому имени), выдача обрезается до limit (MaxResults при limit <= 0
// или limit > MaxResults).
func Merge(local []SearchResult, places []domain.GeocodeResult, limit int) []SearchResult {
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	merged := make([]SearchResult, 0, min(limit, len(local)+len(places)))
	seen := make(map[string]struct{}, len(local)+len(places))
	seenNames := make(map[string]struct{}, len(places))

	add := func(r SearchResult) bool {
		if len(merged) >= limit {
			return false
		}
		k := r.key()
		if _, dup := seen[k]; dup {
			return true
		}
		if r.Place != nil {
			name := utils.Fold(r.Place.DisplayName)
			if _, dup := seenNames[name]; dup && name != "" {
				return true
			}
			seenNames[name] = struct{}{}
		}
		seen[k] = struct{}{}
		merged = append(merged, r)
		return true
	}

	for _, r := range local {
		if !add(r) {
			return merged
		}
	}
	for _, p := range places {
		if !add(NewPlaceResult(p)) {
			return merged
		}
	}
	return merged
}
