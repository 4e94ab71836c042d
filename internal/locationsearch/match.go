package locationsearch

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/pkg/utils"
)

// MinQueryLength - запросы короче этого не ищутся вовсе
const MinQueryLength = 2

const (
	rankPrefix = iota
	rankSubstring
	rankParent
	noMatch
)

// TooShort - запрос после обрезки пробелов короче MinQueryLength
func TooShort(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength
}

func rankArea(level domain.AdminLevel, area domain.AdminArea, folded string) int {
	name := utils.Fold(area.Name)
	switch {
	case strings.HasPrefix(name, folded):
		return rankPrefix
	case strings.Contains(name, folded):
		return rankSubstring
	}

	if level == domain.LevelRegion {
		return noMatch
	}
	for _, parent := range area.ParentNames() {
		if strings.Contains(utils.Fold(parent), folded) {
			return rankParent
		}
	}
	return noMatch
}

// MatchAreas ищет query в названиях единиц одного уровня (без учёта регистра и диакритики).
// Для районов и коммун совпадение по названию вышестоящей единицы тоже засчитывается.
// Порядок: префикс названия, подстрока названия, совпадение только по родителю,
// внутри группы - по алфавиту.
func MatchAreas(level domain.AdminLevel, areas []domain.AdminArea, query string) []SearchResult {
	if TooShort(query) {
		return nil
	}
	folded := utils.Fold(query)

	type match struct {
		area domain.AdminArea
		rank int
	}
	matches := make([]match, 0)
	for _, a := range areas {
		if r := rankArea(level, a, folded); r != noMatch {
			matches = append(matches, match{area: a, rank: r})
		}
	}

	col := utils.NewCollator()
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return col.CompareString(matches[i].area.Name, matches[j].area.Name) < 0
	})

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, NewAreaResult(level, m.area))
	}
	return results
}

// MatchLocal ищет по всем загруженным уровням: регионы, районы, коммуны
func MatchLocal(lists map[domain.AdminLevel][]domain.AdminArea, query string) []SearchResult {
	if TooShort(query) {
		return nil
	}
	results := make([]SearchResult, 0)
	for _, level := range domain.AdminLevels {
		results = append(results, MatchAreas(level, lists[level], query)...)
	}
	return results
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
