package locationsearch

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
)

const (
	DefaultGeocodeLimit = 8
	DefaultDebounce     = 400 * time.Millisecond
)

// Options - параметры поиска
type Options struct {
	// CountryCodes - фильтр стран геокодера через запятую ("mg")
	CountryCodes string
	GeocodeLimit int
	MaxResults   int
	Debounce     time.Duration
}

func (o Options) withDefaults() Options {
	if o.GeocodeLimit <= 0 {
		o.GeocodeLimit = DefaultGeocodeLimit
	}
	// выдача никогда не длиннее MaxResults, даже если конфиг просит больше
	if o.MaxResults <= 0 || o.MaxResults > MaxResults {
		o.MaxResults = MaxResults
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	return o
}

// Searcher объединяет локальный каталог и внешний геокодер
type Searcher struct {
	catalog  *Catalog
	geocoder repository.GeocodeRepository
	opts     Options
	logger   *zap.Logger
}

// NewSearcher создаёт Searcher; нулевые поля opts заменяются значениями по умолчанию
func NewSearcher(catalog *Catalog, geocoder repository.GeocodeRepository, opts Options, logger *zap.Logger) *Searcher {
	return &Searcher{
		catalog:  catalog,
		geocoder: geocoder,
		opts:     opts.withDefaults(),
		logger:   logger,
	}
}

// Options возвращает действующие параметры
func (s *Searcher) Options() Options {
	return s.opts
}

// Catalog возвращает локальный каталог
func (s *Searcher) Catalog() *Catalog {
	return s.catalog
}

// Local ищет только по уже загруженным спискам, без сети
func (s *Searcher) Local(query string) []SearchResult {
	return MatchLocal(s.catalog.Snapshot(), query)
}

// Geocode запрашивает геокодер. Короткий запрос даёт пустой результат без вызова;
// ошибка геокодера логируется и тоже даёт пустой результат.
func (s *Searcher) Geocode(ctx context.Context, query string) []domain.GeocodeResult {
	q := strings.TrimSpace(query)
	if TooShort(q) {
		return []domain.GeocodeResult{}
	}

	places, err := s.geocoder.Search(ctx, q, domain.GeocodeOptions{
		CountryCodes: s.opts.CountryCodes,
		Limit:        s.opts.GeocodeLimit,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("Geocode lookup cancelled", zap.String("query", q))
		} else {
			s.logger.Warn("Geocoder unavailable, using local results only",
				zap.String("query", q),
				zap.Error(err))
		}
		return []domain.GeocodeResult{}
	}

	if len(places) > s.opts.GeocodeLimit {
		places = places[:s.opts.GeocodeLimit]
	}
	return places
}

// Search выполняет полный поиск: догружает недостающие уровни каталога,
// ищет локально, затем во внешнем геокодере, и объединяет выдачу
func (s *Searcher) Search(ctx context.Context, query string) []SearchResult {
	if TooShort(query) {
		return []SearchResult{}
	}

	// ошибки уже залогированы, ищем по тому, что удалось загрузить
	_ = s.catalog.Preload(ctx)

	local := s.Local(query)
	places := s.Geocode(ctx, query)
	return Merge(local, places, s.opts.MaxResults)
}
