package locationsearch

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/pkg/metrics"
)

// Change - уведомление вызывающего кода о смене запроса, фильтра или выбранного места
type Change struct {
	Query    string                  `json:"query"`
	Filter   domain.FilterOption     `json:"filter"`
	Location domain.SelectedLocation `json:"location"`
}

// SessionConfig - обратные вызовы сессии. Оба необязательны.
// Вызываются вне блокировки состояния, последовательно, и не должны
// синхронно вызывать методы той же сессии.
type SessionConfig struct {
	OnResults func(results []SearchResult)
	OnChange  func(change Change)
}

// Session - состояние поля поиска места: запрос, выдача, выбранное место.
//
// Каждый новый запрос увеличивает generation. Отложенный поиск в геокодере
// несёт своё поколение и отменяемый контекст; ответ применяется, только если
// поколение всё ещё текущее. Таймер ожидания всегда один.
type Session struct {
	searcher *Searcher
	logger   *zap.Logger
	debounce time.Duration
	cfg      SessionConfig

	mu         sync.Mutex
	query      string
	filter     domain.FilterOption
	results    []SearchResult
	selected   domain.SelectedLocation
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
	closed     bool

	// emitMu упорядочивает обратные вызовы: последним всегда доставляется самое новое состояние
	emitMu sync.Mutex
	wg     sync.WaitGroup
}

// NewSession создаёт сессию с фильтром по умолчанию
func NewSession(searcher *Searcher, cfg SessionConfig, logger *zap.Logger) *Session {
	return &Session{
		searcher: searcher,
		logger:   logger,
		debounce: searcher.Options().Debounce,
		cfg:      cfg,
		filter:   domain.DefaultFilter,
	}
}

// SetQuery обновляет текст запроса. Пустой запрос очищает выдачу и выбранное место.
// Иначе локальные совпадения публикуются сразу, а поиск в геокодере
// откладывается на время debounce; предыдущий отложенный или выполняющийся поиск отменяется.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.stopPendingLocked()

	if strings.TrimSpace(text) == "" {
		s.query = ""
		s.results = nil
		s.selected = domain.SelectedLocation{}
		change := s.changeLocked()
		s.mu.Unlock()

		s.emit(gen, true, nil, &change)
		return
	}

	s.query = text
	s.results = Merge(s.searcher.Local(text), nil, s.searcher.Options().MaxResults)
	results := s.copyResultsLocked()

	if !TooShort(text) {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.wg.Add(1)
		s.timer = time.AfterFunc(s.debounce, func() {
			defer s.wg.Done()
			s.lookup(ctx, cancel, gen, text)
		})
	}
	s.mu.Unlock()

	s.emit(gen, true, results, nil)
}

// lookup выполняет отложенный поиск поколения gen
func (s *Session) lookup(ctx context.Context, cancel context.CancelFunc, gen uint64, text string) {
	defer cancel()

	// уровни, которые ещё не загружены, пробуем загрузить (fetch-if-absent)
	_ = s.searcher.Catalog().Preload(ctx)
	local := s.searcher.Local(text)
	places := s.searcher.Geocode(ctx, text)
	merged := Merge(local, places, s.searcher.Options().MaxResults)

	s.mu.Lock()
	if gen != s.generation || ctx.Err() != nil {
		s.mu.Unlock()
		s.discard(gen, text)
		return
	}
	s.results = merged
	results := s.copyResultsLocked()
	s.mu.Unlock()

	s.emit(gen, true, results, nil)
}

func (s *Session) discard(gen uint64, text string) {
	metrics.StaleSearchResponsesTotal.Inc()
	s.logger.Debug("Discarding stale search response",
		zap.String("query", text),
		zap.Uint64("generation", gen))
}

// SelectResult фиксирует выбор: запрос заменяется подписью результата,
// выдача очищается, вызывающий код получает {query, filter, location}
func (s *Session) SelectResult(result SearchResult) domain.SelectedLocation {
	loc := result.Location()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return loc
	}
	s.generation++
	gen := s.generation
	s.stopPendingLocked()
	s.query = result.Label
	s.results = nil
	s.selected = loc
	change := s.changeLocked()
	s.mu.Unlock()

	s.emit(gen, true, nil, &change)
	return loc
}

// SetFilter меняет фильтр поиска (commune, region, zone, district)
func (s *Session) SetFilter(option domain.FilterOption) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.filter = option
	gen := s.generation
	change := s.changeLocked()
	s.mu.Unlock()

	s.emit(gen, false, nil, &change)
}

// Clear сбрасывает запрос, выдачу и выбранное место, отменяя отложенную работу
func (s *Session) Clear() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.stopPendingLocked()
	s.query = ""
	s.results = nil
	s.selected = domain.SelectedLocation{}
	change := s.changeLocked()
	s.mu.Unlock()

	s.emit(gen, true, nil, &change)
}

// Close останавливает таймер и выполняющийся поиск и дожидается их завершения
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.generation++
	s.stopPendingLocked()
	s.mu.Unlock()

	s.wg.Wait()
}

// Query возвращает текущий текст запроса
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Filter возвращает текущий фильтр
func (s *Session) Filter() domain.FilterOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Results возвращает копию текущей выдачи
func (s *Session) Results() []SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyResultsLocked()
}

// Selected возвращает выбранное место; ok=false, если ничего не выбрано
func (s *Session) Selected() (domain.SelectedLocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, !s.selected.IsZero()
}

// stopPendingLocked отменяет отложенный и выполняющийся поиск. Вызывать под s.mu.
func (s *Session) stopPendingLocked() {
	if s.timer != nil {
		if s.timer.Stop() {
			// функция таймера уже не запустится
			s.wg.Done()
		}
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) changeLocked() Change {
	return Change{Query: s.query, Filter: s.filter, Location: s.selected}
}

func (s *Session) copyResultsLocked() []SearchResult {
	if len(s.results) == 0 {
		return []SearchResult{}
	}
	out := make([]SearchResult, len(s.results))
	copy(out, s.results)
	return out
}

// emit доставляет уведомления, если поколение gen всё ещё текущее
func (s *Session) emit(gen uint64, withResults bool, results []SearchResult, change *Change) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	current := gen == s.generation
	s.mu.Unlock()
	if !current {
		return
	}

	if withResults && s.cfg.OnResults != nil {
		if results == nil {
			results = []SearchResult{}
		}
		s.cfg.OnResults(results)
	}
	if change != nil && s.cfg.OnChange != nil {
		s.cfg.OnChange(*change)
	}
}
