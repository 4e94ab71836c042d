package geodata

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/metrics"
)

// LoadFunc загружает один уровень; по умолчанию LoadFile из каталога
type LoadFunc func(level domain.AdminLevel) ([]domain.AdminArea, error)

type levelState struct {
	mu     sync.Mutex
	loaded bool
	areas  []domain.AdminArea
}

// Store - справочник единиц, загружаемый один раз на уровень за время жизни процесса.
// Ошибка загрузки не кешируется: следующий запрос попробует снова.
// Возвращаемые срезы общие и не должны изменяться вызывающим кодом.
type Store struct {
	load   LoadFunc
	logger *zap.Logger
	levels map[domain.AdminLevel]*levelState
}

var _ repository.AreaRepository = (*Store)(nil)

// NewStore создаёт Store, читающий GeoJSON из dir
func NewStore(dir string, logger *zap.Logger) *Store {
	return NewStoreWithLoader(func(level domain.AdminLevel) ([]domain.AdminArea, error) {
		return LoadFile(dir, level)
	}, logger)
}

// NewStoreWithLoader создаёт Store с произвольным загрузчиком
func NewStoreWithLoader(load LoadFunc, logger *zap.Logger) *Store {
	levels := make(map[domain.AdminLevel]*levelState, len(domain.AdminLevels))
	for _, l := range domain.AdminLevels {
		levels[l] = &levelState{}
	}
	return &Store{load: load, logger: logger, levels: levels}
}

// Areas возвращает единицы уровня, загружая их при первом обращении
func (s *Store) Areas(ctx context.Context, level domain.AdminLevel) ([]domain.AdminArea, error) {
	st, ok := s.levels[level]
	if !ok {
		_, err := FileName(level)
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.loaded {
		return st.areas, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	areas, err := s.load(level)
	if err != nil {
		metrics.AdminAreaLoadsTotal.WithLabelValues(string(level), "error").Inc()
		s.logger.Error("Failed to load admin areas",
			zap.String("level", string(level)),
			zap.Error(err))
		return nil, err
	}
	metrics.AdminAreaLoadsTotal.WithLabelValues(string(level), "ok").Inc()

	st.areas = areas
	st.loaded = true

	s.logger.Info("Admin areas loaded",
		zap.String("level", string(level)),
		zap.Int("count", len(areas)),
		zap.Duration("took", time.Since(start)))

	return areas, nil
}

// ByParent возвращает единицы уровня с указанным кодом родителя
func (s *Store) ByParent(ctx context.Context, level domain.AdminLevel, parentCode string) ([]domain.AdminArea, error) {
	areas, err := s.Areas(ctx, level)
	if err != nil {
		return nil, err
	}
	if parentCode == "" {
		return areas, nil
	}

	filtered := make([]domain.AdminArea, 0)
	for _, a := range areas {
		if a.ParentCode == parentCode {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Reset сбрасывает загруженные данные (перечитать файлы после обновления)
func (s *Store) Reset() {
	for _, st := range s.levels {
		st.mu.Lock()
		st.loaded = false
		st.areas = nil
		st.mu.Unlock()
	}
}
