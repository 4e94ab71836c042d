package locationsearch

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
)

// Catalog - локальные списки регионов, районов и коммун.
// Уровень запрашивается у источника, только пока его список пуст;
// одновременные загрузки одного уровня сводятся к одному вызову источника.
type Catalog struct {
	source repository.AreaRepository
	logger *zap.Logger

	group singleflight.Group

	mu    sync.RWMutex
	areas map[domain.AdminLevel][]domain.AdminArea
}

// NewCatalog создаёт пустой каталог поверх источника
func NewCatalog(source repository.AreaRepository, logger *zap.Logger) *Catalog {
	return &Catalog{
		source: source,
		logger: logger,
		areas:  make(map[domain.AdminLevel][]domain.AdminArea, len(domain.AdminLevels)),
	}
}

// Load возвращает список уровня, загружая его при отсутствии
func (c *Catalog) Load(ctx context.Context, level domain.AdminLevel) ([]domain.AdminArea, error) {
	if areas := c.Areas(level); len(areas) > 0 {
		return areas, nil
	}

	v, err, _ := c.group.Do(string(level), func() (interface{}, error) {
		if areas := c.Areas(level); len(areas) > 0 {
			return areas, nil
		}

		areas, err := c.source.Areas(ctx, level)
		if err != nil {
			return nil, err
		}

		// пустой список не сохраняем: следующий Load снова обратится к источнику
		if len(areas) > 0 {
			c.mu.Lock()
			c.areas[level] = areas
			c.mu.Unlock()
		}

		c.logger.Debug("Admin level loaded into catalog",
			zap.String("level", string(level)),
			zap.Int("count", len(areas)))

		return areas, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.AdminArea), nil
}

// Areas возвращает уже загруженный список уровня без обращения к источнику
func (c *Catalog) Areas(level domain.AdminLevel) []domain.AdminArea {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.areas[level]
}

// Snapshot возвращает загруженные списки всех уровней
func (c *Catalog) Snapshot() map[domain.AdminLevel][]domain.AdminArea {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lists := make(map[domain.AdminLevel][]domain.AdminArea, len(c.areas))
	for level, areas := range c.areas {
		lists[level] = areas
	}
	return lists
}

// Preload загружает все уровни параллельно. Ошибки логируются,
// возвращается первая из них; успешно загруженные уровни остаются в каталоге.
func (c *Catalog) Preload(ctx context.Context) error {
	var g errgroup.Group
	for _, level := range domain.AdminLevels {
		level := level
		g.Go(func() error {
			if _, err := c.Load(ctx, level); err != nil {
				c.logger.Warn("Failed to preload admin level",
					zap.String("level", string(level)),
					zap.Error(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Reset очищает каталог
func (c *Catalog) Reset() {
	c.mu.Lock()
	c.areas = make(map[domain.AdminLevel][]domain.AdminArea, len(domain.AdminLevels))
	c.mu.Unlock()
}
