package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/usecase/dto"
)

// PingFunc проверяет доступность зависимости
type PingFunc func(ctx context.Context) error

// HealthHandler - состояние сервиса
type HealthHandler struct {
	checks  map[string]PingFunc
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthHandler - создание нового HealthHandler; checks может быть пустым
func NewHealthHandler(checks map[string]PingFunc, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Health godoc
// @Summary Проверка состояния
// @Description status=healthy, если все зависимости отвечают; иначе degraded с кодом 503
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		deps    = make(map[string]string, len(h.checks))
		healthy = true
	)
	for name, ping := range h.checks {
		wg.Add(1)
		go func(name string, ping PingFunc) {
			defer wg.Done()
			status := "ok"
			if err := ping(ctx); err != nil {
				h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
				status = "error: " + err.Error()
			}
			mu.Lock()
			deps[name] = status
			if status != "ok" {
				healthy = false
			}
			mu.Unlock()
		}(name, ping)
	}
	wg.Wait()

	resp := dto.HealthResponse{
		Status:       "healthy",
		Time:         time.Now(),
		Dependencies: deps,
	}
	if !healthy {
		resp.Status = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
