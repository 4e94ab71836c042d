package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/config"
	"github.com/doleances-service/internal/delivery/http/handler"
	"github.com/doleances-service/internal/delivery/http/middleware"
	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/pkg/utils"
)

// Handlers - обработчики, подключаемые к маршрутам
type Handlers struct {
	Geo    *handler.GeoHandler
	Search *handler.SearchHandler
	Report *handler.ReportHandler
	Chat   *handler.ChatHandler
	Auth   *handler.AuthHandler
	Health *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	bodyLimit := 4 << 20
	if limit := int(cfg.Storage.AttachmentMaxBytes) + 1<<20; limit > bodyLimit {
		bodyLimit = limit
	}

	app := fiber.New(fiber.Config{
		AppName:      "Doleances Backend",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber.App для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	s.app.Use(middleware.Auth(middleware.AuthConfig{
		Required:   s.config.Auth.Required,
		CookieName: s.config.Auth.CookieName,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	h := s.handlers

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Контракт фронтенда: голые массивы и объекты без конверта
	geo := s.app.Group("/api/geo")
	geo.Get("/regions", h.Geo.Regions)
	geo.Get("/districts", h.Geo.Districts)
	geo.Get("/communes", h.Geo.Communes)

	s.app.Get("/api/nominatim/search", h.Search.NominatimSearch)

	chat := s.app.Group("/api/chat")
	chat.Post("/message", h.Chat.SendMessage)
	chat.Get("/response", h.Chat.Response)

	webhook := s.app.Group("/api/webhook")
	webhook.Post("/n8n", h.Chat.Webhook)
	webhook.Get("/n8n", h.Chat.WebhookStatus)

	auth := s.app.Group("/api/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)

	api := s.app.Group("/api/v1")
	api.Get("/health", h.Health.Health)

	api.Get("/locations/search", h.Search.LocationSearch)
	api.Get("/filters/:type", h.Geo.Filters)

	api.Post("/reports", h.Report.Create)
	api.Get("/reports/count", h.Report.Count)
	api.Get("/reports/:id", h.Report.Get)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 413 тела) в формате AppError
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if _, ok := errors.As(err); ok {
			return utils.SendError(c, err)
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New(errorCode(code), err.Error(), code),
		})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status < fiber.StatusInternalServerError {
		return "INVALID_REQUEST"
	}
	return "INTERNAL_SERVER_ERROR"
}
