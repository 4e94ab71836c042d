package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/pkg/utils"
)

// PublicPrefixes - пути, доступные без cookie авторизации
var PublicPrefixes = []string{
	"/api/auth",
	"/api/webhook",
	"/api/chat",
	"/api/v1/health",
	"/metrics",
	"/swagger",
}

// AuthConfig - настройки проверки cookie
type AuthConfig struct {
	Required   bool
	CookieName string
	Public     []string
}

// Auth проверяет только наличие cookie: сам токен выдаёт и проверяет внешний сервис
func Auth(cfg AuthConfig) fiber.Handler {
	if cfg.Public == nil {
		cfg.Public = PublicPrefixes
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "auth-token"
	}

	return func(c *fiber.Ctx) error {
		if !cfg.Required || c.Method() == fiber.MethodOptions || isPublic(c.Path(), cfg.Public) {
			return c.Next()
		}
		if c.Cookies(cfg.CookieName) == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		return c.Next()
	}
}

func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
