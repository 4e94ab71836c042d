package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doleances-service/internal/pkg/errors"
)

// parseBody - разбор JSON тела, ошибка разбора превращается в INVALID_REQUEST
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	return nil
}
