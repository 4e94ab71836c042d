package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doleances-service/internal/pkg/errors"
)

type SuccessResponse struct {
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total    int     `json:"total,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendCreated - ответ 201 с сообщением для пользователя
func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Data:    data,
		Message: message,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}

// SendPlainError - ошибка без конверта для эндпоинтов с фиксированным контрактом:
// {"error": message, "code": code, "details"?: ...} плюс поля extra
func SendPlainError(c *fiber.Ctx, err error, extra fiber.Map) error {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.ErrInternalServer
	}

	body := fiber.Map{
		"error": appErr.Message,
		"code":  appErr.Code,
	}
	if len(appErr.Details) > 0 {
		for k, v := range appErr.Details {
			body[k] = v
		}
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(appErr.StatusCode).JSON(body)
}
