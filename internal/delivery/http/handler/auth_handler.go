package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/pkg/utils"
	"github.com/doleances-service/internal/usecase"
	"github.com/doleances-service/internal/usecase/dto"
)

// sessionMaxAge - срок жизни cookie авторизации, секунды
const sessionMaxAge = 86400

// AuthHandler - регистрация, вход и выход
type AuthHandler struct {
	registrationUC *usecase.RegistrationUseCase
	cookieName     string
	logger         *zap.Logger
}

// NewAuthHandler - создание нового AuthHandler
func NewAuthHandler(registrationUC *usecase.RegistrationUseCase, cookieName string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		registrationUC: registrationUC,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Register godoc
// @Summary Заявка на регистрацию
// @Description Проверяет поля, нормализует телефон в E.164 и пересылает заявку в n8n
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Заявка"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendPlainError(c, err, nil)
	}

	result, err := h.registrationUC.Register(c.UserContext(), req)
	if err != nil {
		return utils.SendPlainError(c, err, nil)
	}
	return c.JSON(result)
}

// Login godoc
// @Summary Вход
// @Description Проверяет email и пароль через n8n и ставит cookie авторизации
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendPlainError(c, err, nil)
	}

	token, err := h.registrationUC.Login(c.UserContext(), req)
	if err != nil {
		return utils.SendPlainError(c, err, nil)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// Logout godoc
// @Summary Выход: удаление cookie авторизации
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true})
}
