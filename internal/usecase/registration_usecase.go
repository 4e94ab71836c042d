package usecase

import (
	"context"
	stderrors "errors"

	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/pkg/validator"
	"github.com/doleances-service/internal/usecase/dto"
)

// DefaultPhoneRegion - регион для номеров без международного префикса
const DefaultPhoneRegion = "MG"

// upstreamMessager - ошибка внешнего сервиса с сообщением для пользователя
type upstreamMessager interface {
	UpstreamMessage() string
}

// RegistrationUseCase - проверка заявки и пересылка в n8n
type RegistrationUseCase struct {
	automation repository.AutomationRepository
	logger     *zap.Logger
}

// NewRegistrationUseCase - создание нового RegistrationUseCase
func NewRegistrationUseCase(automation repository.AutomationRepository, logger *zap.Logger) *RegistrationUseCase {
	return &RegistrationUseCase{
		automation: automation,
		logger:     logger,
	}
}

// NormalizePhone переводит номер в E.164, если он валиден для региона MG.
// Иначе номер возвращается как есть.
func NormalizePhone(raw string) string {
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Register валидирует заявку и пересылает её
func (uc *RegistrationUseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	req.Normalize()
	if err := validator.Validate(req); err != nil {
		return nil, errors.FromValidation(err)
	}

	reg := domain.Registration{
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Role:      req.Role,
		Email:     req.Email,
		Telephone: NormalizePhone(req.Telephone),
		Password:  req.Password,
	}

	if err := uc.automation.Register(ctx, reg); err != nil {
		uc.logger.Warn("Registration relay failed",
			zap.String("email", reg.Email),
			zap.Error(err))

		var um upstreamMessager
		if stderrors.As(err, &um) && um.UpstreamMessage() != "" {
			return nil, errors.ErrUpstream.WithMessage(um.UpstreamMessage())
		}
		return nil, errors.ErrUpstream
	}

	uc.logger.Info("Registration forwarded", zap.String("email", reg.Email))

	return &dto.RegisterResponse{
		Success: true,
		Message: "Inscription envoyée avec succès",
	}, nil
}

// Login проверяет учётные данные через n8n и возвращает токен сессии.
// Отказ n8n или ответ без токена - 401, сбой связи - 502.
func (uc *RegistrationUseCase) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	req.Normalize()
	if err := validator.Validate(req); err != nil {
		return "", errors.FromValidation(err)
	}

	token, err := uc.automation.Login(ctx, req.Email, req.Password)
	if err != nil {
		uc.logger.Warn("Login rejected",
			zap.String("email", req.Email),
			zap.Error(err))

		var um upstreamMessager
		if stderrors.As(err, &um) {
			if um.UpstreamMessage() != "" {
				return "", errors.ErrUnauthorized.WithMessage(um.UpstreamMessage())
			}
			return "", errors.ErrUnauthorized.WithMessage("Identifiants invalides")
		}
		if stderrors.Is(err, domain.ErrNoSessionToken) {
			return "", errors.ErrUnauthorized.WithMessage("Identifiants invalides")
		}
		return "", errors.ErrUpstream
	}

	uc.logger.Info("User logged in", zap.String("email", req.Email))
	return token, nil
}
