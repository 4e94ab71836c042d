package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	apperrors "github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/usecase"
	"github.com/doleances-service/internal/usecase/dto"
)

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Nom:             " Rakoto ",
		Prenom:          "Hery",
		Role:            "agent",
		Email:           "hery.rakoto@example.mg",
		Telephone:       "034 12 345 67",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegistrationUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards normalised registration", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		automation.On("Register", ctx, domain.Registration{
			Nom:       "Rakoto",
			Prenom:    "Hery",
			Role:      "agent",
			Email:     "hery.rakoto@example.mg",
			Telephone: "+261341234567",
			Password:  "secret1",
		}).Return(nil)

		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())
		resp, err := uc.Register(ctx, validRegistration())

		require.NoError(t, err)
		assert.True(t, resp.Success)
		automation.AssertExpectations(t)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(r *dto.RegisterRequest)
			field  string
		}{
			{"short name after trim", func(r *dto.RegisterRequest) { r.Nom = " R " }, "Nom"},
			{"missing role", func(r *dto.RegisterRequest) { r.Role = "" }, "Role"},
			{"bad email", func(r *dto.RegisterRequest) { r.Email = "hery@" }, "Email"},
			{"bad phone", func(r *dto.RegisterRequest) { r.Telephone = "034-abc" }, "Telephone"},
			{"short password", func(r *dto.RegisterRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }, "Password"},
			{"password mismatch", func(r *dto.RegisterRequest) { r.ConfirmPassword = "other12" }, "ConfirmPassword"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				automation := &MockAutomationRepository{}
				uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())

				req := validRegistration()
				tt.mutate(&req)
				_, err := uc.Register(ctx, req)

				require.ErrorIs(t, err, apperrors.ErrValidationFailed)
				appErr, _ := apperrors.As(err)
				assert.Contains(t, appErr.Details, tt.field)
				automation.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("upstream message is surfaced", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		automation.On("Register", ctx, mock.Anything).Return(&upstreamErr{msg: "Email déjà utilisé"})

		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())
		_, err := uc.Register(ctx, validRegistration())

		require.ErrorIs(t, err, apperrors.ErrUpstream)
		appErr, _ := apperrors.As(err)
		assert.Equal(t, "Email déjà utilisé", appErr.Message)
		assert.Equal(t, "Upstream service failed", apperrors.ErrUpstream.Message)
	})

	t.Run("transport failure", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		automation.On("Register", ctx, mock.Anything).Return(errors.New("dial tcp: refused"))

		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())
		_, err := uc.Register(ctx, validRegistration())

		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})
}

func TestRegistrationUseCase_Login(t *testing.T) {
	ctx := context.Background()
	req := dto.LoginRequest{Email: " hery@example.mg ", Password: "secret1"}

	t.Run("returns session token", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		automation.On("Login", ctx, "hery@example.mg", "secret1").Return("jwt-abc", nil)

		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())
		token, err := uc.Login(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "jwt-abc", token)
		automation.AssertExpectations(t)
	})

	t.Run("validation failures", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())

		_, err := uc.Login(ctx, dto.LoginRequest{Email: "hery@", Password: ""})

		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
		appErr, _ := apperrors.As(err)
		assert.Contains(t, appErr.Details, "Email")
		assert.Contains(t, appErr.Details, "Password")
		automation.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upstream rejection is unauthorized", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		automation.On("Login", ctx, mock.Anything, mock.Anything).Return("", &upstreamErr{msg: "Mot de passe incorrect"})

		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())
		_, err := uc.Login(ctx, req)

		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		appErr, _ := apperrors.As(err)
		assert.Equal(t, "Mot de passe incorrect", appErr.Message)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		automation.On("Login", ctx, mock.Anything, mock.Anything).Return("", domain.ErrNoSessionToken)

		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())
		_, err := uc.Login(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("transport failure", func(t *testing.T) {
		automation := &MockAutomationRepository{}
		automation.On("Login", ctx, mock.Anything, mock.Anything).Return("", errors.New("dial tcp: refused"))

		uc := usecase.NewRegistrationUseCase(automation, zap.NewNop())
		_, err := uc.Login(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+261341234567", usecase.NormalizePhone("034 12 345 67"))
	assert.Equal(t, "+261341234567", usecase.NormalizePhone("+261 34 12 345 67"))
	assert.Equal(t, "12345678", usecase.NormalizePhone("12345678"))
}
