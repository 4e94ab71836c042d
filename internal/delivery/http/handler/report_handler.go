package handler

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/pkg/utils"
	"github.com/doleances-service/internal/usecase"
	"github.com/doleances-service/internal/usecase/dto"
)

// ReportHandler - приём и чтение отчётов
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	logger   *zap.Logger
}

// NewReportHandler - создание нового ReportHandler
func NewReportHandler(reportUC *usecase.ReportUseCase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		logger:   logger,
	}
}

// Create godoc
// @Summary Отправка отчёта (doléance)
// @Description JSON или multipart: поле payload с JSON и необязательный файл attachment (.pdf)
// @Tags Reports
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body dto.CreateReportRequest true "Отчёт"
// @Success 201 {object} utils.SuccessResponse{data=dto.CreateReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	var att *dto.AttachmentUpload

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid multipart form"))
		}
		if err := json.Unmarshal([]byte(firstValue(form.Value["payload"])), &req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid payload field"))
		}

		if files := form.File["attachment"]; len(files) > 0 {
			file := files[0]
			f, err := file.Open()
			if err != nil {
				h.logger.Error("Failed to open uploaded file", zap.Error(err))
				return utils.SendError(c, errors.ErrInvalidAttachment.WithMessage("Attachment cannot be read"))
			}
			defer f.Close()

			att = &dto.AttachmentUpload{
				FileName:    file.Filename,
				ContentType: file.Header.Get(fiber.HeaderContentType),
				Size:        file.Size,
				Reader:      f,
			}
		}
	} else if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.reportUC.Create(c.UserContext(), req, att)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result, "Doléance envoyée avec succès")
}

// Get godoc
// @Summary Отчёт по идентификатору
// @Tags Reports
// @Produce json
// @Param id path string true "UUID отчёта"
// @Success 200 {object} utils.SuccessResponse{data=domain.Report}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	report, err := h.reportUC.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, report, nil)
}

// Count godoc
// @Summary Количество отчётов
// @Tags Reports
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ReportCountResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/reports/count [get]
func (h *ReportHandler) Count(c *fiber.Ctx) error {
	result, err := h.reportUC.Count(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
