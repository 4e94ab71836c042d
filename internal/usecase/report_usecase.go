package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/errors"
	"github.com/doleances-service/internal/pkg/metrics"
	"github.com/doleances-service/internal/usecase/dto"
)

// ReportUseCase - приём и чтение отчётов (doléances)
type ReportUseCase struct {
	reportRepo    repository.ReportRepository
	storage       repository.AttachmentStorage
	streamRepo    repository.StreamRepository
	maxAttachment int64
	logger        *zap.Logger
}

// NewReportUseCase - создание нового ReportUseCase.
// storage равен nil, если MinIO не настроен; streamRepo равен nil без воркера.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	storage repository.AttachmentStorage,
	streamRepo repository.StreamRepository,
	maxAttachment int64,
	logger *zap.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:    reportRepo,
		storage:       storage,
		streamRepo:    streamRepo,
		maxAttachment: maxAttachment,
		logger:        logger,
	}
}

// ValidateAttachment принимает только .pdf не больше maxBytes
func ValidateAttachment(att *dto.AttachmentUpload, maxBytes int64) error {
	if !strings.EqualFold(filepath.Ext(att.FileName), ".pdf") {
		return errors.ErrInvalidAttachment
	}
	if att.Size <= 0 {
		return errors.ErrInvalidAttachment.WithMessage("Attachment is empty")
	}
	if maxBytes > 0 && att.Size > maxBytes {
		return errors.ErrInvalidAttachment.WithDetails(map[string]interface{}{
			"maxBytes": maxBytes,
			"size":     att.Size,
		})
	}
	return nil
}

// Create проверяет и сохраняет отчёт, загружает вложение и публикует событие для воркера
func (uc *ReportUseCase) Create(ctx context.Context, req dto.CreateReportRequest, att *dto.AttachmentUpload) (*dto.CreateReportResponse, error) {
	if strings.TrimSpace(req.EditorContent.PlainText) == "" {
		return nil, errors.ErrEmptyContent
	}
	if att != nil {
		if err := ValidateAttachment(att, uc.maxAttachment); err != nil {
			return nil, err
		}
	}

	filter := req.SearchFilter.Filter
	if filter.Value == "" {
		filter = domain.DefaultFilter
	}

	report := &domain.Report{
		ID:          uuid.New(),
		SearchQuery: strings.TrimSpace(req.SearchFilter.Query),
		FilterValue: filter.Value,
		FilterLabel: filter.Label,
		ContentHTML: req.EditorContent.HTML,
		ContentText: req.EditorContent.PlainText,
		SubmittedBy: req.SubmittedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Location != nil {
		report.SetLocation(*req.Location)
	}

	if att != nil {
		url, err := uc.uploadAttachment(ctx, report.ID, att)
		if err != nil {
			return nil, err
		}
		report.AttachmentName = &att.FileName
		report.AttachmentType = &att.ContentType
		report.AttachmentSize = &att.Size
		report.AttachmentURL = &url
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		uc.logger.Error("Failed to save report", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	metrics.ReportsSubmittedTotal.Inc()

	uc.publishSubmitted(ctx, report)

	uc.logger.Info("Report submitted",
		zap.String("id", report.ID.String()),
		zap.String("filter", report.FilterValue),
		zap.Bool("attachment", att != nil))

	return &dto.CreateReportResponse{
		ID:        report.ID.String(),
		PDFURL:    report.AttachmentURL,
		CreatedAt: report.CreatedAt,
	}, nil
}

func (uc *ReportUseCase) uploadAttachment(ctx context.Context, id uuid.UUID, att *dto.AttachmentUpload) (string, error) {
	if uc.storage == nil {
		return "", errors.ErrStorageError.WithMessage("Attachment storage is not configured")
	}

	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/pdf"
		att.ContentType = contentType
	}

	key := domain.AttachmentKey(id.String(), att.FileName)
	url, err := uc.storage.Put(ctx, key, att.Reader, domain.Attachment{
		FileName:    att.FileName,
		ContentType: contentType,
		Size:        att.Size,
	})
	if err != nil {
		uc.logger.Error("Failed to store attachment",
			zap.String("key", key),
			zap.Error(err))
		return "", errors.ErrStorageError
	}
	return url, nil
}

// publishSubmitted - ошибка публикации не мешает приёму отчёта
func (uc *ReportUseCase) publishSubmitted(ctx context.Context, report *domain.Report) {
	if uc.streamRepo == nil {
		return
	}

	event := domain.ReportSubmittedEvent{
		EventID:   uuid.New(),
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamReportSubmitted, event); err != nil {
		uc.logger.Warn("Failed to publish report event",
			zap.String("report_id", report.ID.String()),
			zap.Error(err))
	}
}

// Get возвращает отчёт по идентификатору
func (uc *ReportUseCase) Get(ctx context.Context, rawID string) (*domain.Report, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("Invalid report id")
	}
	return uc.reportRepo.GetByID(ctx, id)
}

// Count возвращает количество отчётов
func (uc *ReportUseCase) Count(ctx context.Context) (*dto.ReportCountResponse, error) {
	total, err := uc.reportRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReportCountResponse{Total: total}, nil
}
