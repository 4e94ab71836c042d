package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/config"
	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
)

// MinIOStorage хранит вложения отчётов в бакете MinIO/S3
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

var _ repository.AttachmentStorage = (*MinIOStorage)(nil)

// NewMinIOStorage создаёт клиент и проверяет наличие бакета
func NewMinIOStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*MinIOStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	s := &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		logger:    logger,
	}
	if s.publicURL == "" {
		s.publicURL = client.EndpointURL().String()
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Info("MinIO storage ready",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))

	return s, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Bucket created", zap.String("bucket", s.bucket))
	return nil
}

// Put загружает файл под ключом key и возвращает его URL
func (s *MinIOStorage) Put(ctx context.Context, key string, r io.Reader, att domain.Attachment) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, att.Size, minio.PutObjectOptions{
		ContentType: att.ContentType,
		UserMetadata: map[string]string{
			"original-name": att.FileName,
		},
	})
	if err != nil {
		s.logger.Error("Failed to upload attachment",
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Debug("Attachment uploaded",
		zap.String("key", key),
		zap.Int64("size", info.Size))

	return ObjectURL(s.publicURL, s.bucket, key), nil
}

// Health проверяет доступность бакета
func (s *MinIOStorage) Health(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

// ObjectURL - адрес объекта в стиле path: <base>/<bucket>/<key>
func ObjectURL(base, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.Join(segments, "/")
}
