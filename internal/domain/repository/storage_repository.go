package repository

import (
	"context"
	"io"

	"github.com/doleances-service/internal/domain"
)

// AttachmentStorage - объектное хранилище вложений
type AttachmentStorage interface {
	// Put сохраняет файл и возвращает URL для скачивания
	Put(ctx context.Context, key string, r io.Reader, att domain.Attachment) (string, error)
}
