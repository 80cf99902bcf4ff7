package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"chat-animation/internal/domain/animation"
	app_errors "chat-animation/pkg/errors"

	"github.com/google/uuid"
)

const (
	exportContentType = "application/json"
	exportKeyPrefix   = "animation-exports/"
)

// ObjectStorage is the subset of the S3 client the export service needs.
type ObjectStorage interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

type ExportResult struct {
	Key         string
	DownloadURL string
}

// ExportService shares export documents through object storage.
type ExportService struct {
	settings *AnimationSettingsService
	storage  ObjectStorage
}

func NewExportService(settings *AnimationSettingsService, storage ObjectStorage) *ExportService {
	return &ExportService{settings: settings, storage: storage}
}

// Upload stores the current export document under a fresh key.
func (s *ExportService) Upload(ctx context.Context) (ExportResult, error) {
	if s.storage == nil {
		return ExportResult{}, fmt.Errorf("%w: object storage is not configured", app_errors.ErrServiceUnavailable)
	}
	data, err := s.settings.Export(ctx)
	if err != nil {
		return ExportResult{}, err
	}

	key := buildExportKey(uuid.New())
	if err := s.storage.PutObject(ctx, key, exportContentType, data); err != nil {
		return ExportResult{}, err
	}
	url, err := s.storage.PresignGet(ctx, key)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Key: key, DownloadURL: url}, nil
}

// Download imports a document previously written by Upload.
func (s *ExportService) Download(ctx context.Context, key string, apply bool, types ...animation.Type) (*animation.SettingsSet, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", app_errors.ErrServiceUnavailable)
	}
	if !isExportKey(key) {
		return nil, fmt.Errorf("%w: %q is not an export key", app_errors.ErrInvalidInput, key)
	}
	data, err := s.storage.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.settings.Import(ctx, data, apply, types...)
}

func buildExportKey(id uuid.UUID) string {
	return exportKeyPrefix + id.String() + path.Ext(ExportFileName)
}

func isExportKey(key string) bool {
	if !strings.HasPrefix(key, exportKeyPrefix) || path.Ext(key) != path.Ext(ExportFileName) {
		return false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, exportKeyPrefix), path.Ext(ExportFileName))
	_, err := uuid.Parse(id)
	return err == nil
}
