package filestorage

import (
	"context"
	"fmt"
	"io"

	"github.com/saransh1220/image-depot/internal/modules/filestorage/application"
	"github.com/saransh1220/image-depot/internal/modules/filestorage/domain"
	"github.com/saransh1220/image-depot/internal/modules/filestorage/infrastructure/local"
	"github.com/saransh1220/image-depot/internal/modules/filestorage/infrastructure/s3"
	upload_http "github.com/saransh1220/image-depot/internal/modules/filestorage/interfaces/http"
	"github.com/saransh1220/image-depot/internal/shared/infrastructure/config"
	"go.uber.org/zap"
)

// Module represents the FileStorage module
type Module struct {
	service *application.UploadService
	storage domain.FileStorage
	handler *upload_http.UploadHandler
}

// NewModule creates and initializes the FileStorage module
func NewModule(ctx context.Context, cfg config.FileStorageConfig, logger *zap.Logger) (*Module, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var storage domain.FileStorage

	switch cfg.Driver {
	case config.DriverS3:
		s3Cfg := s3.S3Config{
			BucketName: cfg.S3BucketName,
			Region:     cfg.S3Region,
			Endpoint:   cfg.S3Endpoint,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Prefix:     cfg.S3Prefix,
			UseSSL:     cfg.S3UseSSL,
		}
		s3Storage, err := s3.NewS3Storage(ctx, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		storage = s3Storage
		logger.Info("using s3 storage", zap.String("bucket", cfg.S3BucketName), zap.String("prefix", cfg.S3Prefix))
	case config.DriverLocal, "":
		localStorage, err := local.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		storage = localStorage
		logger.Info("using local storage", zap.String("dir", localStorage.Path()))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	service := application.NewUploadService(storage, logger.Named("upload"))
	handler := upload_http.NewUploadHandler(service, cfg.MaxUploadBytes, logger.Named("http"))

	return &Module{
		service: service,
		storage: storage,
		handler: handler,
	}, nil
}

// Service returns the upload service
func (m *Module) Service() *application.UploadService {
	return m.service
}

// Handler returns the HTTP handler for the upload routes
func (m *Module) Handler() *upload_http.UploadHandler {
	return m.handler
}

// Close releases the storage backend
func (m *Module) Close() error {
	if c, ok := m.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
