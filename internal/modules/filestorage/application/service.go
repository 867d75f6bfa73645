package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/saransh1220/image-depot/internal/modules/filestorage/domain"
	"go.uber.org/zap"
)

// maxNameAttempts bounds the same-second collision retries in Store
const maxNameAttempts = 10

// UploadService implements list, fetch and store on top of a FileStorage
type UploadService struct {
	storage domain.FileStorage
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an UploadService
type Option func(*UploadService)

// WithClock overrides the time source used for name prefixes
func WithClock(now func() time.Time) Option {
	return func(s *UploadService) {
		s.now = now
	}
}

// NewUploadService creates a new upload service
func NewUploadService(storage domain.FileStorage, logger *zap.Logger, opts ...Option) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &UploadService{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the sorted names of stored files
func (s *UploadService) List(ctx context.Context) ([]string, error) {
	names, err := s.storage.List(ctx)
	if err != nil {
		s.logger.Error("list uploads failed", zap.Error(err))
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Fetch opens a stored file by its exact name. The caller closes the reader.
func (s *UploadService) Fetch(ctx context.Context, name string) (io.ReadCloser, *domain.Object, error) {
	rc, obj, err := s.storage.Open(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("fetch upload failed", zap.String("name", name), zap.Error(err))
		}
		return nil, nil, err
	}
	return rc, obj, nil
}

// Store validates and writes an upload under a sanitized, timestamp-prefixed name.
// Non-image content types are rejected before storage is touched.
func (s *UploadService) Store(ctx context.Context, contentType, rawFilename string, r io.Reader) (*domain.StoredFile, error) {
	if !domain.IsImageContentType(contentType) {
		uploadsTotal.WithLabelValues(resultRejected).Inc()
		s.logger.Info("upload rejected",
			zap.String("filename", rawFilename),
			zap.String("content_type", contentType))
		return nil, domain.ErrNotImage
	}

	seeker, canRewind := r.(io.Seeker)
	var start int64
	if canRewind {
		var err error
		if start, err = seeker.Seek(0, io.SeekCurrent); err != nil {
			canRewind = false
		}
	}

	now := s.now()
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		if attempt > 1 {
			if !canRewind {
				break
			}
			if _, err := seeker.Seek(start, io.SeekStart); err != nil {
				return nil, s.storeFailed(rawFilename, domain.StorageError("rewind upload", err))
			}
		}

		name := domain.StoredName(rawFilename, now, attempt)
		n, err := s.storage.Put(ctx, name, r, contentType)
		if errors.Is(err, domain.ErrExists) {
			s.logger.Warn("stored name taken, retrying", zap.String("name", name), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, s.storeFailed(rawFilename, err)
		}

		uploadsTotal.WithLabelValues(resultStored).Inc()
		uploadBytesTotal.Add(float64(n))
		s.logger.Info("upload stored",
			zap.String("name", name),
			zap.Int64("size_bytes", n),
			zap.String("content_type", contentType))

		return &domain.StoredFile{
			Name:        name,
			Size:        n,
			ContentType: contentType,
		}, nil
	}

	return nil, s.storeFailed(rawFilename, domain.StorageError("allocate name",
		fmt.Errorf("no free name for %q", rawFilename)))
}

func (s *UploadService) storeFailed(rawFilename string, err error) error {
	uploadsTotal.WithLabelValues(resultFailed).Inc()
	s.logger.Error("upload failed", zap.String("filename", rawFilename), zap.Error(err))
	return err
}
