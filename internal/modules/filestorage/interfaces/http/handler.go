package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/saransh1220/image-depot/internal/modules/filestorage/domain"
	"github.com/saransh1220/image-depot/internal/shared/utils"
	"go.uber.org/zap"
)

const (
	uploadsPath     = "uploads/"
	fileField       = "file"
	multipartMemory = 8 << 20
)

// UploadService defines the operations the handler needs
type UploadService interface {
	List(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, name string) (io.ReadCloser, *domain.Object, error)
	Store(ctx context.Context, contentType, rawFilename string, r io.Reader) (*domain.StoredFile, error)
}

type UploadHandler struct {
	service        UploadService
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewUploadHandler(service UploadService, maxUploadBytes int64, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *UploadHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, HealthResponse{OK: true, Message: "image-depot alive"})
}

func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.List(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list uploads", nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, names)
}

func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	rc, obj, err := h.service.Fetch(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "file not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to read file", nil)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")

	// Seekable bodies (local files) get range and conditional request support
	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, obj.Name, obj.ModTime, rs)
		return
	}

	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("streaming file interrupted", zap.String("name", name), zap.Error(err))
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		if r.ContentLength > h.maxUploadBytes {
			utils.WriteError(w, http.StatusRequestEntityTooLarge, domain.ErrTooLarge.Error(), nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.WriteError(w, http.StatusRequestEntityTooLarge, domain.ErrTooLarge.Error(), nil)
			return
		}
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(fileField)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "file field is required", nil)
		return
	}
	defer file.Close()

	stored, err := h.service.Store(r.Context(), header.Header.Get("Content-Type"), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotImage):
			utils.WriteError(w, http.StatusBadRequest, "only image files are allowed", nil)
		case errors.Is(err, domain.ErrInvalidInput):
			utils.WriteError(w, http.StatusBadRequest, "invalid upload", err)
		default:
			utils.WriteError(w, http.StatusInternalServerError, "save failed", err)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, ToUploadResponse(stored))
}
