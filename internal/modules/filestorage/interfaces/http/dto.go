package http

import "github.com/saransh1220/image-depot/internal/modules/filestorage/domain"

// HealthResponse is returned by the root and health endpoints
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// UploadResponse describes a stored upload
type UploadResponse struct {
	Filename    string `json:"filename"`
	Message     string `json:"message"`
	Path        string `json:"path"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

// ToUploadResponse maps a stored file to its public representation
func ToUploadResponse(f *domain.StoredFile) UploadResponse {
	return UploadResponse{
		Filename:    f.Name,
		Message:     "upload ok",
		Path:        uploadsPath + f.Name,
		SizeBytes:   f.Size,
		ContentType: f.ContentType,
	}
}
