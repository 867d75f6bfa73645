package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	upload_http "github.com/saransh1220/image-depot/internal/modules/filestorage/interfaces/http"
)

// RouterConfig holds the handlers needed for routing
type RouterConfig struct {
	UploadHandler *upload_http.UploadHandler
	// MetricsHandler serves /metrics; nil means the default Prometheus registry
	MetricsHandler http.Handler
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) *Router {
	router := NewRouter()

	metrics := config.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	// Health Check
	router.HandleFunc("GET /{$}", config.UploadHandler.Health)
	router.HandleFunc("GET /health", config.UploadHandler.Health)

	// Prometheus Metrics Endpoint
	router.Handle("GET /metrics", metrics)

	// Upload Routes
	router.HandleFunc("GET /uploads", config.UploadHandler.List)
	router.HandleFunc("GET /uploads/{filename}", config.UploadHandler.Get)
	router.HandleFunc("POST /upload", config.UploadHandler.Upload)

	return router
}
