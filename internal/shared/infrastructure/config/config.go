package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	FileStorage FileStorageConfig
	Log         LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `validate:"required,numeric"`
	AllowedOrigins  string        `validate:"required"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// FileStorageConfig holds file storage configuration
type FileStorageConfig struct {
	Driver         string `validate:"oneof=local s3"`
	UploadDir      string `validate:"required_if=Driver local"`
	MaxUploadBytes int64  `validate:"gt=0"`
	S3Region       string `validate:"required_if=Driver s3"`
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3BucketName   string `validate:"required_if=Driver s3"`
	S3Prefix       string
	S3UseSSL       bool
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string `validate:"oneof=debug info warn error"`
	Development bool
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
			ReadTimeout:     parseDuration(getEnv("READ_TIMEOUT", "15s"), 15*time.Second),
			WriteTimeout:    parseDuration(getEnv("WRITE_TIMEOUT", "60s"), 60*time.Second),
			IdleTimeout:     parseDuration(getEnv("IDLE_TIMEOUT", "60s"), 60*time.Second),
			ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		},
		FileStorage: FileStorageConfig{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", DriverLocal)),
			UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadBytes: parseInt64(getEnv("MAX_UPLOAD_BYTES", ""), 32<<20),
			S3Region:       getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:     getEnv("S3_ENDPOINT", ""),
			S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
			S3BucketName:   getEnv("S3_BUCKET", ""),
			S3Prefix:       getEnv("S3_PREFIX", "uploads"),
			S3UseSSL:       parseBool(getEnv("S3_USE_SSL", "true"), true),
		},
		Log: LogConfig{
			Level:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Development: parseBool(getEnv("LOG_DEVELOPMENT", "false"), false),
		},
	}
}

// LoadEnvFile loads variables from a .env file into the process environment.
// Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks the loaded configuration
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

func parseInt64(value string, defaultValue int64) int64 {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	return defaultValue
}

func parseBool(value string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}
