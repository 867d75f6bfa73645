package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saransh1220/image-depot/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewModule_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	m, err := NewModule(context.Background(), config.FileStorageConfig{
		Driver:         config.DriverLocal,
		UploadDir:      dir,
		MaxUploadBytes: 1 << 20,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, m.Service())
	require.NotNil(t, m.Handler())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	names, err := m.Service().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	assert.NoError(t, m.Close())
}

func TestNewModule_S3(t *testing.T) {
	m, err := NewModule(context.Background(), config.FileStorageConfig{
		Driver:       config.DriverS3,
		S3Region:     "us-east-1",
		S3Endpoint:   "127.0.0.1:1",
		S3AccessKey:  "key",
		S3SecretKey:  "secret",
		S3BucketName: "images",
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, m.Service())
	assert.NoError(t, m.Close())
}

func TestNewModule_Errors(t *testing.T) {
	_, err := NewModule(context.Background(), config.FileStorageConfig{Driver: config.DriverS3}, nil)
	require.Error(t, err)

	_, err = NewModule(context.Background(), config.FileStorageConfig{Driver: "ftp"}, nil)
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = NewModule(context.Background(), config.FileStorageConfig{Driver: config.DriverLocal, UploadDir: file}, nil)
	require.Error(t, err)
}
