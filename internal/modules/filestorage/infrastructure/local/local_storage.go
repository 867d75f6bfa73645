package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/saransh1220/image-depot/internal/modules/filestorage/domain"
)

const (
	tempDir    = ".tmp"
	tempSuffix = ".part"
)

// LocalStorage implements FileStorage on a single flat directory.
// All access goes through an os.Root so nothing outside basePath is reachable.
type LocalStorage struct {
	basePath string
	root     *os.Root
}

// NewLocalStorage creates basePath if needed and clears partial writes left
// behind by a previous process.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, tempDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	root, err := os.OpenRoot(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage directory: %w", err)
	}

	l := &LocalStorage{basePath: basePath, root: root}
	l.sweepTemp()
	return l, nil
}

// Path returns the directory backing the store
func (l *LocalStorage) Path() string {
	return l.basePath
}

// Close releases the directory handle
func (l *LocalStorage) Close() error {
	return l.root.Close()
}

// Put writes to a temp file and links it into place, so a stored name never
// points at a partially written file.
func (l *LocalStorage) Put(ctx context.Context, name string, r io.Reader, contentType string) (int64, error) {
	if err := domain.ValidateName(name); err != nil {
		return 0, fmt.Errorf("%w: object name %q", domain.ErrInvalidInput, name)
	}

	tmpName := filepath.Join(tempDir, uuid.NewString()+tempSuffix)
	f, err := l.root.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, domain.StorageError("create temp file", err)
	}
	defer l.root.Remove(tmpName)

	n, err := io.Copy(f, &contextReader{ctx: ctx, r: r})
	if err != nil {
		f.Close()
		return 0, domain.StorageError("write file", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return 0, domain.StorageError("sync file", err)
	}
	if err := f.Close(); err != nil {
		return 0, domain.StorageError("close file", err)
	}

	if err := l.root.Link(tmpName, name); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, domain.ErrExists
		}
		return 0, domain.StorageError("commit file", err)
	}

	return n, nil
}

// Open returns the named regular file. Directories, symlinks and anything
// that would resolve outside the store are reported as ErrNotFound.
func (l *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, *domain.Object, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, nil, err
	}

	info, err := l.root.Lstat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, domain.StorageError("stat file", err)
	}
	if !info.Mode().IsRegular() {
		return nil, nil, domain.ErrNotFound
	}

	f, err := l.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, domain.StorageError("open file", err)
	}

	contentType := domain.ContentTypeByExtension(name)
	if contentType == "" {
		if contentType, err = sniff(f); err != nil {
			f.Close()
			return nil, nil, domain.StorageError("read file", err)
		}
	}

	return f, &domain.Object{
		Name:        name,
		Size:        info.Size(),
		ContentType: contentType,
		ModTime:     info.ModTime(),
	}, nil
}

// List returns regular files directly inside the store, sorted by name
func (l *LocalStorage) List(ctx context.Context) ([]string, error) {
	entries, err := fs.ReadDir(l.root.FS(), ".")
	if err != nil {
		return nil, domain.StorageError("read directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (l *LocalStorage) sweepTemp() {
	entries, err := fs.ReadDir(l.root.FS(), tempDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), tempSuffix) {
			_ = l.root.Remove(filepath.Join(tempDir, e.Name()))
		}
	}
}

func sniff(f *os.File) (string, error) {
	head := make([]byte, domain.SniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return domain.DetectContentType("", head[:n]), nil
}

// contextReader stops a copy once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
