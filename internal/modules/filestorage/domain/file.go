package domain

import "time"

// StoredFile is the result of a successful upload
type StoredFile struct {
	Name        string
	Size        int64
	ContentType string
}

// Object describes a stored file opened for reading
type Object struct {
	Name        string
	Size        int64
	ContentType string
	ModTime     time.Time
}
