package domain

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// SniffLen is how many leading bytes DetectContentType looks at.
const SniffLen = 512

// ContentTypeByExtension returns the media type registered for name's extension,
// or "" when the extension is unknown.
func ContentTypeByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// DetectContentType prefers the extension and falls back to sniffing head.
func DetectContentType(name string, head []byte) string {
	if ct := ContentTypeByExtension(name); ct != "" {
		return ct
	}
	return http.DetectContentType(head)
}
