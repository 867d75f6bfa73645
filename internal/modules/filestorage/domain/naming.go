package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the sortable prefix prepended to every stored name.
const TimestampLayout = "20060102-150405"

const defaultBaseName = "image"

// SanitizeFilename reduces an untrusted client filename to [A-Za-z0-9._-].
// Only the final path component is kept; both slash styles count as separators.
func SanitizeFilename(raw string, now time.Time) string {
	if i := strings.LastIndexAny(raw, `/\`); i >= 0 {
		raw = raw[i+1:]
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if isSafeRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	base := b.String()
	if base == "" {
		return fmt.Sprintf("file_%d", now.Unix())
	}
	return base
}

// StoredName composes the name an upload is written under:
// YYYYMMDD-HHMMSS_<sanitized>. attempt > 1 disambiguates uploads of the same
// name within the same second by appending _N before the extension, so the
// first upload still sorts ahead of its retries.
func StoredName(raw string, now time.Time, attempt int) string {
	if raw == "" {
		raw = defaultBaseName
	}
	base := SanitizeFilename(raw, now)
	if attempt > 1 {
		base = withAttempt(base, attempt)
	}
	return now.Format(TimestampLayout) + "_" + base
}

func withAttempt(base string, attempt int) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if strings.Trim(stem, ".") == "" {
		stem, ext = base, ""
	}
	return fmt.Sprintf("%s_%d%s", stem, attempt, ext)
}

// ValidateName reports whether name can address a file directly inside the
// upload directory. Anything that could resolve elsewhere is ErrNotFound.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrNotFound
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrNotFound
	}
	if !filepath.IsLocal(name) {
		return ErrNotFound
	}
	return nil
}

// IsImageContentType reports whether ct names an image/* media type.
func IsImageContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.HasPrefix(ct, "image/") && len(ct) > len("image/")
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
