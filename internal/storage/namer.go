package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// extByType maps each accepted upload type to the extension used when
// the client filename carries none. It doubles as the MIME allow-list.
var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"video/mp4":  ".mp4",
}

// Allowed reports whether a declared content type may be uploaded.
func Allowed(mimeType string) bool {
	_, ok := extByType[mimeType]
	return ok
}

// NewName builds a collision-resistant on-disk filename from a client
// filename and its declared content type: `{base}_{uuid}{ext}`. The
// extension present in the client name wins; the MIME table fills in
// when there is none. NewName always returns a usable name.
func NewName(original, mimeType string) string {
	ext := filepath.Ext(original)

	base := Sanitize(strings.TrimSuffix(original, ext))
	if base == "" {
		base = "file"
	}

	// The extension goes into URLs verbatim, so it gets the same
	// treatment as the base. A leading dot always survives Sanitize.
	if ext == "" {
		ext = extByType[mimeType]
	} else {
		ext = Sanitize(ext)
	}

	return base + "_" + uuid.NewString() + ext
}
