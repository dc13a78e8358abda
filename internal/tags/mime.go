package tags

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// MIMETypeForImage maps an image path to the MIME type stored in the APIC
// frame. Unknown extensions fall back to image/jpeg with known set to false.
func MIMETypeForImage(path string) (mimeType string, known bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return mimeJPEG, true
	case ".png":
		return mimePNG, true
	default:
		return mimeJPEG, false
	}
}

// sniffImage reports the MIME type detected from the image content and
// whether it agrees with the declared type.
func sniffImage(data []byte, declared string) (detected string, matches bool) {
	m := mimetype.Detect(data)
	return m.String(), m.Is(declared)
}
