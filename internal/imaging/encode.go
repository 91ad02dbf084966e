// Package imaging checks, downscales and encodes images for the vision API.
package imaging

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Veraticus/picsort/internal/common"
)

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsSupported reports whether name has a supported image extension.
// The check is case-insensitive.
func IsSupported(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Options controls how images are prepared before upload.
type Options struct {
	// MaxWidth downscales wider images; zero sends the original bytes.
	MaxWidth    int
	JPEGQuality int
}

// Encoded is an image ready to embed in a request.
type Encoded struct {
	MIMEType string
	DataURL  string
	Size     int
	Resized  bool
}

// Encode prepares raw image bytes for transport as a base64 data URL.
func Encode(data []byte, opts Options) (Encoded, error) {
	if len(data) == 0 {
		return Encoded{}, fmt.Errorf("%w: empty file", common.ErrUnsupportedImage)
	}

	resized := false
	if opts.MaxWidth > 0 {
		out, changed, err := Downscale(data, opts.MaxWidth, opts.JPEGQuality)
		if err != nil {
			return Encoded{}, err
		}
		data, resized = out, changed
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Encoded{}, fmt.Errorf("%w: content is %s", common.ErrUnsupportedImage, mtype.String())
	}

	return Encoded{
		MIMEType: mtype.String(),
		DataURL:  DataURL(data, mtype.String()),
		Size:     len(data),
		Resized:  resized,
	}, nil
}

// DataURL encodes data as a base64 data URL.
func DataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
