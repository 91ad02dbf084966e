package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // registers the GIF decoder
	"image/jpeg"
	_ "image/png" // registers the PNG decoder

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp" // registers the WebP decoder

	"github.com/Veraticus/picsort/internal/common"
)

const defaultJPEGQuality = 85

// Downscale shrinks images wider than maxWidth, keeping the aspect ratio,
// and re-encodes them as JPEG. Images already narrow enough are returned
// unchanged with changed=false.
func Downscale(data []byte, maxWidth, quality int) (out []byte, changed bool, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("%w: decode header: %v", common.ErrUnsupportedImage, err)
	}
	if maxWidth <= 0 || cfg.Width <= maxWidth {
		return data, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("%w: decode image: %v", common.ErrUnsupportedImage, err)
	}

	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}

	height := uint(float64(maxWidth) * float64(cfg.Height) / float64(cfg.Width))
	if height == 0 {
		height = 1
	}
	resized := resize.Resize(uint(maxWidth), height, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, false, fmt.Errorf("encode resized image: %w", err)
	}
	return buf.Bytes(), true, nil
}
