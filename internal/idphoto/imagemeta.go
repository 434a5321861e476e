package idphoto

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// allowedUploadTypes is the set of source formats the model accepts.
var allowedUploadTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// ImageMeta describes a sniffed image.
type ImageMeta struct {
	MIMEType string
	Width    int
	Height   int
}

// SniffImage detects the content type from the raw bytes and decodes the
// image dimensions. Client-supplied content types are never trusted.
func SniffImage(data []byte) (*ImageMeta, error) {
	if len(data) == 0 {
		return nil, ErrMissingImage
	}
	mimeType := http.DetectContentType(data)
	if _, ok := allowedUploadTypes[mimeType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("idphoto: decode image config: %w", err)
	}
	return &ImageMeta{MIMEType: mimeType, Width: cfg.Width, Height: cfg.Height}, nil
}
