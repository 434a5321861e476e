package idphoto

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultAspectRatio is applied when the caller does not pick one.
const DefaultAspectRatio = "3:4"

// SourceImage is the uploaded photograph to be reworked.
type SourceImage struct {
	Data     []byte
	MIMEType string
	Filename string
}

// TransformRequest carries one transformation's inputs.
type TransformRequest struct {
	Image       SourceImage
	AspectRatio string
	RequestID   string
}

// Result is the generated ID photo.
type Result struct {
	Data        []byte
	MIMEType    string
	AspectRatio string
}

// ParseAspectRatio splits a "W:H" ratio into its terms. Both terms must be
// positive integers; anything else is rejected.
func ParseAspectRatio(aspect string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(aspect), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidAspectRatio
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w <= 0 {
		return 0, 0, ErrInvalidAspectRatio
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || h <= 0 {
		return 0, 0, ErrInvalidAspectRatio
	}
	return w, h, nil
}

// ValidAspectRatio reports whether the ratio is a well-formed "W:H" pair.
func ValidAspectRatio(aspect string) bool {
	_, _, err := ParseAspectRatio(aspect)
	return err == nil
}

// FileName derives a download filename from the ratio and the generated
// image's content type, e.g. "id-photo-3x4.png".
func FileName(aspectRatio, mimeType string) string {
	ratio := strings.ReplaceAll(strings.TrimSpace(aspectRatio), ":", "x")
	if ratio == "" {
		ratio = strings.ReplaceAll(DefaultAspectRatio, ":", "x")
	}
	ext := "png"
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg":
		ext = "jpg"
	case "image/webp":
		ext = "webp"
	}
	return fmt.Sprintf("id-photo-%s.%s", ratio, ext)
}
