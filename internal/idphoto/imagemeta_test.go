package idphoto

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegFixture(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// webpFixture is a hand-assembled RIFF container holding a minimal VP8L
// header for a 1x1 lossless image.
func webpFixture() []byte {
	out := append([]byte("RIFF"), 18, 0, 0, 0)
	out = append(out, "WEBP"...)
	out = append(out, "VP8L"...)
	out = append(out, 5, 0, 0, 0)
	out = append(out, 0x2f, 0x00, 0x00, 0x00, 0x00)
	return append(out, 0)
}

func TestSniffImagePNG(t *testing.T) {
	meta, err := SniffImage(pngFixture(t, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, "image/png", meta.MIMEType)
	assert.Equal(t, 3, meta.Width)
	assert.Equal(t, 4, meta.Height)
}

func TestSniffImageJPEG(t *testing.T) {
	meta, err := SniffImage(jpegFixture(t, 6, 8))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", meta.MIMEType)
	assert.Equal(t, 6, meta.Width)
	assert.Equal(t, 8, meta.Height)
}

func TestSniffImageWebP(t *testing.T) {
	meta, err := SniffImage(webpFixture())
	require.NoError(t, err)
	assert.Equal(t, "image/webp", meta.MIMEType)
	assert.Equal(t, 1, meta.Width)
	assert.Equal(t, 1, meta.Height)
}

func TestSniffImageRejectsUnsupportedTypes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "plain text", data: []byte("definitely not an image")},
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")},
		{name: "pdf", data: []byte("%PDF-1.4 something")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SniffImage(tc.data)
			assert.ErrorIs(t, err, ErrUnsupportedImage)
		})
	}
}

func TestSniffImageRejectsCorruptImage(t *testing.T) {
	// A valid PNG signature with nothing behind it.
	_, err := SniffImage([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedImage)
}

func TestSniffImageEmpty(t *testing.T) {
	_, err := SniffImage(nil)
	assert.ErrorIs(t, err, ErrMissingImage)
}
