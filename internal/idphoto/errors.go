package idphoto

import (
	"errors"
	"strings"
)

// noImageMessage is the user-facing cause when the model answers without an
// image part.
const noImageMessage = "The AI did not return an image. Please try a different photo."

// failurePrefix opens every transformation failure surfaced to callers.
const failurePrefix = "Failed to generate ID photo: "

// genericCause stands in when the underlying failure has no usable description.
const genericCause = "unknown error"

var (
	ErrMissingImage       = errors.New("idphoto: source image is required")
	ErrUnsupportedImage   = errors.New("idphoto: unsupported image type")
	ErrInvalidAspectRatio = errors.New("idphoto: invalid aspect ratio")
)

// TransformError is the single failure shape Transform returns once a remote
// call has been attempted. Its message always reads
// "Failed to generate ID photo: <cause>".
type TransformError struct {
	Cause error
}

func (e *TransformError) Error() string {
	cause := genericCause
	if e != nil && e.Cause != nil {
		if msg := strings.TrimSpace(e.Cause.Error()); msg != "" {
			cause = msg
		}
	}
	return failurePrefix + cause
}

func (e *TransformError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
