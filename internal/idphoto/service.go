package idphoto

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"server/internal/infra"
	"server/internal/providers/genai"
)

// imageEditor is the slice of the Gemini client the service depends on.
type imageEditor interface {
	EditImage(ctx context.Context, req genai.EditRequest) (*genai.ImageResult, error)
	HasCredentials() bool
	Model() string
}

var _ imageEditor = (*genai.Client)(nil)

// Service turns uploaded photographs into professional ID photos. It is
// stateless: every call assembles a fresh request and nothing is remembered
// between calls.
type Service struct {
	editor imageEditor
	logger *infra.Logger
}

// NewService wires the model-backed editor into a transformation service.
func NewService(editor imageEditor, logger *infra.Logger) (*Service, error) {
	if editor == nil {
		return nil, errors.New("idphoto: editor is required")
	}
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{editor: editor, logger: logger}, nil
}

// Ready reports whether the editor holds credentials for remote calls.
func (s *Service) Ready() bool {
	return s.editor.HasCredentials()
}

// Model returns the model identifier behind the editor.
func (s *Service) Model() string {
	return s.editor.Model()
}

// Transform sends the source photo through the model once and returns the
// generated ID photo. Input problems are reported as plain errors before any
// remote call is made; every failure past that point is a *TransformError.
func (s *Service) Transform(ctx context.Context, req TransformRequest) (*Result, error) {
	if len(req.Image.Data) == 0 {
		return nil, ErrMissingImage
	}
	aspect := strings.TrimSpace(req.AspectRatio)
	if aspect == "" {
		aspect = DefaultAspectRatio
	}
	if !ValidAspectRatio(aspect) {
		return nil, ErrInvalidAspectRatio
	}

	edited, err := s.editor.EditImage(ctx, genai.EditRequest{
		ImageData:   req.Image.Data,
		MIMEType:    req.Image.MIMEType,
		Instruction: BuildInstruction(aspect),
		RequestID:   req.RequestID,
	})
	if err != nil {
		if errors.Is(err, genai.ErrNoImage) {
			return nil, &TransformError{Cause: errors.New(noImageMessage)}
		}
		return nil, &TransformError{Cause: err}
	}
	if edited == nil || len(edited.Data) == 0 {
		return nil, &TransformError{Cause: errors.New(noImageMessage)}
	}

	mimeType := strings.TrimSpace(edited.MIMEType)
	if mimeType == "" {
		mimeType = "image/png"
	}

	s.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", s.editor.Model()).
		Str("aspect_ratio", aspect).
		Int("bytes", len(edited.Data)).
		Msg("idphoto: transformed photo")

	return &Result{Data: edited.Data, MIMEType: mimeType, AspectRatio: aspect}, nil
}
