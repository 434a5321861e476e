package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"server/internal/idphoto"
	"server/internal/middleware"
)

type idPhotoResponse struct {
	Image       string `json:"image"`
	MIMEType    string `json:"mime_type"`
	AspectRatio string `json:"aspect_ratio"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

type statusMessagesResponse struct {
	Locale   string   `json:"locale"`
	Messages []string `json:"messages"`
}

// IDPhotoCreate accepts a multipart photo upload and responds with the
// generated ID photo, either as base64 JSON or as a file attachment when
// the download field is set.
func (a *App) IDPhotoCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large",
				fmt.Sprintf("photo exceeds the %d byte upload limit", maxErr.Limit))
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "expected multipart form data with a photo field")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "photo field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "could not read uploaded photo")
		return
	}

	meta, err := idphoto.SniffImage(data)
	if err != nil {
		if errors.Is(err, idphoto.ErrUnsupportedImage) {
			a.error(w, http.StatusUnsupportedMediaType, "unsupported_media_type",
				"photo must be a PNG, JPEG, or WebP image")
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "photo is not a decodable image")
		return
	}

	aspect := strings.TrimSpace(r.FormValue("aspect_ratio"))
	if aspect == "" {
		aspect = idphoto.DefaultAspectRatio
	}
	if !idphoto.ValidAspectRatio(aspect) {
		a.error(w, http.StatusBadRequest, "bad_request", "aspect_ratio must look like 3:4")
		return
	}

	result, err := a.Photos.Transform(r.Context(), idphoto.TransformRequest{
		Image: idphoto.SourceImage{
			Data:     data,
			MIMEType: meta.MIMEType,
			Filename: header.Filename,
		},
		AspectRatio: aspect,
		RequestID:   middleware.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		if errors.Is(err, idphoto.ErrMissingImage) || errors.Is(err, idphoto.ErrInvalidAspectRatio) {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		a.Logger.Error().
			Err(err).
			Str("aspect_ratio", aspect).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("id photo transform failed")
		a.error(w, http.StatusBadGateway, "transform_failed", err.Error())
		return
	}

	if wantsDownload(r.FormValue("download")) {
		w.Header().Set("Content-Type", result.MIMEType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s", idphoto.FileName(result.AspectRatio, result.MIMEType)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Data)
		return
	}

	resp := idPhotoResponse{
		Image:       base64.StdEncoding.EncodeToString(result.Data),
		MIMEType:    result.MIMEType,
		AspectRatio: result.AspectRatio,
	}
	if outMeta, err := idphoto.SniffImage(result.Data); err == nil {
		resp.Width = outMeta.Width
		resp.Height = outMeta.Height
	}
	a.json(w, http.StatusOK, resp)
}

// IDPhotoStatusMessages returns the localized progress lines a client can
// rotate through while a transformation is in flight.
func (a *App) IDPhotoStatusMessages(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, statusMessagesResponse{
		Locale:   locale,
		Messages: idphoto.StatusMessages(locale),
	})
}

func wantsDownload(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
