package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

type captureTransport struct {
	responses   map[string]responseStub
	lastBody    []byte
	lastHeaders http.Header
}

type responseStub struct {
	status int
	body   []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
	}
	c.lastHeaders = req.Header.Clone()
	if stub, ok := c.responses[req.URL.Path]; ok {
		return stub.toResponse(), nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader("not found")),
	}, nil
}

func (c *captureTransport) setJSONResponse(path string, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{status: http.StatusOK, body: body}
}

func (c *captureTransport) setErrorResponse(path string, status int, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{status: status, body: body}
}

func (s responseStub) toResponse() *http.Response {
	return &http.Response{
		StatusCode: s.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}

func newTestClient(t *testing.T, transport http.RoundTripper) *Client {
	t.Helper()
	client, err := NewClient(Options{
		APIKey:     "test-key",
		Model:      "gemini-2.5-flash-image",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestEditImagePayload(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1beta/models/gemini-2.5-flash-image:generateContent", map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"inlineData": map[string]any{"data": "QUJD", "mimeType": "image/png"}},
					},
				},
			},
		},
	})

	client := newTestClient(t, transport)
	source := []byte{0x01, 0x02, 0x03}
	result, err := client.EditImage(context.Background(), EditRequest{
		ImageData:   source,
		MIMEType:    "image/jpeg",
		Instruction: "make it an id photo",
	})
	if err != nil {
		t.Fatalf("edit image: %v", err)
	}
	if result == nil || len(result.Data) == 0 {
		t.Fatalf("expected decoded image data")
	}
	if transport.lastBody == nil {
		t.Fatalf("expected payload to be captured")
	}
	if got := transport.lastHeaders.Get("x-goog-api-key"); got != "test-key" {
		t.Fatalf("x-goog-api-key = %q, want %q", got, "test-key")
	}

	var payload map[string]any
	if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	contents := payload["contents"].([]any)
	if len(contents) != 1 {
		t.Fatalf("contents len = %d, want 1", len(contents))
	}
	parts := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 2 {
		t.Fatalf("parts len = %d, want 2", len(parts))
	}
	inline, ok := parts[0].(map[string]any)["inlineData"].(map[string]any)
	if !ok {
		t.Fatalf("first part should carry inline data")
	}
	if mime := inline["mimeType"]; mime != "image/jpeg" {
		t.Fatalf("mimeType = %v, want image/jpeg", mime)
	}
	decoded, err := base64.StdEncoding.DecodeString(inline["data"].(string))
	if err != nil {
		t.Fatalf("inline data not base64: %v", err)
	}
	if !bytes.Equal(decoded, source) {
		t.Fatalf("inline data mismatch: %v vs %v", decoded, source)
	}
	if text := parts[1].(map[string]any)["text"]; text != "make it an id photo" {
		t.Fatalf("second part text = %v, want instruction", text)
	}
	config := payload["generationConfig"].(map[string]any)
	modalities := config["responseModalities"].([]any)
	if len(modalities) != 2 || modalities[0] != "IMAGE" || modalities[1] != "TEXT" {
		t.Fatalf("responseModalities = %v, want [IMAGE TEXT]", modalities)
	}
}

func TestEditImageReturnsFirstInlinePart(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1beta/models/gemini-2.5-flash-image:generateContent", map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"text": "ok"},
						map[string]any{"inlineData": map[string]any{"data": "QUJD", "mimeType": "image/png"}},
						map[string]any{"inlineData": map[string]any{"data": "WFla", "mimeType": "image/webp"}},
					},
				},
			},
		},
	})

	client := newTestClient(t, transport)
	result, err := client.EditImage(context.Background(), EditRequest{
		ImageData:   []byte{0xff},
		MIMEType:    "image/png",
		Instruction: "edit",
	})
	if err != nil {
		t.Fatalf("edit image: %v", err)
	}
	if string(result.Data) != "ABC" {
		t.Fatalf("data = %q, want %q", result.Data, "ABC")
	}
	if result.MIMEType != "image/png" {
		t.Fatalf("mime type = %q, want image/png", result.MIMEType)
	}
}

func TestEditImageWalksCandidatesInOrder(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1beta/models/gemini-2.5-flash-image:generateContent", map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": "commentary only"}},
				},
			},
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"inlineData": map[string]any{"data": "REVG", "mimeType": "image/jpeg"}},
					},
				},
			},
		},
	})

	client := newTestClient(t, transport)
	result, err := client.EditImage(context.Background(), EditRequest{
		ImageData:   []byte{0xff},
		MIMEType:    "image/png",
		Instruction: "edit",
	})
	if err != nil {
		t.Fatalf("edit image: %v", err)
	}
	if string(result.Data) != "DEF" {
		t.Fatalf("data = %q, want %q", result.Data, "DEF")
	}
}

func TestEditImageNoInlineData(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1beta/models/gemini-2.5-flash-image:generateContent", map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": "I cannot edit this image."}},
				},
			},
		},
	})

	client := newTestClient(t, transport)
	_, err := client.EditImage(context.Background(), EditRequest{
		ImageData:   []byte{0xff},
		MIMEType:    "image/png",
		Instruction: "edit",
	})
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("error = %v, want ErrNoImage", err)
	}
}

func TestEditImageUndecodableInlineData(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setJSONResponse("/v1beta/models/gemini-2.5-flash-image:generateContent", map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"inlineData": map[string]any{"data": "!!not-base64!!", "mimeType": "image/png"}},
					},
				},
			},
		},
	})

	client := newTestClient(t, transport)
	_, err := client.EditImage(context.Background(), EditRequest{
		ImageData:   []byte{0xff},
		MIMEType:    "image/png",
		Instruction: "edit",
	})
	if err == nil || !strings.Contains(err.Error(), "decode inline image") {
		t.Fatalf("error = %v, want decode inline image failure", err)
	}
}

func TestEditImageServiceError(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	transport.setErrorResponse("/v1beta/models/gemini-2.5-flash-image:generateContent", http.StatusBadRequest, map[string]any{
		"error": map[string]any{"code": 400, "message": "invalid argument", "status": "INVALID_ARGUMENT"},
	})

	client := newTestClient(t, transport)
	_, err := client.EditImage(context.Background(), EditRequest{
		ImageData:   []byte{0xff},
		MIMEType:    "image/png",
		Instruction: "edit",
	})
	if err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status 400") || !strings.Contains(err.Error(), "invalid argument") {
		t.Fatalf("error = %v, want status and message surfaced", err)
	}
}

func TestEditImageTransportError(t *testing.T) {
	client := newTestClient(t, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))
	_, err := client.EditImage(context.Background(), EditRequest{
		ImageData:   []byte{0xff},
		MIMEType:    "image/png",
		Instruction: "edit",
	})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("error = %v, want transport failure surfaced", err)
	}
}

func TestEditImageMissingCredentials(t *testing.T) {
	client, err := NewClient(Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.HasCredentials() {
		t.Fatalf("expected no credentials")
	}
	_, err = client.EditImage(context.Background(), EditRequest{
		ImageData:   []byte{0xff},
		Instruction: "edit",
	})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Options{APIKey: " key "})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.Model() != "gemini-2.5-flash-image" {
		t.Fatalf("model = %q, want default", client.Model())
	}
	if client.baseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Fatalf("base url = %q, want default", client.baseURL)
	}
	if client.apiKey != "key" {
		t.Fatalf("api key = %q, want trimmed", client.apiKey)
	}
}
