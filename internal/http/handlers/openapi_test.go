package handlers

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOpenAPISpecIsValidJSON(t *testing.T) {
	if !json.Valid(openAPISpec) {
		t.Fatal("embedded openapi.json is not valid JSON")
	}
	doc := string(openAPISpec)
	for _, path := range []string{"/v1/id-photos", "/v1/id-photos/status-messages", "/v1/healthz"} {
		if !strings.Contains(doc, `"`+path+`"`) {
			t.Fatalf("openapi.json missing path %s", path)
		}
	}
}
