package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"key": "value"})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Unexpected Content-Type %q", ct)
	}
}

func TestJSONError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	JSONError(w, http.StatusNotFound, "Book not found: abc", Extra{})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var env ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if env.Status != 404 {
		t.Errorf("Expected status field 404, got %d", env.Status)
	}
	if env.Error != "Not Found" {
		t.Errorf("Expected reason phrase, got %q", env.Error)
	}
	if env.Message != "Book not found: abc" {
		t.Errorf("Unexpected message %q", env.Message)
	}
	ts, err := time.Parse(time.RFC3339Nano, env.Timestamp)
	if err != nil {
		t.Fatalf("Timestamp is not RFC-3339: %q", env.Timestamp)
	}
	if time.Since(ts) > time.Minute {
		t.Errorf("Timestamp not current: %v", ts)
	}
}

func TestJSONError_OptionalFieldsOmitted(t *testing.T) {
	w := httptest.NewRecorder()

	JSONError(w, http.StatusBadRequest, "Validation failed", Extra{Fields: map[string]string{"title": "must not be blank"}})

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if _, present := body["value"]; present {
		t.Error("Empty value must be omitted")
	}
	if _, present := body["detail"]; present {
		t.Error("Empty detail must be omitted")
	}
	fields, ok := body["fields"].(map[string]interface{})
	if !ok || fields["title"] != "must not be blank" {
		t.Errorf("Expected fields map, got %v", body["fields"])
	}
}
