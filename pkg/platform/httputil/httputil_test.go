package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "maintain/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("pq: relation missing"), dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error_message"] != "Internal server error" {
			t.Fatalf("expected generic message, got %q", body["error_message"])
		}
	})

	t.Run("unclassified error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("boom"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})

	t.Run("not found carries message and numeric code", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "Category 'Planning' not found."))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error_message"] != "Category 'Planning' not found." {
			t.Fatalf("unexpected error_message %q", body["error_message"])
		}
		if body["error_code"] != float64(http.StatusNotFound) {
			t.Fatalf("expected error_code 404, got %v", body["error_code"])
		}
	})

	t.Run("external code wins over status", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Cannot change local-land-charge field").WithExternalCode("U100"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error_code"] != "U100" {
			t.Fatalf("expected error_code U100, got %v", body["error_code"])
		}
	})
}
