package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithError(rec, http.StatusBadRequest, "Invalid form data", "parse failed", errors.New("boom"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "Invalid form data" {
		t.Errorf("body = %q, want %q", body, "Invalid form data")
	}
}

func TestRespondWithErrorWithoutUnderlyingError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithError(rec, http.StatusForbidden, "Invalid request", "", nil)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "Invalid request" {
		t.Errorf("body = %q, want %q", body, "Invalid request")
	}
}
