package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseTwoDigitYearID(t *testing.T) {
	id, err := ParseTwoDigitYearID("24-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 2425 {
		t.Fatalf("expected 2425, got %d", id)
	}

	if _, err := ParseTwoDigitYearID("n/a"); err == nil {
		t.Fatal("expected error for a short name without digits")
	}
}

func TestGetAcademicYearID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ac-academic-years/12" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"attributes":{"short_name_two_digit":"24-25"}}}`))
	}))
	defer server.Close()

	svc := &MDMService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	id, err := svc.GetAcademicYearID(context.Background(), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 2425 {
		t.Fatalf("expected 2425, got %d", id)
	}
}

func TestGetAcademicYearIDUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := &MDMService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := svc.GetAcademicYearID(context.Background(), 12); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}
