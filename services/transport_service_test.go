package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/schoolpath/admissions_backend/models"
)

func TestCreateStop(t *testing.T) {
	var received models.TransportCreateRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transport/create" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	svc := &TransportService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	payload := models.TransportCreateRequest{
		EnquiryNo: "ENQ-1001",
		ShiftID:   1,
		StopID:    21,
		RouteID:   8,
		FeesID:    501,
	}

	reqBody, respBody, err := svc.CreateStop(context.Background(), payload, "Bearer token-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("expected the caller's Authorization header forwarded, got %q", gotAuth)
	}
	if received != payload {
		t.Fatalf("expected payload %+v sent, got %+v", payload, received)
	}
	if reqBody == "" || respBody == "" {
		t.Fatal("expected raw request and response bodies for auditing")
	}
}

func TestCreateStopErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "route not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := &TransportService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	if _, _, err := svc.CreateStop(context.Background(), models.TransportCreateRequest{}, ""); err == nil {
		t.Fatal("expected error on 404 response")
	}
}
