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

func TestBulkCreateStudentFees(t *testing.T) {
	var received models.FinanceBulkCreateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/student/fee/bulk-create" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"data":{"data":[{"id":501,"fee_type_id":15},{"id":502,"fee_type_id":2}]}}}`))
	}))
	defer server.Close()

	svc := &FinanceService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	lineItems := []models.FeeLineItem{
		{EnquiryNo: "ENQ-1001", FeeType: models.FeeSlugTransport},
		{EnquiryNo: "ENQ-1001", FeeType: models.FeeSlugCafeteria},
	}

	resp, reqBody, respBody, err := svc.BulkCreateStudentFees(context.Background(), lineItems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(received.StudentFees) != 2 {
		t.Fatalf("expected 2 line items sent, got %d", len(received.StudentFees))
	}
	if reqBody == "" || respBody == "" {
		t.Fatal("expected raw request and response bodies for auditing")
	}

	records := resp.FeeRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 fee records, got %d", len(records))
	}
	if records[0].ID != 501 || records[0].FeeTypeID != models.FeeTypeTransport {
		t.Fatalf("unexpected first fee record %+v", records[0])
	}
}

func TestBulkCreateStudentFeesNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	svc := &FinanceService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	_, _, respBody, err := svc.BulkCreateStudentFees(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
	if respBody == "" {
		t.Fatal("expected the error response body to be captured for auditing")
	}
}

func TestBulkCreateStudentFeesUndecodableBodyIsStillSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`created`))
	}))
	defer server.Close()

	svc := &FinanceService{
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	resp, _, _, err := svc.BulkCreateStudentFees(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.FeeRecords()) != 0 {
		t.Fatal("expected no fee records from an undecodable body")
	}
}
