// services/finance_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/schoolpath/admissions_backend/models"
)

// FinanceService handles interactions with the Finance API
type FinanceService struct {
	baseURL    string
	httpClient *http.Client
}

// NewFinanceService creates a new Finance service instance
func NewFinanceService() *FinanceService {
	baseURL := os.Getenv("FINANCE_SERVICE_URL")
	if baseURL == "" {
		log.Printf("WARNING: FINANCE_SERVICE_URL is not set; fee requests will fail")
	}

	return &FinanceService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BulkCreateStudentFees sends the assembled line items to Finance in one
// bulk-create call. Returns the decoded response plus the raw request and
// response bodies for auditing.
func (s *FinanceService) BulkCreateStudentFees(ctx context.Context, lineItems []models.FeeLineItem) (*models.FinanceBulkCreateResponse, string, string, error) {
	url := s.baseURL + "/transactions/student/fee/bulk-create"

	reqBody, err := json.Marshal(models.FinanceBulkCreateRequest{StudentFees: lineItems})
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to marshal fee request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, string(reqBody), "", fmt.Errorf("failed to create fee request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, string(reqBody), "", fmt.Errorf("finance bulk-create call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, string(reqBody), "", fmt.Errorf("failed to read finance response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, string(reqBody), string(respBody),
			fmt.Errorf("finance bulk-create returned status %d: %s", resp.StatusCode, string(respBody))
	}

	// The response envelope varies between Finance versions; an undecodable
	// body is still a success, just with no fee records to reconcile
	var decoded models.FinanceBulkCreateResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		log.Printf("Warning: could not decode finance response: %v", err)
		return &models.FinanceBulkCreateResponse{}, string(reqBody), string(respBody), nil
	}

	return &decoded, string(reqBody), string(respBody), nil
}
