// services/transport_service.go
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

// TransportService pushes stop selections to the transport panel
type TransportService struct {
	baseURL    string
	httpClient *http.Client
}

// NewTransportService creates a new Transport service instance
func NewTransportService() *TransportService {
	baseURL := os.Getenv("TRANSPORT_PANEL_URL")
	if baseURL == "" {
		log.Printf("WARNING: TRANSPORT_PANEL_URL is not set; transport sync will fail")
	}

	return &TransportService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateStop issues one transport-create call for a single stop,
// forwarding the caller's Authorization header. Returns the raw request
// and response bodies for auditing.
func (s *TransportService) CreateStop(ctx context.Context, payload models.TransportCreateRequest, authorization string) (string, string, error) {
	url := s.baseURL + "/transport/create"

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal transport request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return string(reqBody), "", fmt.Errorf("failed to create transport request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return string(reqBody), "", fmt.Errorf("transport create call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return string(reqBody), "", fmt.Errorf("failed to read transport response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return string(reqBody), string(respBody),
			fmt.Errorf("transport create returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return string(reqBody), string(respBody), nil
}
