// services/mdm_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/schoolpath/admissions_backend/models"
)

// MDMService reads reference data from the master-data-management API
type MDMService struct {
	baseURL    string
	httpClient *http.Client
}

// NewMDMService creates a new MDM service instance
func NewMDMService() *MDMService {
	baseURL := os.Getenv("MDM_SERVICE_URL")
	if baseURL == "" {
		log.Printf("WARNING: MDM_SERVICE_URL is not set; academic-year lookups will fail")
	}

	return &MDMService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetAcademicYearID fetches the academic year and computes the two-digit
// id every fee line item carries
func (s *MDMService) GetAcademicYearID(ctx context.Context, academicYearID int) (int, error) {
	url := fmt.Sprintf("%s/api/ac-academic-years/%d", s.baseURL, academicYearID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create academic-year request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("academic-year lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read academic-year response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("academic-year lookup returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded models.AcademicYearResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return 0, fmt.Errorf("failed to decode academic-year response: %w", err)
	}

	return ParseTwoDigitYearID(decoded.Data.Attributes.ShortNameTwoDigit)
}

// ParseTwoDigitYearID turns the MDM short name (e.g. "24-25") into the
// numeric academic-year id used downstream (2425)
func ParseTwoDigitYearID(shortName string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, shortName)

	if digits == "" {
		return 0, fmt.Errorf("academic year short name %q carries no digits", shortName)
	}

	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("failed to parse academic year %q: %w", shortName, err)
	}
	return id, nil
}
