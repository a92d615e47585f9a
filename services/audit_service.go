// services/audit_service.go
package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/schoolpath/admissions_backend/models"
	"github.com/schoolpath/admissions_backend/repositories"
)

// AuditService appends one entry per outbound call. Writes are
// best-effort: a failed audit insert is logged and swallowed, never
// rolling back the business operation it describes.
type AuditService struct {
	auditLogs auditLogStore
}

func NewAuditService(auditLogs *repositories.AuditLogRepository) *AuditService {
	return &AuditService{auditLogs: auditLogs}
}

// Record appends one audit entry for an outbound call
func (s *AuditService) Record(ctx context.Context, tableName, requestBody, responseBody, operationName, createdBy, url, method, sourceService, recordID string) {
	entry := &models.AuditLogEntry{
		CorrelationID: uuid.NewString(),
		TableName:     tableName,
		RequestBody:   requestBody,
		ResponseBody:  responseBody,
		OperationName: operationName,
		CreatedBy:     createdBy,
		URL:           url,
		Method:        method,
		SourceService: sourceService,
		RecordID:      recordID,
	}

	if err := s.auditLogs.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit entry for %s: %v", operationName, err)
	}
}
