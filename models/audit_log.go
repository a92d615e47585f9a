// models/audit_log.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLogEntry records one outbound call to an external service. Writing
// an entry is best-effort; a failed audit write never rolls back the
// business operation it describes.
type AuditLogEntry struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CorrelationID string             `json:"correlationId,omitempty" bson:"correlation_id,omitempty"`
	TableName     string             `json:"tableName" bson:"table_name"`
	RequestBody   string             `json:"requestBody,omitempty" bson:"request_body,omitempty"`
	ResponseBody  string             `json:"responseBody,omitempty" bson:"response_body,omitempty"`
	OperationName string             `json:"operationName" bson:"operation_name"`
	CreatedBy     string             `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	URL           string             `json:"url" bson:"url"`
	Method        string             `json:"method" bson:"method"`
	SourceService string             `json:"sourceService" bson:"source_service"`
	RecordID      string             `json:"recordId,omitempty" bson:"record_id,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
}
