// models/enquiry_log.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enquiry event-log events
const (
	EventVasAdded                = "VAS_ADDED"
	EventAdmissionFeeRequestSent = "ADMISSION_FEE_REQUEST_SENT"
	EventAdmissionApproved       = "ADMISSION_APPROVED"
	EventAdmissionRejected       = "ADMISSION_REJECTED"
	EventAdmissionCompleted      = "ADMISSION_COMPLETED"
	EventSubjectsSelected        = "SUBJECTS_SELECTED"
)

// Event type groupings
const (
	EventTypeAdmission = "admission"
	EventTypeVas       = "vas"
	EventTypePayment   = "payment"
)

// EnquiryLogEntry is one entry of the per-enquiry event log. The log is
// append-only except for the VAS_ADDED entry, which is unique per enquiry:
// adding a VAS type rewrites its log_data.VAS_services array in place and
// removing the last selected type deletes the entry.
type EnquiryLogEntry struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EnquiryID    primitive.ObjectID `json:"enquiryId" bson:"enquiry_id"`
	EventType    string             `json:"eventType" bson:"event_type"`
	EventSubType string             `json:"eventSubType,omitempty" bson:"event_sub_type,omitempty"`
	Event        string             `json:"event" bson:"event"`
	LogData      bson.M             `json:"logData,omitempty" bson:"log_data,omitempty"`
	CreatedBy    string             `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatedByID  string             `json:"createdById,omitempty" bson:"created_by_id,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// VasServices reads log_data.VAS_services, tolerating the []interface{}
// shape bson decoding produces
func (e *EnquiryLogEntry) VasServices() []string {
	if e.LogData == nil {
		return nil
	}
	switch v := e.LogData["VAS_services"].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case primitive.A:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
