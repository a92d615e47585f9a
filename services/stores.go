// services/stores.go
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schoolpath/admissions_backend/models"
)

// The services hold these store surfaces instead of the concrete
// repository structs so the orchestration and log-maintenance paths can
// run against in-memory stores in tests. The repositories package
// satisfies all three.

type admissionStore interface {
	GetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) (*models.AdmissionRecord, error)
	GetByEnrolmentNumber(ctx context.Context, enrolmentNumber string) (*models.AdmissionRecord, error)
	GetOrCreateByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) (*models.AdmissionRecord, error)
	UpdateByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID, fields bson.M, upsert bool) error
	UnsetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID, fields bson.M) error
	MarkFeeRequestTriggered(ctx context.Context, enquiryID primitive.ObjectID) (bool, error)
	ResetFeeRequestTriggered(ctx context.Context, enquiryID primitive.ObjectID) error
}

type enquiryLogStore interface {
	GetByEnquiryID(ctx context.Context, enquiryID primitive.ObjectID) ([]models.EnquiryLogEntry, error)
	FindByEvent(ctx context.Context, enquiryID primitive.ObjectID, event string) (*models.EnquiryLogEntry, error)
	CreateLog(ctx context.Context, entry *models.EnquiryLogEntry) error
	UpdateLog(ctx context.Context, id primitive.ObjectID, logData bson.M) error
	DeleteLog(ctx context.Context, id primitive.ObjectID) error
}

type auditLogStore interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
}
