// services/approval_service.go
package services

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpath/admissions_backend/models"
	"github.com/schoolpath/admissions_backend/repositories"
)

// ApprovalService records the admission decision on an enquiry
type ApprovalService struct {
	enquiries   *repositories.EnquiryRepository
	admissions  *repositories.AdmissionRepository
	enquiryLogs *repositories.EnquiryLogRepository
	stages      *StageService
}

func NewApprovalService(enquiries *repositories.EnquiryRepository, admissions *repositories.AdmissionRepository, enquiryLogs *repositories.EnquiryLogRepository, stages *StageService) *ApprovalService {
	return &ApprovalService{
		enquiries:   enquiries,
		admissions:  admissions,
		enquiryLogs: enquiryLogs,
		stages:      stages,
	}
}

// UpdateAdmissionApprovalStatus approves or rejects an admission. The
// admission record is upserted with the new status; the "Admission
// status" stage advance and the event-log append then run concurrently.
func (s *ApprovalService) UpdateAdmissionApprovalStatus(ctx context.Context, enquiryID primitive.ObjectID, status, createdBy, createdByID string) error {
	if status != models.ApprovalStatusApproved && status != models.ApprovalStatusRejected {
		return fmt.Errorf("%w: status must be Approved or Rejected", ErrBadRequest)
	}

	if _, err := s.enquiries.GetByID(ctx, enquiryID); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrEnquiryNotFound
		}
		return fmt.Errorf("failed to load enquiry: %w", err)
	}

	// The log_data shape depends on whether a record pre-existed
	existing, err := s.admissions.GetByEnquiryID(ctx, enquiryID)
	recordPreExisted := err == nil
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to load admission record: %w", err)
	}

	if err := s.admissions.UpdateByEnquiryID(ctx, enquiryID, bson.M{
		"admission_approval_status": status,
	}, true); err != nil {
		return fmt.Errorf("failed to store approval status: %w", err)
	}

	event := models.EventAdmissionApproved
	stageStatus := models.StageStatusApproved
	if status == models.ApprovalStatusRejected {
		event = models.EventAdmissionRejected
		stageStatus = models.StageStatusRejected
	}

	logData := bson.M{"admission_approval_status": status}
	if recordPreExisted {
		logData["previous_status"] = existing.AdmissionApprovalStatus
	} else {
		logData["admission_record_created"] = true
	}

	var wg sync.WaitGroup
	var stageErr, logErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, stageErr = s.stages.AdvanceStage(ctx, enquiryID, "Admission status", stageStatus)
	}()
	go func() {
		defer wg.Done()
		logErr = s.enquiryLogs.CreateLog(ctx, &models.EnquiryLogEntry{
			EnquiryID:   enquiryID,
			EventType:   models.EventTypeAdmission,
			Event:       event,
			LogData:     logData,
			CreatedBy:   createdBy,
			CreatedByID: createdByID,
		})
	}()
	wg.Wait()

	if stageErr != nil {
		return fmt.Errorf("failed to advance admission-status stage: %w", stageErr)
	}
	if logErr != nil {
		return fmt.Errorf("failed to write approval log: %w", logErr)
	}
	return nil
}
