// services/fee_request_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpath/admissions_backend/models"
	"github.com/schoolpath/admissions_backend/repositories"
	"github.com/schoolpath/admissions_backend/utils"
)

// feeRequestLeaseTTL bounds how long one orchestration may hold the
// per-enquiry lease before a crashed holder stops blocking retries
const feeRequestLeaseTTL = 2 * time.Minute

// FeeRequestService orchestrates the one-shot admission fee request: it
// claims the idempotency flag, builds the per-sub-type payload, calls
// Finance, syncs transport stops, reconciles returned fee ids and
// finalizes the enquiry's payment stage. The flag is claimed atomically
// before the Finance call and rolled back when the call fails, so the
// Finance side sees at most one successful request per enquiry.
type FeeRequestService struct {
	enquiries   *repositories.EnquiryRepository
	admissions  admissionStore
	enquiryLogs enquiryLogStore
	audit       *AuditService
	finance     *FinanceService
	transport   *TransportService
	mdm         *MDMService
	stages      *StageService
	locks       *utils.LockManager
}

func NewFeeRequestService(
	enquiries *repositories.EnquiryRepository,
	admissions *repositories.AdmissionRepository,
	enquiryLogs *repositories.EnquiryLogRepository,
	audit *AuditService,
	finance *FinanceService,
	transport *TransportService,
	mdm *MDMService,
	stages *StageService,
	locks *utils.LockManager,
) *FeeRequestService {
	return &FeeRequestService{
		enquiries:   enquiries,
		admissions:  admissions,
		enquiryLogs: enquiryLogs,
		audit:       audit,
		finance:     finance,
		transport:   transport,
		mdm:         mdm,
		stages:      stages,
		locks:       locks,
	}
}

// SendCreateAdmissionPaymentRequest runs the full fee pipeline for one
// enquiry. A second call after a successful run is a logged no-op that
// issues no external calls. authorization is the caller's bearer header,
// forwarded to the transport panel; without it transport sync is skipped.
func (s *FeeRequestService) SendCreateAdmissionPaymentRequest(ctx context.Context, enquiry *models.Enquiry, authorization, createdBy, createdByID string) error {
	enquiryHex := enquiry.ID.Hex()

	lockKey := "fee-request:" + enquiryHex
	token, acquired, err := s.locks.Acquire(ctx, lockKey, feeRequestLeaseTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire fee-request lease: %w", err)
	}
	if !acquired {
		log.Printf("Fee request for enquiry %s already in progress, skipping", enquiryHex)
		return nil
	}
	defer func() {
		if err := s.locks.Release(context.Background(), lockKey, token); err != nil {
			log.Printf("Failed to release fee-request lease for enquiry %s: %v", enquiryHex, err)
		}
	}()

	record, err := s.admissions.GetOrCreateByEnquiryID(ctx, enquiry.ID)
	if err != nil {
		return fmt.Errorf("failed to load admission record: %w", err)
	}
	if record.AdmissionFeeRequestTriggered {
		log.Printf("Fee request already triggered for enquiry %s, skipping", enquiryHex)
		return nil
	}

	// Validate and resolve everything the payload needs before claiming
	// the flag, so caller mistakes never consume the one-shot claim
	if enquiry.AcademicYearID == nil {
		return fmt.Errorf("%w: missing academic year", ErrBadRequest)
	}

	studentID, err := s.resolveStudentID(ctx, enquiry, record)
	if err != nil {
		return err
	}

	academicYearID, err := s.mdm.GetAcademicYearID(ctx, *enquiry.AcademicYearID)
	if err != nil {
		return err
	}

	lineItems, err := s.buildLineItems(enquiry, record, academicYearID, studentID)
	if err != nil {
		return err
	}

	claimed, err := s.admissions.MarkFeeRequestTriggered(ctx, enquiry.ID)
	if err != nil {
		return fmt.Errorf("failed to claim fee-request flag: %w", err)
	}
	if !claimed {
		log.Printf("Fee request already triggered for enquiry %s, skipping", enquiryHex)
		return nil
	}

	financeResp, reqBody, respBody, financeErr := s.finance.BulkCreateStudentFees(ctx, lineItems)
	financeURL := s.finance.baseURL + "/transactions/student/fee/bulk-create"
	auditResponse := respBody
	if financeErr != nil && auditResponse == "" {
		auditResponse = financeErr.Error()
	}
	s.audit.Record(ctx, "admissions", reqBody, auditResponse,
		"sendCreateAdmissionPaymentRequest", createdBy, financeURL, "POST", "finance", enquiryHex)

	if financeErr != nil {
		// Roll the claim back so a retry can re-send; use a fresh context
		// in case the caller's one was what failed
		rollbackCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if rbErr := s.admissions.ResetFeeRequestTriggered(rollbackCtx, enquiry.ID); rbErr != nil {
			log.Printf("Failed to roll back fee-request flag for enquiry %s: %v", enquiryHex, rbErr)
		}
		return financeErr
	}

	feeRecords := financeResp.FeeRecords()

	s.syncTransportStops(ctx, enquiry, record, feeRecords, authorization, createdBy)

	if updates := ReconcileStudentFees(record, feeRecords); len(updates) > 0 {
		fields := bson.M{}
		for field, feeID := range updates {
			fields[field] = feeID
		}
		if err := s.admissions.UpdateByEnquiryID(ctx, enquiry.ID, fields, false); err != nil {
			return fmt.Errorf("failed to reconcile student fee ids: %w", err)
		}
	}

	return s.finalize(ctx, enquiry, feeRecords, createdBy, createdByID)
}

// resolveStudentID looks up the returning student's id by enrolment
// number for the sub-types that readmit an existing student
func (s *FeeRequestService) resolveStudentID(ctx context.Context, enquiry *models.Enquiry, record *models.AdmissionRecord) (*int, error) {
	switch enquiry.FeeEnquiryType() {
	case models.EnquiryTypeIVT, models.EnquiryTypeReadmission, models.EnquiryTypeReadmissionAdmission1011:
	default:
		return nil, nil
	}
	if record.EnrolmentNumber == "" {
		return nil, nil
	}

	existing, err := s.admissions.GetByEnrolmentNumber(ctx, record.EnrolmentNumber)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve student by enrolment number: %w", err)
	}
	return existing.StudentID, nil
}

// buildLineItems branches the payload construction on the enquiry
// sub-type
func (s *FeeRequestService) buildLineItems(enquiry *models.Enquiry, record *models.AdmissionRecord, academicYearID int, studentID *int) ([]models.FeeLineItem, error) {
	switch enquiry.FeeEnquiryType() {
	case models.EnquiryTypePSA:
		return BuildPSALineItems(enquiry, record, academicYearID)
	case models.EnquiryTypeKidsClub:
		return BuildKidsClubLineItems(enquiry, record, academicYearID)
	case models.EnquiryTypeNewAdmission, models.EnquiryTypeReadmission, models.EnquiryTypeIVT,
		models.EnquiryTypeAdmission1011, models.EnquiryTypeReadmissionAdmission1011:
		return BuildAdmissionLineItems(enquiry, record, academicYearID, studentID)
	}
	return nil, fmt.Errorf("%w: unsupported enquiry type %q", ErrBadRequest, enquiry.FeeEnquiryType())
}

// syncTransportStops pushes one transport-panel call per recorded stop,
// each awaited and audited. A failed stop is logged and the loop moves on
// so the remaining stops still sync; the Finance-side state is already
// committed either way.
func (s *FeeRequestService) syncTransportStops(ctx context.Context, enquiry *models.Enquiry, record *models.AdmissionRecord, feeRecords []models.FeeRecord, authorization, createdBy string) {
	if !record.OptedForTransport || record.TransportDetails == nil || authorization == "" {
		return
	}

	feesID, ok := FindFeeRecordID(feeRecords, models.FeeTypeTransport)
	if !ok {
		log.Printf("No transport fee record returned for enquiry %s, skipping transport sync", enquiry.ID.Hex())
		return
	}

	transportURL := s.transport.baseURL + "/transport/create"
	for _, stop := range record.TransportDetails.StopDetails {
		payload := models.TransportCreateRequest{
			EnquiryNo: enquiry.EnquiryNo,
			ShiftID:   stop.ShiftID,
			StopID:    stop.StopID,
			RouteID:   stop.RouteID,
			FeesID:    feesID,
		}

		reqBody, respBody, err := s.transport.CreateStop(ctx, payload, authorization)
		auditResponse := respBody
		if err != nil {
			if auditResponse == "" {
				auditResponse = err.Error()
			}
			log.Printf("Transport sync failed for enquiry %s stop %d: %v", enquiry.ID.Hex(), stop.StopID, err)
		}
		s.audit.Record(ctx, "admissions", reqBody, auditResponse,
			"createTransportStop", createdBy, transportURL, "POST", "transport", enquiry.ID.Hex())
	}
}

// finalize advances the Payment stage and appends the fee-request log
// entry in parallel; the idempotency flag was already claimed up front
func (s *FeeRequestService) finalize(ctx context.Context, enquiry *models.Enquiry, feeRecords []models.FeeRecord, createdBy, createdByID string) error {
	feeIDs := make([]int, 0, len(feeRecords))
	for _, record := range feeRecords {
		feeIDs = append(feeIDs, record.ID)
	}

	var wg sync.WaitGroup
	var stageErr, logErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, stageErr = s.stages.AdvanceStage(ctx, enquiry.ID, "Payment", models.StageStatusInProgress)
	}()
	go func() {
		defer wg.Done()
		logErr = s.enquiryLogs.CreateLog(ctx, &models.EnquiryLogEntry{
			EnquiryID: enquiry.ID,
			EventType: models.EventTypePayment,
			Event:     models.EventAdmissionFeeRequestSent,
			LogData: bson.M{
				"fee_record_count": len(feeRecords),
				"fee_record_ids":   feeIDs,
			},
			CreatedBy:   createdBy,
			CreatedByID: createdByID,
		})
	}()
	wg.Wait()

	if stageErr != nil {
		return fmt.Errorf("failed to advance payment stage: %w", stageErr)
	}
	if logErr != nil {
		return fmt.Errorf("failed to write fee-request log: %w", logErr)
	}
	return nil
}
