// services/vas_service.go
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

// VasService attaches and detaches value-added services on an enquiry's
// admission record and maintains the single aggregated VAS_ADDED event-log
// entry. The record write and the log write run concurrently with no
// rollback when one of them fails.
type VasService struct {
	admissions  admissionStore
	enquiryLogs enquiryLogStore
}

func NewVasService(admissions *repositories.AdmissionRepository, enquiryLogs *repositories.EnquiryLogRepository) *VasService {
	return &VasService{admissions: admissions, enquiryLogs: enquiryLogs}
}

// AddVasOption selects a VAS type on the enquiry, lazily creating the
// admission record. The VAS_ADDED log entry is created with the single
// added type, or rewritten to it when the entry already exists.
func (s *VasService) AddVasOption(ctx context.Context, enquiryID primitive.ObjectID, vasType string, details *models.VasDetail, createdBy, createdByID string) error {
	flagField, detailField, ok := models.VasFieldNames(vasType)
	if !ok {
		return fmt.Errorf("%w: unknown vas type %q", ErrBadRequest, vasType)
	}
	if details == nil {
		return fmt.Errorf("%w: vas details are required", ErrBadRequest)
	}

	if _, err := s.admissions.GetOrCreateByEnquiryID(ctx, enquiryID); err != nil {
		return fmt.Errorf("failed to load admission record: %w", err)
	}

	var wg sync.WaitGroup
	var recordErr, logErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		recordErr = s.admissions.UpdateByEnquiryID(ctx, enquiryID, bson.M{
			flagField:   true,
			detailField: details,
		}, false)
	}()
	go func() {
		defer wg.Done()
		logErr = s.writeVasAddedLog(ctx, enquiryID, vasType, createdBy, createdByID)
	}()
	wg.Wait()

	if recordErr != nil {
		return fmt.Errorf("failed to store vas selection: %w", recordErr)
	}
	if logErr != nil {
		return fmt.Errorf("failed to maintain vas log: %w", logErr)
	}
	return nil
}

// writeVasAddedLog creates the VAS_ADDED entry or rewrites its service
// list to the single type just added
func (s *VasService) writeVasAddedLog(ctx context.Context, enquiryID primitive.ObjectID, vasType, createdBy, createdByID string) error {
	entries, err := s.enquiryLogs.GetByEnquiryID(ctx, enquiryID)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Event == models.EventVasAdded {
			return s.enquiryLogs.UpdateLog(ctx, entry.ID, bson.M{"VAS_services": []string{vasType}})
		}
	}

	return s.enquiryLogs.CreateLog(ctx, &models.EnquiryLogEntry{
		EnquiryID:   enquiryID,
		EventType:   models.EventTypeVas,
		Event:       models.EventVasAdded,
		LogData:     bson.M{"VAS_services": []string{vasType}},
		CreatedBy:   createdBy,
		CreatedByID: createdByID,
	})
}

// RemoveVasOption deselects a VAS type. The admission record must already
// exist. The type is spliced out of the VAS_ADDED log entry; when it was
// the sole remaining element the entry is deleted instead.
func (s *VasService) RemoveVasOption(ctx context.Context, enquiryID primitive.ObjectID, vasType string) error {
	flagField, detailField, ok := models.VasFieldNames(vasType)
	if !ok {
		return fmt.Errorf("%w: unknown vas type %q", ErrBadRequest, vasType)
	}

	if _, err := s.admissions.GetByEnquiryID(ctx, enquiryID); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrAdmissionNotFound
		}
		return fmt.Errorf("failed to load admission record: %w", err)
	}

	var wg sync.WaitGroup
	var recordErr, logErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.admissions.UpdateByEnquiryID(ctx, enquiryID, bson.M{flagField: false}, false); err != nil {
			recordErr = err
			return
		}
		recordErr = s.admissions.UnsetByEnquiryID(ctx, enquiryID, bson.M{detailField: ""})
	}()
	go func() {
		defer wg.Done()
		logErr = s.removeFromVasAddedLog(ctx, enquiryID, vasType)
	}()
	wg.Wait()

	if recordErr != nil {
		return fmt.Errorf("failed to clear vas selection: %w", recordErr)
	}
	if logErr != nil {
		return fmt.Errorf("failed to maintain vas log: %w", logErr)
	}
	return nil
}

// removeFromVasAddedLog splices vasType out of the VAS_ADDED entry,
// deleting the entry when the list would become empty
func (s *VasService) removeFromVasAddedLog(ctx context.Context, enquiryID primitive.ObjectID, vasType string) error {
	entry, err := s.enquiryLogs.FindByEvent(ctx, enquiryID, models.EventVasAdded)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return err
	}

	services := entry.VasServices()
	remaining := SpliceVasService(services, vasType)
	if len(remaining) == len(services) {
		// Type was never in the list; leave the entry untouched
		return nil
	}

	if len(remaining) == 0 {
		return s.enquiryLogs.DeleteLog(ctx, entry.ID)
	}
	return s.enquiryLogs.UpdateLog(ctx, entry.ID, bson.M{"VAS_services": remaining})
}

// SpliceVasService returns services without the first occurrence of
// vasType
func SpliceVasService(services []string, vasType string) []string {
	out := make([]string, 0, len(services))
	removed := false
	for _, service := range services {
		if !removed && service == vasType {
			removed = true
			continue
		}
		out = append(out, service)
	}
	return out
}
