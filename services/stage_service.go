// services/stage_service.go
package services

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolpath/admissions_backend/models"
	"github.com/schoolpath/admissions_backend/repositories"
)

// StageService moves an enquiry through its ordered stage list. There is
// no partial stage update: every write replaces the whole array, so two
// callers racing on the same enquiry can lose each other's change.
type StageService struct {
	enquiries *repositories.EnquiryRepository
}

func NewStageService(enquiries *repositories.EnquiryRepository) *StageService {
	return &StageService{enquiries: enquiries}
}

// AdvanceStage sets newStatus on every stage whose name matches the
// case-insensitive pattern and persists the full stage array. Returns the
// number of stages touched.
func (s *StageService) AdvanceStage(ctx context.Context, enquiryID primitive.ObjectID, stageNamePattern, newStatus string) (int, error) {
	re, err := regexp.Compile("(?i)" + stageNamePattern)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid stage name pattern: %v", ErrBadRequest, err)
	}

	enquiry, err := s.enquiries.GetByID(ctx, enquiryID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrEnquiryNotFound
		}
		return 0, fmt.Errorf("failed to load enquiry: %w", err)
	}

	matched := 0
	for i := range enquiry.EnquiryStages {
		if re.MatchString(enquiry.EnquiryStages[i].StageName) {
			enquiry.EnquiryStages[i].Status = newStatus
			matched++
		}
	}
	if matched == 0 {
		return 0, nil
	}

	if err := s.enquiries.ReplaceStages(ctx, enquiryID, enquiry.EnquiryStages); err != nil {
		return 0, fmt.Errorf("failed to persist stages: %w", err)
	}
	return matched, nil
}

// ReplaceStages bulk-overwrites the enquiry's stage array, re-injecting
// the synthetic Enquiry stage at order 1
func (s *StageService) ReplaceStages(ctx context.Context, enquiryID primitive.ObjectID, stages []models.StageInstance) ([]models.StageInstance, error) {
	enquiry, err := s.enquiries.GetByID(ctx, enquiryID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("failed to load enquiry: %w", err)
	}

	mapped := MapEnquiryTypeStages(enquiry.EnquiryType, stages)
	if err := s.enquiries.ReplaceStages(ctx, enquiryID, mapped); err != nil {
		return nil, fmt.Errorf("failed to persist stages: %w", err)
	}
	return mapped, nil
}
