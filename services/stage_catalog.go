// services/stage_catalog.go
package services

import (
	"github.com/schoolpath/admissions_backend/models"
)

// SyntheticEnquiryStage is the name of the stage every enquiry starts
// with. It is injected by the catalog at order 1 and is never accepted
// from user input.
const SyntheticEnquiryStage = "Enquiry"

const syntheticEnquiryStageID = 1

// stageCatalog holds the ordered stage templates per enquiry type. Orders
// start at 2 because the synthetic Enquiry stage always occupies order 1.
var stageCatalog = map[string][]models.StageTemplate{
	models.EnquiryTypeNewAdmission: {
		{StageID: 2, StageName: "Registration", Order: 2, Weightage: 10, TATDays: 3, Mandatory: true},
		{StageID: 3, StageName: "Competency Test", Order: 3, Weightage: 20, TATDays: 7, Mandatory: true, ApprovalWorkflowID: intPtr(101)},
		{StageID: 4, StageName: "Interview", Order: 4, Weightage: 15, TATDays: 7, Mandatory: false},
		{StageID: 5, StageName: "Admission Status", Order: 5, Weightage: 20, TATDays: 2, Mandatory: true, ApprovalWorkflowID: intPtr(102)},
		{StageID: 6, StageName: "Payment", Order: 6, Weightage: 25, TATDays: 5, Mandatory: true},
		{StageID: 7, StageName: "Enrolment", Order: 7, Weightage: 10, TATDays: 2, Mandatory: true},
	},
	models.EnquiryTypeReadmission: {
		{StageID: 2, StageName: "Registration", Order: 2, Weightage: 20, TATDays: 3, Mandatory: true},
		{StageID: 5, StageName: "Admission Status", Order: 3, Weightage: 25, TATDays: 2, Mandatory: true, ApprovalWorkflowID: intPtr(102)},
		{StageID: 6, StageName: "Payment", Order: 4, Weightage: 35, TATDays: 5, Mandatory: true},
		{StageID: 7, StageName: "Enrolment", Order: 5, Weightage: 20, TATDays: 2, Mandatory: true},
	},
	models.EnquiryTypeIVT: {
		{StageID: 2, StageName: "Registration", Order: 2, Weightage: 20, TATDays: 3, Mandatory: true},
		{StageID: 5, StageName: "Admission Status", Order: 3, Weightage: 30, TATDays: 2, Mandatory: true, ApprovalWorkflowID: intPtr(102)},
		{StageID: 6, StageName: "Payment", Order: 4, Weightage: 30, TATDays: 5, Mandatory: true},
		{StageID: 7, StageName: "Enrolment", Order: 5, Weightage: 20, TATDays: 2, Mandatory: true},
	},
	models.EnquiryTypePSA: {
		{StageID: 2, StageName: "Registration", Order: 2, Weightage: 40, TATDays: 3, Mandatory: true},
		{StageID: 6, StageName: "Payment", Order: 3, Weightage: 60, TATDays: 5, Mandatory: true},
	},
	models.EnquiryTypeKidsClub: {
		{StageID: 2, StageName: "Registration", Order: 2, Weightage: 40, TATDays: 3, Mandatory: true},
		{StageID: 6, StageName: "Payment", Order: 3, Weightage: 60, TATDays: 5, Mandatory: true},
	},
	models.EnquiryTypeAdmission1011: {
		{StageID: 2, StageName: "Registration", Order: 2, Weightage: 10, TATDays: 3, Mandatory: true},
		{StageID: 3, StageName: "Competency Test", Order: 3, Weightage: 20, TATDays: 7, Mandatory: true, ApprovalWorkflowID: intPtr(101)},
		{StageID: 8, StageName: "Subject Selection", Order: 4, Weightage: 15, TATDays: 5, Mandatory: true},
		{StageID: 5, StageName: "Admission Status", Order: 5, Weightage: 20, TATDays: 2, Mandatory: true, ApprovalWorkflowID: intPtr(102)},
		{StageID: 6, StageName: "Payment", Order: 6, Weightage: 25, TATDays: 5, Mandatory: true},
		{StageID: 7, StageName: "Enrolment", Order: 7, Weightage: 10, TATDays: 2, Mandatory: true},
	},
	models.EnquiryTypeReadmissionAdmission1011: {
		{StageID: 2, StageName: "Registration", Order: 2, Weightage: 15, TATDays: 3, Mandatory: true},
		{StageID: 8, StageName: "Subject Selection", Order: 3, Weightage: 20, TATDays: 5, Mandatory: true},
		{StageID: 5, StageName: "Admission Status", Order: 4, Weightage: 25, TATDays: 2, Mandatory: true, ApprovalWorkflowID: intPtr(102)},
		{StageID: 6, StageName: "Payment", Order: 5, Weightage: 25, TATDays: 5, Mandatory: true},
		{StageID: 7, StageName: "Enrolment", Order: 6, Weightage: 15, TATDays: 2, Mandatory: true},
	},
}

func intPtr(v int) *int { return &v }

// TemplatesFor returns the ordered stage templates of an enquiry type,
// nil for unknown types
func TemplatesFor(enquiryType string) []models.StageTemplate {
	templates, ok := stageCatalog[enquiryType]
	if !ok {
		return nil
	}
	out := make([]models.StageTemplate, len(templates))
	copy(out, templates)
	return out
}

// MapEnquiryTypeStages builds the stage-instance list a new enquiry starts
// with. The synthetic Enquiry stage always takes order 1 (already
// Completed, since reaching this code means the enquiry exists); submitted
// stages follow in submission order regardless of the order values they
// carried. With no submitted stages the catalog templates are used.
func MapEnquiryTypeStages(enquiryType string, submitted []models.StageInstance) []models.StageInstance {
	stages := []models.StageInstance{{
		StageID:   syntheticEnquiryStageID,
		StageName: SyntheticEnquiryStage,
		Order:     1,
		Status:    models.StageStatusCompleted,
	}}

	if len(submitted) == 0 {
		for i, tpl := range TemplatesFor(enquiryType) {
			stages = append(stages, models.StageInstance{
				StageID:   tpl.StageID,
				StageName: tpl.StageName,
				Order:     i + 2,
				Status:    models.StageStatusOpen,
			})
		}
		return stages
	}

	order := 2
	for _, stage := range submitted {
		// Never accept a user-supplied copy of the synthetic stage
		if stage.StageName == SyntheticEnquiryStage {
			continue
		}
		stage.Order = order
		if stage.Status == "" {
			stage.Status = models.StageStatusOpen
		}
		stages = append(stages, stage)
		order++
	}
	return stages
}
