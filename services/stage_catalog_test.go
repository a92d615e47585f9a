package services

import (
	"testing"

	"github.com/schoolpath/admissions_backend/models"
)

func TestMapEnquiryTypeStagesInjectsSyntheticStage(t *testing.T) {
	submitted := []models.StageInstance{
		{StageID: 3, StageName: "Competency Test", Order: 7},
		{StageID: 6, StageName: "Payment", Order: 2},
	}

	stages := MapEnquiryTypeStages(models.EnquiryTypeNewAdmission, submitted)

	if len(stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(stages))
	}
	if stages[0].StageName != SyntheticEnquiryStage || stages[0].Order != 1 {
		t.Fatalf("expected synthetic Enquiry stage at order 1, got %q at %d",
			stages[0].StageName, stages[0].Order)
	}
	// Submitted order values are replaced by submission position
	if stages[1].Order != 2 || stages[2].Order != 3 {
		t.Fatalf("expected orders 2 and 3, got %d and %d", stages[1].Order, stages[2].Order)
	}
	if stages[1].StageName != "Competency Test" || stages[2].StageName != "Payment" {
		t.Fatal("expected submitted stages preserved in submission order")
	}
}

func TestMapEnquiryTypeStagesRejectsUserSuppliedEnquiryStage(t *testing.T) {
	submitted := []models.StageInstance{
		{StageID: 99, StageName: SyntheticEnquiryStage, Order: 5},
		{StageID: 6, StageName: "Payment", Order: 6},
	}

	stages := MapEnquiryTypeStages(models.EnquiryTypePSA, submitted)

	if len(stages) != 2 {
		t.Fatalf("expected user copy of the Enquiry stage dropped, got %d stages", len(stages))
	}
	if stages[0].StageID != 1 {
		t.Fatalf("expected the synthetic stage id, got %d", stages[0].StageID)
	}
}

func TestMapEnquiryTypeStagesFallsBackToCatalog(t *testing.T) {
	stages := MapEnquiryTypeStages(models.EnquiryTypePSA, nil)

	if len(stages) != 3 {
		t.Fatalf("expected Enquiry + 2 catalog stages, got %d", len(stages))
	}
	for i, stage := range stages {
		if stage.Order != i+1 {
			t.Fatalf("expected strictly increasing orders from 1, got %d at index %d", stage.Order, i)
		}
	}
	if stages[0].Status != models.StageStatusCompleted {
		t.Fatalf("expected synthetic stage Completed, got %q", stages[0].Status)
	}
	if stages[1].Status != models.StageStatusOpen {
		t.Fatalf("expected catalog stages Open, got %q", stages[1].Status)
	}
}

func TestTemplatesForUnknownType(t *testing.T) {
	if TemplatesFor("Unknown") != nil {
		t.Fatal("expected nil templates for unknown enquiry type")
	}
}

func TestTemplatesForReturnsCopy(t *testing.T) {
	first := TemplatesFor(models.EnquiryTypeNewAdmission)
	first[0].StageName = "mutated"

	second := TemplatesFor(models.EnquiryTypeNewAdmission)
	if second[0].StageName == "mutated" {
		t.Fatal("TemplatesFor must not expose the catalog's backing array")
	}
}
