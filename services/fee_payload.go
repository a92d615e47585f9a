// services/fee_payload.go
package services

import (
	"fmt"
	"strings"

	"github.com/schoolpath/admissions_backend/models"
)

// BuildFeeArray lists the fee-type slugs of every selected VAS in the
// canonical order (transport, cafeteria, kids club, PSA, summer camp),
// regardless of the order they were added in
func BuildFeeArray(record *models.AdmissionRecord) []string {
	var feeArray []string
	for _, vasType := range models.VasOrder {
		if record.OptedFor(vasType) {
			feeArray = append(feeArray, models.FeeSlugByVas[vasType])
		}
	}
	return feeArray
}

// vasBySlug inverts FeeSlugByVas for the expansion loop
var vasBySlug = map[string]string{
	models.FeeSlugTransport:  models.VasTransport,
	models.FeeSlugCafeteria:  models.VasCafeteria,
	models.FeeSlugKidsClub:   models.VasKidsClub,
	models.FeeSlugPSA:        models.VasPSA,
	models.FeeSlugSummerCamp: models.VasSummerCamp,
}

// admissionBaseLineItem builds the shared bodyParam every line item of an
// enquiry copies. The strict field set must be fully present; missing
// fields fail before any external call.
func admissionBaseLineItem(enquiry *models.Enquiry, academicYearID int, studentID *int) (models.FeeLineItem, error) {
	var missing []string
	if enquiry.ID.IsZero() {
		missing = append(missing, "enquiry id")
	}
	if enquiry.EnquiryNo == "" {
		missing = append(missing, "enquiry number")
	}
	if enquiry.SchoolID == nil {
		missing = append(missing, "school")
	}
	if enquiry.GradeID == nil {
		missing = append(missing, "grade")
	}
	if enquiry.BoardID == nil {
		missing = append(missing, "board")
	}
	if enquiry.CourseID == nil {
		missing = append(missing, "course")
	}
	if enquiry.ShiftID == nil {
		missing = append(missing, "shift")
	}
	if academicYearID == 0 {
		missing = append(missing, "academic year")
	}
	if len(missing) > 0 {
		return models.FeeLineItem{}, fmt.Errorf("%w: missing %s", ErrBadRequest, strings.Join(missing, ", "))
	}

	base := models.FeeLineItem{
		EnquiryID:      enquiry.ID.Hex(),
		EnquiryNo:      enquiry.EnquiryNo,
		SchoolID:       *enquiry.SchoolID,
		GradeID:        *enquiry.GradeID,
		BoardID:        *enquiry.BoardID,
		CourseID:       *enquiry.CourseID,
		ShiftID:        *enquiry.ShiftID,
		StreamID:       enquiry.StreamID,
		AcademicYearID: academicYearID,
		StudentID:      studentID,
	}

	// Guest students bill against the host school instead of the brand
	if enquiry.OtherDetails != nil && enquiry.OtherDetails.IsGuestStudent {
		base.HostSchoolID = enquiry.HostSchoolID
	} else {
		base.BrandID = enquiry.BrandID
	}

	return base, nil
}

// ApplyVasOverrides copies the shared bodyParam into a line item for one
// VAS type, pulling the type-specific ids from its detail slot. Cafeteria
// items without a fee_sub_type_id override get the hardcoded default;
// transport items carry pickup/drop as fee_subcategory_start/end.
func ApplyVasOverrides(base models.FeeLineItem, vasType string, details *models.VasDetail) models.FeeLineItem {
	item := base
	item.FeeType = models.FeeSlugByVas[vasType]

	if details != nil {
		item.FeeSubTypeID = details.FeeSubTypeID
		item.FeeCategoryID = details.FeeCategoryID
		item.FeeSubcategoryID = details.FeeSubcategoryID
		item.PeriodOfServiceID = details.PeriodOfServiceID
		item.BatchID = details.BatchID
		item.Amount = details.Amount

		if vasType == models.VasTransport {
			item.FeeSubcategoryStart = details.PickupPoint
			item.FeeSubcategoryEnd = details.DropPoint
		}
	}

	if vasType == models.VasCafeteria && item.FeeSubTypeID == nil {
		subType := models.DefaultCafeteriaFeeSubTypeID
		item.FeeSubTypeID = &subType
	}

	return item
}

// appendDefaultFees copies the record's default_fees entries into line
// items verbatim, each tagged with its own fee_type_slug
func appendDefaultFees(base models.FeeLineItem, record *models.AdmissionRecord, items []models.FeeLineItem) []models.FeeLineItem {
	for i := range record.DefaultFees {
		fee := &record.DefaultFees[i]
		item := base
		item.FeeType = fee.FeeTypeSlug
		item.FeeSubTypeID = fee.FeeSubTypeID
		item.FeeCategoryID = fee.FeeCategoryID
		item.FeeSubcategoryID = fee.FeeSubcategoryID
		item.PeriodOfServiceID = fee.PeriodOfServiceID
		item.BatchID = fee.BatchID
		item.Amount = fee.Amount
		items = append(items, item)
	}
	return items
}

// buildVasLineItems expands the fee array into line items and appends any
// default_fees entries
func buildVasLineItems(base models.FeeLineItem, record *models.AdmissionRecord) []models.FeeLineItem {
	items := make([]models.FeeLineItem, 0, len(record.DefaultFees)+len(models.VasOrder))

	for _, slug := range BuildFeeArray(record) {
		vasType := vasBySlug[slug]
		items = append(items, ApplyVasOverrides(base, vasType, record.DetailsFor(vasType)))
	}

	return appendDefaultFees(base, record, items)
}

// BuildAdmissionLineItems assembles the payload for the NewAdmission /
// Readmission / IVT / Admission_10_11 group. An empty result is rejected:
// a fee request with nothing to bill is a caller mistake.
func BuildAdmissionLineItems(enquiry *models.Enquiry, record *models.AdmissionRecord, academicYearID int, studentID *int) ([]models.FeeLineItem, error) {
	base, err := admissionBaseLineItem(enquiry, academicYearID, studentID)
	if err != nil {
		return nil, err
	}

	items := buildVasLineItems(base, record)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no fee line items to send", ErrBadRequest)
	}
	return items, nil
}

// BuildPSALineItems assembles the payload for PSA enquiries: one base PSA
// line item carrying the PSA-specific ids, plus the usual VAS expansion
func BuildPSALineItems(enquiry *models.Enquiry, record *models.AdmissionRecord, academicYearID int) ([]models.FeeLineItem, error) {
	return buildProgramLineItems(enquiry, record, academicYearID, models.VasPSA, record.PSADetails)
}

// BuildKidsClubLineItems is the kids-club twin of BuildPSALineItems
func BuildKidsClubLineItems(enquiry *models.Enquiry, record *models.AdmissionRecord, academicYearID int) ([]models.FeeLineItem, error) {
	return buildProgramLineItems(enquiry, record, academicYearID, models.VasKidsClub, record.KidsClubDetails)
}

func buildProgramLineItems(enquiry *models.Enquiry, record *models.AdmissionRecord, academicYearID int, vasType string, details *models.VasDetail) ([]models.FeeLineItem, error) {
	base, err := admissionBaseLineItem(enquiry, academicYearID, nil)
	if err != nil {
		return nil, err
	}

	var missing []string
	if details == nil {
		missing = append(missing, "sub_type", "category", "period_of_service", "batch")
	} else {
		if details.FeeSubTypeID == nil {
			missing = append(missing, "sub_type")
		}
		if details.FeeCategoryID == nil {
			missing = append(missing, "category")
		}
		if details.PeriodOfServiceID == nil {
			missing = append(missing, "period_of_service")
		}
		if details.BatchID == nil {
			missing = append(missing, "batch")
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s %s", ErrBadRequest, vasType, strings.Join(missing, ", "))
	}

	items := []models.FeeLineItem{ApplyVasOverrides(base, vasType, details)}

	// The program's own slot already produced the base item above, so the
	// expansion skips it to avoid billing the program twice
	for _, slug := range BuildFeeArray(record) {
		expandType := vasBySlug[slug]
		if expandType == vasType {
			continue
		}
		items = append(items, ApplyVasOverrides(base, expandType, record.DetailsFor(expandType)))
	}

	return appendDefaultFees(base, record, items), nil
}

// FindFeeRecordID locates the Finance-created fee with the given fee type
func FindFeeRecordID(records []models.FeeRecord, feeTypeID int) (int, bool) {
	for _, record := range records {
		if record.FeeTypeID == feeTypeID {
			return record.ID, true
		}
	}
	return 0, false
}

// ReconcileStudentFees matches each selected VAS to the Finance fee
// record of its fee type, setting student_fee_id on the in-memory record
// and returning the $set fields to persist. An empty map means nothing
// matched.
func ReconcileStudentFees(record *models.AdmissionRecord, feeRecords []models.FeeRecord) map[string]int {
	updates := make(map[string]int)
	for _, vasType := range models.VasOrder {
		details := record.DetailsFor(vasType)
		if details == nil {
			continue
		}
		feeID, ok := FindFeeRecordID(feeRecords, models.FeeTypeIDByVas[vasType])
		if !ok {
			continue
		}
		id := feeID
		details.StudentFeeID = &id
		_, detailField, _ := models.VasFieldNames(vasType)
		updates[detailField+".student_fee_id"] = feeID
	}
	return updates
}
