// models/fee.go
package models

// Fee type ids fixed by the Finance service
const (
	FeeTypeAdmission    = 1
	FeeTypeCafeteria    = 2
	FeeTypeKidsClub     = 8
	FeeTypePSA          = 11
	FeeTypeRegistration = 12
	FeeTypeSummerCamp   = 13
	FeeTypeTransport    = 15
)

// Fee type slugs used as line-item tags
const (
	FeeSlugAdmission  = "admission_fees"
	FeeSlugCafeteria  = "cafeteria_fees"
	FeeSlugKidsClub   = "kids_club_fees"
	FeeSlugPSA        = "psa_fees"
	FeeSlugSummerCamp = "summer_camp_fees"
	FeeSlugTransport  = "transport_fees"
)

// FeeTypeIDByVas correlates Finance fee records back to the local VAS slot
var FeeTypeIDByVas = map[string]int{
	VasTransport:  FeeTypeTransport,
	VasCafeteria:  FeeTypeCafeteria,
	VasKidsClub:   FeeTypeKidsClub,
	VasPSA:        FeeTypePSA,
	VasSummerCamp: FeeTypeSummerCamp,
}

// FeeSlugByVas tags a selected VAS type's line item
var FeeSlugByVas = map[string]string{
	VasTransport:  FeeSlugTransport,
	VasCafeteria:  FeeSlugCafeteria,
	VasKidsClub:   FeeSlugKidsClub,
	VasPSA:        FeeSlugPSA,
	VasSummerCamp: FeeSlugSummerCamp,
}

// DefaultCafeteriaFeeSubTypeID is applied to cafeteria line items whose
// details carry no fee_sub_type_id override
const DefaultCafeteriaFeeSubTypeID = 25

// FeeLineItem is one entry of the Finance bulk-create body
type FeeLineItem struct {
	EnquiryID           string   `json:"enquiry_id"`
	EnquiryNo           string   `json:"enquiry_no"`
	SchoolID            int      `json:"school_id"`
	GradeID             int      `json:"grade_id"`
	BoardID             int      `json:"board_id"`
	CourseID            int      `json:"course_id"`
	ShiftID             int      `json:"shift_id"`
	StreamID            *int     `json:"stream_id,omitempty"`
	AcademicYearID      int      `json:"academic_year_id"`
	BrandID             *int     `json:"brand_id,omitempty"`
	HostSchoolID        *int     `json:"host_school_id,omitempty"`
	StudentID           *int     `json:"student_id,omitempty"`
	FeeType             string   `json:"fee_type"`
	FeeSubTypeID        *int     `json:"fee_sub_type_id,omitempty"`
	FeeCategoryID       *int     `json:"fee_category_id,omitempty"`
	FeeSubcategoryID    *int     `json:"fee_subcategory_id,omitempty"`
	PeriodOfServiceID   *int     `json:"period_of_service_id,omitempty"`
	BatchID             *int     `json:"batch_id,omitempty"`
	Amount              *float64 `json:"amount,omitempty"`
	FeeSubcategoryStart string   `json:"fee_subcategory_start,omitempty"`
	FeeSubcategoryEnd   string   `json:"fee_subcategory_end,omitempty"`
}

// FinanceBulkCreateRequest is the Finance bulk-create body
type FinanceBulkCreateRequest struct {
	StudentFees []FeeLineItem `json:"studentFees"`
}

// FeeRecord is one fee the Finance service reports as created
type FeeRecord struct {
	ID        int `json:"id"`
	FeeTypeID int `json:"fee_type_id"`
}

// FinanceBulkCreateResponse mirrors the Finance service's triple-nested
// envelope; FeeRecords unwraps it
type FinanceBulkCreateResponse struct {
	Data struct {
		Data struct {
			Data []FeeRecord `json:"data"`
		} `json:"data"`
	} `json:"data"`
}

// FeeRecords returns the created fee records, nil when none came back
func (r *FinanceBulkCreateResponse) FeeRecords() []FeeRecord {
	if r == nil {
		return nil
	}
	return r.Data.Data.Data
}

// TransportCreateRequest is the per-stop body sent to the transport panel
type TransportCreateRequest struct {
	EnquiryNo string `json:"enquiry_no"`
	ShiftID   int    `json:"shift_id"`
	StopID    int    `json:"stop_id"`
	RouteID   int    `json:"route_id"`
	FeesID    int    `json:"fees_id"`
}

// AcademicYearResponse mirrors the MDM academic-year lookup envelope
type AcademicYearResponse struct {
	Data struct {
		Attributes struct {
			ShortNameTwoDigit string `json:"short_name_two_digit"`
		} `json:"attributes"`
	} `json:"data"`
}
