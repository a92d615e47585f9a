// models/admission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VAS (value-added service) types
const (
	VasTransport  = "transport"
	VasCafeteria  = "cafeteria"
	VasKidsClub   = "kids_club"
	VasPSA        = "psa"
	VasSummerCamp = "summer_camp"
)

// VasOrder is the canonical ordering used when expanding selected VAS types
// into fee line items, regardless of the order they were added in
var VasOrder = []string{VasTransport, VasCafeteria, VasKidsClub, VasPSA, VasSummerCamp}

// Admission approval statuses
const (
	ApprovalStatusPending  = "Pending"
	ApprovalStatusApproved = "Approved"
	ApprovalStatusRejected = "Rejected"
)

// AdmissionRecord is the 1:1 companion document of an enquiry, created
// lazily the first time a VAS, approval or payment write touches the
// enquiry. The opted_for_X flags and the X_details slots are redundant
// representations; every writer must keep them in sync (use SetVas /
// ClearVas) and read paths derive the booleans from slot presence.
type AdmissionRecord struct {
	ID                           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EnquiryID                    primitive.ObjectID `json:"enquiryId" bson:"enquiry_id"`
	OptedForTransport            bool               `json:"optedForTransport" bson:"opted_for_transport"`
	TransportDetails             *VasDetail         `json:"transportDetails,omitempty" bson:"transport_details,omitempty"`
	OptedForCafeteria            bool               `json:"optedForCafeteria" bson:"opted_for_cafeteria"`
	CafeteriaDetails             *VasDetail         `json:"cafeteriaDetails,omitempty" bson:"cafeteria_details,omitempty"`
	OptedForKidsClub             bool               `json:"optedForKidsClub" bson:"opted_for_kids_club"`
	KidsClubDetails              *VasDetail         `json:"kidsClubDetails,omitempty" bson:"kids_club_details,omitempty"`
	OptedForPSA                  bool               `json:"optedForPsa" bson:"opted_for_psa"`
	PSADetails                   *VasDetail         `json:"psaDetails,omitempty" bson:"psa_details,omitempty"`
	OptedForSummerCamp           bool               `json:"optedForSummerCamp" bson:"opted_for_summer_camp"`
	SummerCampDetails            *VasDetail         `json:"summerCampDetails,omitempty" bson:"summer_camp_details,omitempty"`
	DefaultFees                  []VasDetail        `json:"defaultFees,omitempty" bson:"default_fees,omitempty"`
	AdmissionApprovalStatus      string             `json:"admissionApprovalStatus,omitempty" bson:"admission_approval_status,omitempty"`
	AdmissionFeeRequestTriggered bool               `json:"admissionFeeRequestTriggered" bson:"admission_fee_request_triggered"`
	IsAdmitted                   bool               `json:"isAdmitted" bson:"is_admitted"`
	AdmissionFeesPaid            bool               `json:"admissionFeesPaid" bson:"admission_fees_paid"`
	PaymentDetails               *PaymentDetails    `json:"paymentDetails,omitempty" bson:"payment_details,omitempty"`
	EnrolmentNumber              string             `json:"enrolmentNumber,omitempty" bson:"enrolment_number,omitempty"`
	GRNumber                     string             `json:"grNumber,omitempty" bson:"gr_number,omitempty"`
	StudentID                    *int               `json:"studentId,omitempty" bson:"student_id,omitempty"`
	CreatedAt                    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt                    time.Time          `json:"updatedAt" bson:"updated_at"`
}

// VasDetail holds the fee metadata of one selected VAS. StudentFeeID is
// populated only after a successful Finance call and correlates later
// transport calls and VAS removal with the external fee record.
type VasDetail struct {
	BatchID           *int            `json:"batchId,omitempty" bson:"batch_id,omitempty"`
	FeeTypeID         *int            `json:"feeTypeId,omitempty" bson:"fee_type_id,omitempty"`
	FeeTypeSlug       string          `json:"feeTypeSlug,omitempty" bson:"fee_type_slug,omitempty"`
	FeeSubTypeID      *int            `json:"feeSubTypeId,omitempty" bson:"fee_sub_type_id,omitempty"`
	FeeCategoryID     *int            `json:"feeCategoryId,omitempty" bson:"fee_category_id,omitempty"`
	FeeSubcategoryID  *int            `json:"feeSubcategoryId,omitempty" bson:"fee_subcategory_id,omitempty"`
	PeriodOfServiceID *int            `json:"periodOfServiceId,omitempty" bson:"period_of_service_id,omitempty"`
	Amount            *float64        `json:"amount,omitempty" bson:"amount,omitempty"`
	PickupPoint       string          `json:"pickupPoint,omitempty" bson:"pickup_point,omitempty"`
	DropPoint         string          `json:"dropPoint,omitempty" bson:"drop_point,omitempty"`
	StopDetails       []TransportStop `json:"stopDetails,omitempty" bson:"stop_details,omitempty"`
	StudentFeeID      *int            `json:"studentFeeId,omitempty" bson:"student_fee_id,omitempty"`
}

// TransportStop is one stop selection pushed to the Transport service
type TransportStop struct {
	StopID  int `json:"stopId" bson:"stop_id"`
	RouteID int `json:"routeId" bson:"route_id"`
	ShiftID int `json:"shiftId" bson:"shift_id"`
}

// PaymentDetails mirrors whatever the payment gateway reported back
type PaymentDetails struct {
	TransactionID string    `json:"transactionId,omitempty" bson:"transaction_id,omitempty"`
	Mode          string    `json:"mode,omitempty" bson:"mode,omitempty"`
	Amount        float64   `json:"amount,omitempty" bson:"amount,omitempty"`
	PaidAt        time.Time `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
}

// DetailsFor returns the detail slot of the given VAS type, nil when the
// type is unknown or not selected
func (a *AdmissionRecord) DetailsFor(vasType string) *VasDetail {
	switch vasType {
	case VasTransport:
		return a.TransportDetails
	case VasCafeteria:
		return a.CafeteriaDetails
	case VasKidsClub:
		return a.KidsClubDetails
	case VasPSA:
		return a.PSADetails
	case VasSummerCamp:
		return a.SummerCampDetails
	}
	return nil
}

// OptedFor reports the stored boolean flag of the given VAS type
func (a *AdmissionRecord) OptedFor(vasType string) bool {
	switch vasType {
	case VasTransport:
		return a.OptedForTransport
	case VasCafeteria:
		return a.OptedForCafeteria
	case VasKidsClub:
		return a.OptedForKidsClub
	case VasPSA:
		return a.OptedForPSA
	case VasSummerCamp:
		return a.OptedForSummerCamp
	}
	return false
}

// SetVas stores the detail slot and flips the matching flag in one step so
// the two representations cannot drift apart
func (a *AdmissionRecord) SetVas(vasType string, details *VasDetail) bool {
	switch vasType {
	case VasTransport:
		a.OptedForTransport = details != nil
		a.TransportDetails = details
	case VasCafeteria:
		a.OptedForCafeteria = details != nil
		a.CafeteriaDetails = details
	case VasKidsClub:
		a.OptedForKidsClub = details != nil
		a.KidsClubDetails = details
	case VasPSA:
		a.OptedForPSA = details != nil
		a.PSADetails = details
	case VasSummerCamp:
		a.OptedForSummerCamp = details != nil
		a.SummerCampDetails = details
	default:
		return false
	}
	return true
}

// ClearVas removes the VAS selection, clearing both representations
func (a *AdmissionRecord) ClearVas(vasType string) bool {
	return a.SetVas(vasType, nil)
}

// VasFieldNames returns the bson field names of a VAS type's flag and
// detail slot, used to build targeted $set/$unset updates
func VasFieldNames(vasType string) (flagField, detailField string, ok bool) {
	switch vasType {
	case VasTransport:
		return "opted_for_transport", "transport_details", true
	case VasCafeteria:
		return "opted_for_cafeteria", "cafeteria_details", true
	case VasKidsClub:
		return "opted_for_kids_club", "kids_club_details", true
	case VasPSA:
		return "opted_for_psa", "psa_details", true
	case VasSummerCamp:
		return "opted_for_summer_camp", "summer_camp_details", true
	}
	return "", "", false
}

// AdmissionDetailsView is the read model returned by the details endpoint.
// The opted booleans are recomputed from detail-slot presence rather than
// read from the stored flags.
type AdmissionDetailsView struct {
	EnquiryID                    primitive.ObjectID `json:"enquiryId"`
	OptedForTransport            bool               `json:"optedForTransport"`
	TransportDetails             *VasDetail         `json:"transportDetails,omitempty"`
	OptedForCafeteria            bool               `json:"optedForCafeteria"`
	CafeteriaDetails             *VasDetail         `json:"cafeteriaDetails,omitempty"`
	OptedForKidsClub             bool               `json:"optedForKidsClub"`
	KidsClubDetails              *VasDetail         `json:"kidsClubDetails,omitempty"`
	OptedForPSA                  bool               `json:"optedForPsa"`
	PSADetails                   *VasDetail         `json:"psaDetails,omitempty"`
	OptedForSummerCamp           bool               `json:"optedForSummerCamp"`
	SummerCampDetails            *VasDetail         `json:"summerCampDetails,omitempty"`
	DefaultFees                  []VasDetail        `json:"defaultFees,omitempty"`
	AdmissionApprovalStatus      string             `json:"admissionApprovalStatus,omitempty"`
	AdmissionFeeRequestTriggered bool               `json:"admissionFeeRequestTriggered"`
	IsAdmitted                   bool               `json:"isAdmitted"`
	AdmissionFeesPaid            bool               `json:"admissionFeesPaid"`
	EnrolmentNumber              string             `json:"enrolmentNumber,omitempty"`
	GRNumber                     string             `json:"grNumber,omitempty"`
	StudentID                    *int               `json:"studentId,omitempty"`
}

// ToDetailsView derives the read model, recomputing every opted boolean
// from the presence of its detail slot
func (a *AdmissionRecord) ToDetailsView() *AdmissionDetailsView {
	return &AdmissionDetailsView{
		EnquiryID:                    a.EnquiryID,
		OptedForTransport:            a.TransportDetails != nil,
		TransportDetails:             a.TransportDetails,
		OptedForCafeteria:            a.CafeteriaDetails != nil,
		CafeteriaDetails:             a.CafeteriaDetails,
		OptedForKidsClub:             a.KidsClubDetails != nil,
		KidsClubDetails:              a.KidsClubDetails,
		OptedForPSA:                  a.PSADetails != nil,
		PSADetails:                   a.PSADetails,
		OptedForSummerCamp:           a.SummerCampDetails != nil,
		SummerCampDetails:            a.SummerCampDetails,
		DefaultFees:                  a.DefaultFees,
		AdmissionApprovalStatus:      a.AdmissionApprovalStatus,
		AdmissionFeeRequestTriggered: a.AdmissionFeeRequestTriggered,
		IsAdmitted:                   a.IsAdmitted,
		AdmissionFeesPaid:            a.AdmissionFeesPaid,
		EnrolmentNumber:              a.EnrolmentNumber,
		GRNumber:                     a.GRNumber,
		StudentID:                    a.StudentID,
	}
}

// AddVasRequest is the payload for attaching a VAS to an enquiry
type AddVasRequest struct {
	VasType string     `json:"vasType" validate:"required,oneof=transport cafeteria kids_club psa summer_camp"`
	Details *VasDetail `json:"details" validate:"required"`
}

// UpdateApprovalStatusRequest is the payload for the admission decision
type UpdateApprovalStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}
