// models/enquiry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enquiry types
const (
	EnquiryTypeNewAdmission             = "NewAdmission"
	EnquiryTypeReadmission              = "Readmission"
	EnquiryTypeIVT                      = "IVT"
	EnquiryTypePSA                      = "PSA"
	EnquiryTypeKidsClub                 = "KidsClub"
	EnquiryTypeAdmission1011            = "Admission_10_11"
	EnquiryTypeReadmissionAdmission1011 = "ReadmissionAdmission10_11"
)

// Enquiry statuses
const (
	EnquiryStatusOpen     = "Open"
	EnquiryStatusClosed   = "Closed"
	EnquiryStatusOnHold   = "OnHold"
	EnquiryStatusAdmitted = "Admitted"
)

// Stage statuses
const (
	StageStatusOpen                 = "Open"
	StageStatusInProgress           = "InProgress"
	StageStatusCompleted            = "Completed"
	StageStatusPassed               = "Passed"
	StageStatusFailed               = "Failed"
	StageStatusPending              = "Pending"
	StageStatusApproved             = "Approved"
	StageStatusRejected             = "Rejected"
	StageStatusAdmitted             = "Admitted"
	StageStatusProvisionalAdmission = "ProvisionalAdmission"
)

// Enquiry is the prospective-student enquiry document. School, grade, board,
// course, shift and stream are MDM reference ids; pointers distinguish
// "never captured" from a real id when the fee payload is validated.
type Enquiry struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EnquiryNo      string             `json:"enquiryNo" bson:"enquiry_no"`
	EnquiryType    string             `json:"enquiryType" bson:"enquiry_type"`
	Status         string             `json:"status" bson:"status"`
	StudentName    string             `json:"studentName,omitempty" bson:"student_name,omitempty"`
	SchoolID       *int               `json:"schoolId,omitempty" bson:"school_id,omitempty"`
	GradeID        *int               `json:"gradeId,omitempty" bson:"grade_id,omitempty"`
	BoardID        *int               `json:"boardId,omitempty" bson:"board_id,omitempty"`
	CourseID       *int               `json:"courseId,omitempty" bson:"course_id,omitempty"`
	ShiftID        *int               `json:"shiftId,omitempty" bson:"shift_id,omitempty"`
	StreamID       *int               `json:"streamId,omitempty" bson:"stream_id,omitempty"`
	BrandID        *int               `json:"brandId,omitempty" bson:"brand_id,omitempty"`
	HostSchoolID   *int               `json:"hostSchoolId,omitempty" bson:"host_school_id,omitempty"`
	AcademicYearID *int               `json:"academicYearId,omitempty" bson:"academic_year_id,omitempty"`
	EnquiryStages  []StageInstance    `json:"enquiryStages" bson:"enquiry_stages"`
	OtherDetails   *OtherDetails      `json:"otherDetails,omitempty" bson:"other_details,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}

// StageInstance is one entry in an enquiry's ordered progress list
type StageInstance struct {
	StageID   int    `json:"stageId" bson:"stage_id"`
	StageName string `json:"stageName" bson:"stage_name"`
	Order     int    `json:"order" bson:"order"`
	Status    string `json:"status" bson:"status"`
}

// OtherDetails carries the markers the fee orchestration branches on
type OtherDetails struct {
	ParentType     string `json:"parentType,omitempty" bson:"parent_type,omitempty"`
	IsGuestStudent bool   `json:"isGuestStudent" bson:"is_guest_student"`
	EnquiryType    string `json:"enquiryType,omitempty" bson:"enquiry_type,omitempty"`
}

// FeeEnquiryType returns the sub-type marker used for fee-payload branching,
// falling back to the enquiry's own type when other_details carries none
func (e *Enquiry) FeeEnquiryType() string {
	if e.OtherDetails != nil && e.OtherDetails.EnquiryType != "" {
		return e.OtherDetails.EnquiryType
	}
	return e.EnquiryType
}

// CreateEnquiryRequest is the payload for registering a new enquiry
type CreateEnquiryRequest struct {
	EnquiryNo      string          `json:"enquiryNo" validate:"required"`
	EnquiryType    string          `json:"enquiryType" validate:"required"`
	StudentName    string          `json:"studentName"`
	SchoolID       *int            `json:"schoolId"`
	GradeID        *int            `json:"gradeId"`
	BoardID        *int            `json:"boardId"`
	CourseID       *int            `json:"courseId"`
	ShiftID        *int            `json:"shiftId"`
	StreamID       *int            `json:"streamId"`
	BrandID        *int            `json:"brandId"`
	HostSchoolID   *int            `json:"hostSchoolId"`
	AcademicYearID *int            `json:"academicYearId"`
	Stages         []StageInstance `json:"stages"`
	OtherDetails   *OtherDetails   `json:"otherDetails"`
}

// AdvanceStageRequest updates every stage whose name matches the pattern
type AdvanceStageRequest struct {
	StageName string `json:"stageName" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// ReplaceStagesRequest overwrites the enquiry's full stage array
type ReplaceStagesRequest struct {
	Stages []StageInstance `json:"stages" validate:"required,min=1"`
}
