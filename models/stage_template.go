// models/stage_template.go
package models

// StageTemplate is the per-enquiry-type definition of one expected
// progress stage. TATDays is the turn-around-time budget for the stage.
type StageTemplate struct {
	StageID            int    `json:"stageId" bson:"stage_id"`
	StageName          string `json:"stageName" bson:"stage_name"`
	Order              int    `json:"order" bson:"order"`
	Weightage          int    `json:"weightage" bson:"weightage"`
	TATDays            int    `json:"tatDays" bson:"tat_days"`
	Mandatory          bool   `json:"mandatory" bson:"mandatory"`
	ApprovalWorkflowID *int   `json:"approvalWorkflowId,omitempty" bson:"approval_workflow_id,omitempty"`
}
